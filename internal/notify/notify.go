// Package notify delivers best-effort SMS messages outside the request path.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const defaultSendTimeout = 15 * time.Second

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid != nil {
		slog.Info("sms sent", "sid", *resp.Sid)
	}
	return nil
}

// LogSender stands in when no SMS gateway is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, body string) error {
	slog.Info("sms gateway not configured, dropping message", "to", to, "body", body)
	return nil
}

// Dispatcher runs each send on its own goroutine. Failures are logged and
// never reported to the caller.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender, timeout: defaultSendTimeout}
}

// Notify starts a send and returns immediately.
func (d *Dispatcher) Notify(to, body string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("sms dispatch panicked", "to", to, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.Send(ctx, to, body); err != nil {
			slog.Error("failed to send sms", "to", to, "error", err)
		}
	}()
}

// Wait blocks until every started send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
