package auth

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestIssuer(clock *fakeClock) *TokenIssuer {
	issuer := NewTokenIssuer("test-secret")
	issuer.now = clock.Now
	return issuer
}

func TestIssueAndParse(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(clock)

	token, err := issuer.Issue("65f1c0ffee0000000000abcd")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != "65f1c0ffee0000000000abcd" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
	if !claims.IssuedAt.Time.Equal(clock.t) {
		t.Errorf("IssuedAt = %v, want %v", claims.IssuedAt.Time, clock.t)
	}
	if !claims.ExpiresAt.Time.Equal(clock.t.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt.Time, clock.t.Add(time.Hour))
	}
}

func TestParse_Expiry(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	issuer := newTestIssuer(clock)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	clock.t = start.Add(time.Hour - time.Second)
	if _, err := issuer.Parse(token); err != nil {
		t.Errorf("token should still be valid just before expiry: %v", err)
	}

	clock.t = start.Add(time.Hour + time.Second)
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestIssuer(clock)
	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other := NewTokenIssuer("other-secret")
	other.now = clock.Now

	tests := []struct {
		name   string
		issuer *TokenIssuer
		token  string
	}{
		{"wrong secret", other, token},
		{"garbage", issuer, "not.a.token"},
		{"empty", issuer, ""},
		{"tampered", issuer, token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.issuer.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
