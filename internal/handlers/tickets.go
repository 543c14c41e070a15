package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/petermazzocco/temple-desk/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Notifier sends a text message without making the caller wait for delivery.
type Notifier interface {
	Notify(to, body string)
}

type TicketHandler struct {
	tickets  store.Collection
	notifier Notifier
}

func NewTicketHandler(db store.Database, notifier Notifier) *TicketHandler {
	return &TicketHandler{
		tickets:  db.Collection(store.Tickets),
		notifier: notifier,
	}
}

// List handles GET /tickets
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	listDocuments(w, r, h.tickets, "tickets")
}

// Add handles POST /tickets/add. A booking with a mobile number triggers a
// confirmation SMS once it is stored.
func (h *TicketHandler) Add(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(r)
	if err != nil {
		writeBodyError(w, err, "message")
		return
	}

	id, err := h.tickets.InsertOne(r.Context(), doc)
	if err != nil {
		slog.Error("failed to add ticket", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error adding ticket")
		return
	}

	message := "Ticket added successfully"
	if mobile := stringField(doc, "mobile"); mobile != "" {
		h.notifier.Notify(mobile, ticketConfirmation(doc))
		message = "Ticket added successfully and SMS sent"
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    message,
		"insertedId": id,
	})
}

func ticketConfirmation(doc bson.M) string {
	return fmt.Sprintf("Dear %s, your ticket for %s on %s at %s has been booked successfully.",
		stringField(doc, "name"),
		stringField(doc, "temple"),
		stringField(doc, "date"),
		stringField(doc, "time"),
	)
}
