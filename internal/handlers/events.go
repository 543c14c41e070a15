package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/petermazzocco/temple-desk/internal/store"
	"github.com/petermazzocco/temple-desk/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type EventHandler struct {
	events store.Collection
}

func NewEventHandler(db store.Database) *EventHandler {
	return &EventHandler{events: db.Collection(store.Events)}
}

// Add handles POST /events/add with an optional "image" file.
func (h *EventHandler) Add(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeDocument(r)
	if err != nil {
		writeBodyError(w, err, "message")
		return
	}

	image, err := readImage(r, "image")
	if err != nil {
		writeBodyError(w, err, "message")
		return
	}

	event := models.Event{
		EventName:        stringField(fields, "eventName"),
		EventDate:        stringField(fields, "eventDate"),
		EventTime:        stringField(fields, "eventTime"),
		EventLocation:    stringField(fields, "eventLocation"),
		EventDescription: stringField(fields, "eventDescription"),
		Image:            image,
	}

	id, err := h.events.InsertOne(r.Context(), event)
	if err != nil {
		slog.Error("failed to add event", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to add event")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Event added successfully",
		"eventId": id,
	})
}

// List handles GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	var events []models.Event
	if err := h.events.FindAll(r.Context(), &events); err != nil {
		slog.Error("failed to fetch events", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error fetching events")
		return
	}

	resp := make([]models.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, e.Response())
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, h.events, "Event")
}

// deleteByID removes the document named by the {id} path parameter. Ids that
// are not valid ObjectIDs cannot match anything and are reported as not found.
func deleteByID(w http.ResponseWriter, r *http.Request, coll store.Collection, what string) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, what+" not found")
		return
	}

	deleted, err := coll.DeleteOne(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete", "kind", what, "id", id.Hex(), "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete "+what)
		return
	}
	if deleted == 0 {
		writeMessage(w, http.StatusNotFound, what+" not found")
		return
	}

	writeMessage(w, http.StatusOK, what+" deleted successfully")
}
