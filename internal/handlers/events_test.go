package handlers

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petermazzocco/temple-desk/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var eventFields = map[string]string{
	"eventName":        "Diwali",
	"eventDate":        "2026-11-08",
	"eventTime":        "18:00",
	"eventLocation":    "Main hall",
	"eventDescription": "Evening lamps",
}

func TestEventHandlerAddWithoutImage(t *testing.T) {
	h := NewEventHandler(store.NewMemory())

	w := serve(h.Add, multipartRequest(t, "/events/add", eventFields, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Add status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body)
	}
	added := decodeBody[map[string]string](t, w)
	if added["message"] != "Event added successfully" || added["eventId"] == "" {
		t.Errorf("Add response = %v", added)
	}

	events := decodeBody[[]map[string]any](t, serve(h.List, httptest.NewRequest(http.MethodGet, "/events", nil)))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	event := events[0]
	if _, ok := event["image"]; ok {
		t.Errorf("event without upload has image property: %v", event["image"])
	}
	if event["_id"] != added["eventId"] {
		t.Errorf("_id = %v, want %s", event["_id"], added["eventId"])
	}
	for k, v := range eventFields {
		if event[k] != v {
			t.Errorf("%s = %v, want %q", k, event[k], v)
		}
	}
}

func TestEventHandlerAddWithImage(t *testing.T) {
	h := NewEventHandler(store.NewMemory())
	image := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xff, 0xd9}

	if w := serve(h.Add, multipartRequest(t, "/events/add", eventFields, image)); w.Code != http.StatusCreated {
		t.Fatalf("Add status = %d, want %d", w.Code, http.StatusCreated)
	}

	events := decodeBody[[]map[string]any](t, serve(h.List, httptest.NewRequest(http.MethodGet, "/events", nil)))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	uri, _ := events[0]["image"].(string)
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("image = %q, want %s prefix", uri, prefix)
	}
	got, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decode image: %v", err)
	}
	if !bytes.Equal(got, image) {
		t.Errorf("image bytes = %x, want %x", got, image)
	}
}

func TestEventHandlerDelete(t *testing.T) {
	h := NewEventHandler(store.NewMemory())

	added := decodeBody[map[string]string](t, serve(h.Add, multipartRequest(t, "/events/add", eventFields, nil)))
	id := added["eventId"]

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantMsg    string
	}{
		{"unknown id", bson.NewObjectID().Hex(), http.StatusNotFound, "Event not found"},
		{"malformed id", "not-an-id", http.StatusNotFound, "Event not found"},
		{"existing", id, http.StatusOK, "Event deleted successfully"},
		{"already deleted", id, http.StatusNotFound, "Event not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withID(httptest.NewRequest(http.MethodDelete, "/events/"+tt.id, nil), tt.id)
			w := serve(h.Delete, req)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := decodeBody[map[string]string](t, w)["message"]; got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	events := decodeBody[[]map[string]any](t, serve(h.List, httptest.NewRequest(http.MethodGet, "/events", nil)))
	if len(events) != 0 {
		t.Errorf("got %d events after delete, want 0", len(events))
	}
}
