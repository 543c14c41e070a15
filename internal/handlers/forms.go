package handlers

import (
	"log/slog"
	"net/http"

	"github.com/petermazzocco/temple-desk/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type FormHandler struct {
	forms store.Collection
}

func NewFormHandler(db store.Database) *FormHandler {
	return &FormHandler{forms: db.Collection(store.Forms)}
}

// List handles GET /forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	listDocuments(w, r, h.forms, "forms")
}

// Add handles POST /forms/add. The body is stored as submitted.
func (h *FormHandler) Add(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(r)
	if err != nil {
		writeBodyError(w, err, "message")
		return
	}

	id, err := h.forms.InsertOne(r.Context(), doc)
	if err != nil {
		slog.Error("failed to add form", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error adding form")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Form added successfully",
		"insertedId": id,
	})
}

// listDocuments writes every document of an open-schema collection.
func listDocuments(w http.ResponseWriter, r *http.Request, coll store.Collection, what string) {
	docs := []bson.M{}
	if err := coll.FindAll(r.Context(), &docs); err != nil {
		slog.Error("failed to fetch "+what, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error fetching "+what)
		return
	}
	if docs == nil {
		docs = []bson.M{}
	}
	writeJSON(w, http.StatusOK, docs)
}
