package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/petermazzocco/temple-desk/internal/store"
	"github.com/petermazzocco/temple-desk/models"
)

const defaultCarouselDescription = "No description"

type CarouselHandler struct {
	images store.Collection
	now    func() time.Time
}

func NewCarouselHandler(db store.Database) *CarouselHandler {
	return &CarouselHandler{
		images: db.Collection(store.Carousel),
		now:    time.Now,
	}
}

// Add handles POST /carousel/add. The "image" file is required.
func (h *CarouselHandler) Add(w http.ResponseWriter, r *http.Request) {
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
	if len(image) == 0 {
		writeMessage(w, http.StatusBadRequest, "Image is required")
		return
	}

	description := stringField(fields, "description")
	if description == "" {
		description = defaultCarouselDescription
	}

	id, err := h.images.InsertOne(r.Context(), models.CarouselImage{
		Image:       image,
		Description: description,
		CreatedAt:   h.now().UTC(),
	})
	if err != nil {
		slog.Error("failed to add carousel image", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to add image")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Image added successfully",
		"imageId": id,
	})
}

// List handles GET /carousel, newest first.
func (h *CarouselHandler) List(w http.ResponseWriter, r *http.Request) {
	var images []models.CarouselImage
	if err := h.images.FindAll(r.Context(), &images); err != nil {
		slog.Error("failed to fetch carousel images", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error fetching images")
		return
	}

	// Reversing first keeps later inserts ahead when timestamps tie.
	slices.Reverse(images)
	slices.SortStableFunc(images, func(a, b models.CarouselImage) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	resp := make([]models.CarouselImageResponse, 0, len(images))
	for _, img := range images {
		resp = append(resp, img.Response())
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /carousel/{id}
func (h *CarouselHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, h.images, "Image")
}
