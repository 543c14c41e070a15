package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Multipart bodies larger than this spill to temporary files while parsing.
const multipartMemory = 32 << 20

var errBadBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

// writeBodyError answers a request whose body could not be read or parsed.
func writeBodyError(w http.ResponseWriter, err error, key string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{key: "Request body too large"})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{key: "Invalid request body"})
}

// decodeDocument reads a JSON, urlencoded or multipart body into an open
// document. Store-assigned fields are dropped.
func decodeDocument(r *http.Request) (bson.M, error) {
	doc := bson.M{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		if err := parseForm(r, mediaType); err != nil {
			return nil, err
		}
		for key, values := range r.PostForm {
			if len(values) == 1 {
				doc[key] = values[0]
			} else {
				doc[key] = values
			}
		}
	default:
		err := json.NewDecoder(r.Body).Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, bodyError(err)
		}
	}

	delete(doc, "_id")
	return doc, nil
}

func parseForm(r *http.Request, mediaType string) error {
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: %v", errBadBody, err)
}

// readImage buffers the named multipart file field. It returns nil when the
// request carries no such file.
func readImage(r *http.Request, field string) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, bodyError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}

// stringField returns doc[key] as text; absent and null values are "".
func stringField(doc bson.M, key string) string {
	switch v := doc[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}
