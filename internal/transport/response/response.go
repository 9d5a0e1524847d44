package response

import (
	"encoding/json"
	"net/http"

	"github.com/pep299/smart-news-digest/internal/apperr"
)

// ErrorBody is the body of every non-2xx response
type ErrorBody struct {
	Detail string `json:"detail"`
}

// WriteJSON writes v as JSON with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteError maps err onto its HTTP status and writes {"detail": ...}
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperr.From(err)
	return WriteJSON(w, appErr.Status, ErrorBody{Detail: appErr.Detail})
}

// WriteDetail writes an error body with an explicit status
func WriteDetail(w http.ResponseWriter, statusCode int, detail string) error {
	return WriteJSON(w, statusCode, ErrorBody{Detail: detail})
}

// WriteNotFound writes a 404 Not Found error
func WriteNotFound(w http.ResponseWriter) error {
	return WriteDetail(w, http.StatusNotFound, "Not Found")
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed error
func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
