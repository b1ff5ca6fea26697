// Package respond writes JSON responses and maps engine errors to HTTP
// status codes.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/abhisek/arise/internal/apperr"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a standardized error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	})
}

// WriteBadRequest writes a 400 response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsUpstreamUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteErr writes err with the status from StatusFor. Internal errors are
// logged with a stack and their detail is not sent to the client.
func WriteErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Stack().Err(err).Msg("request failed")
		WriteError(w, status, "internal error")
		return
	}
	WriteError(w, status, err.Error())
}
