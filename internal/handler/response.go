// Package handler contains the HTTP request handlers.
//
// Handlers parse requests, call the service layer, and write responses.
// They own nothing else: no business rules, no SQL.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rkormilcyn/portfolio/internal/apperror"
)

// errorResponse is the JSON error shape for every API endpoint:
// {"error": "Comment is empty"}. One field, human-readable — the status
// code is the machine-readable part.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must be written before the body — Encode writes the body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent at this point; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends the JSON
// error body. The service layer never sees status codes; this function is
// the only place the taxonomy meets HTTP.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrUnknownProvider):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrUpstream):
			status = http.StatusBadGateway
		}

		writeJSON(w, status, errorResponse{Error: appErr.Message})
		return
	}

	// Unknown error — keep internals (SQL, file paths) out of the response.
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "An internal error occurred",
	})
}
