// Package httpapi exposes the services as a JSON REST API. It owns request
// decoding, the response envelope and the mapping from domain errors to
// status codes; all domain rules live below it.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/smartsplit/backend/internal/auth"
	"github.com/smartsplit/backend/internal/models"
)

// envelope is the uniform response shape: a human-readable message plus the
// payload.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Message: message, Data: data}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps domain errors to HTTP status codes. Anything unmapped is
// an internal error and gets logged without leaking details to the client.
func respondError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case models.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateName),
		errors.Is(err, models.ErrAlreadyMember),
		errors.Is(err, auth.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidSplitSelection),
		errors.Is(err, models.ErrExpenseGroupMismatch),
		errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNotVerified),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
	default:
		slog.Error("internal error", "error", err)
		respond(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	respond(w, status, err.Error(), nil)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}
