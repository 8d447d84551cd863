// Package handler is the HTTP layer: it decodes requests, runs the
// per-operation field validation, delegates to the services, and writes
// the uniform response envelope.
package handler

// Every endpoint answers with the same envelope:
//
//	{"success": true,  "data": <entity or list>}
//	{"success": false, "message": "ERROR_CODE"}
//	{"success": false, "message": "VALIDATION_FAILED", "errors": [{"field": "...", "message": "..."}]}
//
// The message field carries a machine-readable code (USER_NOT_FOUND,
// QUESTION_LIKE_NOT_MINUS, ...), not prose — clients switch on it.
// Status codes follow the error category: 400 validation and like
// underflow, 404 not found, 409 conflict, 500 anything unexpected.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/seongmin/studyhub/internal/apperror"
)

// FieldError reports one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// writeJSON sends a JSON response. Headers and status must go out before
// the body — once Encode writes, the headers are sent.
func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already gone; all we can do is log.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeData sends a success envelope with the given payload.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeFieldErrors rejects a request whose body failed field validation.
// This runs before any service or storage call.
func writeFieldErrors(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: apperror.CodeValidationFailed,
		Errors:  errs,
	})
}

// writeError maps a domain error to its HTTP status and error code.
// Services return apperror values; anything that is not one is an
// infrastructure failure and becomes an opaque 500 — raw error text never
// reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrLikeUnderflow):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		}

		body := envelope{Success: false, Message: appErr.Code}
		if appErr.Field != "" {
			body.Errors = []FieldError{{Field: appErr.Field, Message: appErr.Message}}
		}
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Message: "INTERNAL_ERROR",
	})
}

// decodeBody decodes a JSON request body into dst. A malformed body is a
// validation failure like any other — it short-circuits with 400.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFieldErrors(w, []FieldError{{Field: "body", Message: "invalid JSON body"}})
		return false
	}
	return true
}
