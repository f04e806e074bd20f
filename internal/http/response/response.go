// Package response writes JSON HTTP responses in a consistent envelope and
// maps domain errors to status codes.
package response

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"

	"github.com/beadfanatic/server/internal/errors"
)

// Envelope is the JSON shape of every response body.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
	Success bool   `json:"success"`
}

// JSON writes data inside the envelope with the given status.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	env := Envelope{Success: status < 400, Data: data}
	if err := json.MarshalWrite(w, env); err != nil && logger != nil {
		logger.Error("encode response", "error", err)
	}
}

// Success writes a 200 OK envelope.
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Created writes a 201 Created envelope.
func Created(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, logger)
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Fail writes an error envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	failWith(w, status, message, nil, logger)
}

// Error maps err to a status and writes the error envelope. Domain errors
// carry their own status and details; anything else becomes a 500 and is
// logged, with the message hidden from the client.
func Error(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		failWith(w, domainErr.HTTPStatus(), domainErr.Message, domainErr.Details, logger)
		return
	}

	if logger != nil {
		logger.Error("unhandled error", "error", err)
	}
	failWith(w, http.StatusInternalServerError, "internal server error", nil, logger)
}

func failWith(w http.ResponseWriter, status int, message string, details any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	env := Envelope{Success: false, Error: message, Details: details}
	if err := json.MarshalWrite(w, env); err != nil && logger != nil {
		logger.Error("encode error response", "error", err)
	}
}
