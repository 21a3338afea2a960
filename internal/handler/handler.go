package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

type contextKey string

// correlationIDKey carries the per-request correlation ID.
const correlationIDKey contextKey = "correlationID"

// WithCorrelationID returns a context carrying the correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID extracts the correlation ID from the context, if any.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}

// writeError writes a standardised error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	logger.Error().
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: CorrelationID(r.Context()),
	})
}

// writeDomainError maps a domain or transport error onto an HTTP status.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	if domainErr, ok := err.(*model.DomainError); ok {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound:
			status = http.StatusNotFound
		}
		writeError(w, r, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	// Fetch failures are surfaced as bad gateway: the backend, not this
	// facade, rejected the request.
	writeError(w, r, http.StatusBadGateway, model.ErrCodeInternalError, err.Error(), logger)
}
