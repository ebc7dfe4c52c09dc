package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cliptube/backend/internal/apierr"
	"github.com/cliptube/backend/internal/logging"
)

// apiResponse is the uniform envelope wrapping every success and error payload.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// respond writes the envelope with the provided status, payload, and message.
func respond(ctx context.Context, w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	envelope := apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	}

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
	}
}

// respondError translates any error into the envelope. Handlers propagate
// failures here untouched; this is the single boundary where statuses and
// safe messages are decided.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := apierr.Resolve(err)

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "error", err)
	default:
		logger.Warn("request returned client error", "status", status, "message", message)
	}

	respond(ctx, w, status, nil, message)
}
