package handlers

import (
	"context"
	"net/http"

	"github.com/cliptube/backend/internal/apierr"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	DB Pinger
}

// Check reports service health, including database reachability when wired.
func (h HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.DB != nil {
		if err := h.DB.Ping(ctx); err != nil {
			respondError(ctx, w, apierr.Internal("database unreachable").WithCause(err))
			return
		}
	}

	respond(ctx, w, http.StatusOK, map[string]any{"status": "ok"}, "service healthy")
}
