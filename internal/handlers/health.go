package handlers

import (
	"fmt"
	"net/http"

	"github.com/brockcsc/volunteer-intake/internal/ratelimit"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store ratelimit.Store
}

// NewHealthHandler creates the health handler. A nil store marks the
// service ready unconditionally.
func NewHealthHandler(store ratelimit.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"intake"}`)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.store != nil {
		if _, err := h.store.Get(r.Context(), "readyz:probe"); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"degraded","reason":"rate limit store unreachable"}`)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ready"}`)
}
