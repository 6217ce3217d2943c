package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brockcsc/volunteer-intake/internal/handlers"
	"github.com/brockcsc/volunteer-intake/internal/middleware"
)

// NewRouter constructs a ServeMux with intake API routes registered.
func NewRouter(submit *handlers.SubmitHandler, health *handlers.HealthHandler, cors middleware.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	// Submission endpoint. The handler enforces POST itself so that the
	// method gate returns the JSON envelope instead of the mux's 405.
	mux.HandleFunc("/", submit.Submit)
	mux.HandleFunc("/api/submit", submit.Submit)

	// Health endpoints
	mux.HandleFunc("/healthz", health.Health)
	mux.HandleFunc("/readyz", health.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(middleware.CORS(cors)(middleware.SecurityHeaders(mux)))
}
