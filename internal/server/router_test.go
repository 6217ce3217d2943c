package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brockcsc/volunteer-intake/internal/handlers"
	"github.com/brockcsc/volunteer-intake/internal/logging"
	"github.com/brockcsc/volunteer-intake/internal/middleware"
	"github.com/brockcsc/volunteer-intake/internal/notify"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.New(logging.ParseLevel("error"), "text")
	submit := handlers.NewSubmitHandler(nil, notify.NewLogChannel(t.Logf), logger, handlers.SubmitConfig{
		AllowedOrigins: []string{"https://volunteer.brockcsc.ca"},
	})
	health := handlers.NewHealthHandler(nil)

	return NewRouter(submit, health, middleware.DefaultCORSConfig())
}

func TestRouter_Preflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://volunteer.brockcsc.ca")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouter_HeadersOnEveryResponse(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestRouter_SubmitRoute(t *testing.T) {
	router := newTestRouter(t)

	// GET on the submit route reaches the handler's own method gate, not
	// the mux default.
	req := httptest.NewRequest(http.MethodGet, "/api/submit", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}
