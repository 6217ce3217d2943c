// Package handlers implements the HTTP surface of the intake service.
package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brockcsc/volunteer-intake/internal/logging"
	"github.com/brockcsc/volunteer-intake/internal/metrics"
	"github.com/brockcsc/volunteer-intake/internal/notify"
	"github.com/brockcsc/volunteer-intake/internal/ratelimit"
	"github.com/brockcsc/volunteer-intake/internal/submission"
)

// apiError pairs an HTTP status with the generic public message for it.
// Internal detail (which field was missing, what the upstream said) stays
// in the server-side logs to avoid aiding probing.
type apiError struct {
	status  int
	message string
}

var (
	errMethodNotAllowed   = apiError{http.StatusMethodNotAllowed, "Method Not Allowed"}
	errInvalidContentType = apiError{http.StatusBadRequest, "Invalid content type"}
	errInvalidOrigin      = apiError{http.StatusForbidden, "Invalid request origin"}
	errMalformedJSON      = apiError{http.StatusBadRequest, "Invalid JSON"}
	errMissingFields      = apiError{http.StatusBadRequest, "Missing required fields"}
	errApplicationsClosed = apiError{http.StatusForbidden, "Applications are closed"}
	errUpstreamConfig     = apiError{http.StatusInternalServerError, "Notification channel is not configured"}
	errUpstreamCall       = apiError{http.StatusInternalServerError, "Failed to deliver application"}
	errInternal           = apiError{http.StatusInternalServerError, "Internal server error"}
)

// response is the JSON envelope returned for every request.
type response struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	RateLimit *rateLimitInfo `json:"rateLimit,omitempty"`
}

type rateLimitInfo struct {
	Remaining int   `json:"remaining"`
	ResetIn   int64 `json:"resetIn"` // milliseconds until the budget resets
}

// SubmitConfig holds the request-gating knobs of the submit handler.
type SubmitConfig struct {
	AllowedOrigins []string
	// Cutoff closes applications server-side when non-zero. The zero value
	// keeps the cutoff advisory, enforced only by the form UI.
	Cutoff time.Time
}

// SubmitHandler accepts volunteer applications and relays them to the
// notification channel.
type SubmitHandler struct {
	limiter        *ratelimit.Limiter
	notifier       notify.Channel
	logger         *logging.Logger
	allowedOrigins []string
	cutoff         time.Time
	now            func() time.Time
}

// NewSubmitHandler creates the submit handler. A nil limiter disables rate
// limiting.
func NewSubmitHandler(limiter *ratelimit.Limiter, notifier notify.Channel, logger *logging.Logger, cfg SubmitConfig) *SubmitHandler {
	return &SubmitHandler{
		limiter:        limiter,
		notifier:       notifier,
		logger:         logger,
		allowedOrigins: cfg.AllowedOrigins,
		cutoff:         cfg.Cutoff,
		now:            time.Now,
	}
}

// Submit handles POST / submission requests. The gates run in a fixed
// order, each short-circuiting with its own failure: rate limit, method,
// content type, origin, JSON decode, required fields.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientIP := getClientIP(r)

	// Local development instances bypass the limiter entirely: no read,
	// no write.
	if h.limiter != nil && !isLocalDev(r) {
		res, err := h.limiter.Check(ctx, clientIP)
		if err != nil {
			h.logger.ErrorContext(ctx, "rate limit check failed", logging.Err(err), logging.IP(clientIP))
			metrics.SubmissionsTotal.WithLabelValues("error").Inc()
			writeError(w, errInternal)
			return
		}
		if !res.Allowed {
			h.logger.WarnContext(ctx, "rate limit exceeded", logging.IP(clientIP), logging.Remaining(res.Remaining))
			metrics.RateLimitHits.Inc()
			metrics.SubmissionsTotal.WithLabelValues("rate_limited").Inc()
			h.writeRateLimited(w, res)
			return
		}
	}

	if r.Method != http.MethodPost {
		h.reject(r, w, errMethodNotAllowed, clientIP)
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		h.reject(r, w, errInvalidContentType, clientIP)
		return
	}

	// Referer is trivially spoofable; this is a bot deterrent, not a
	// security boundary.
	if !h.validOrigin(r) {
		h.reject(r, w, errInvalidOrigin, clientIP)
		return
	}

	if !h.cutoff.IsZero() && !h.now().Before(h.cutoff) {
		h.reject(r, w, errApplicationsClosed, clientIP)
		return
	}

	var sub submission.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.reject(r, w, errMalformedJSON, clientIP)
		return
	}

	if err := sub.Validate(); err != nil {
		h.reject(r, w, errMissingFields, clientIP)
		return
	}

	fields := submission.BuildFields(&sub)
	embed := notify.Embed{
		Title:     sub.RoleTitle,
		Color:     submission.ColorFor(sub.RoleTitle),
		Fields:    fields,
		Timestamp: h.now(),
	}

	start := time.Now()
	err := h.notifier.Send(ctx, embed)
	metrics.WebhookDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.WebhookErrors.Inc()
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(ctx, "webhook delivery failed",
			logging.Err(err), logging.Role(sub.RoleTitle), logging.IP(clientIP))
		if errors.Is(err, notify.ErrNotConfigured) {
			writeError(w, errUpstreamConfig)
		} else {
			writeError(w, errUpstreamCall)
		}
		return
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	h.logger.InfoContext(ctx, "application submitted",
		logging.Role(sub.RoleTitle), logging.FieldCount(len(fields)), logging.IP(clientIP))
	writeJSON(w, http.StatusOK, response{Success: true, Message: "Application submitted successfully"})
}

func (h *SubmitHandler) validOrigin(r *http.Request) bool {
	referer := r.Header.Get("Referer")
	if referer == "" {
		return false
	}
	for _, origin := range h.allowedOrigins {
		if strings.HasPrefix(referer, origin) {
			return true
		}
	}
	return false
}

func (h *SubmitHandler) reject(r *http.Request, w http.ResponseWriter, e apiError, clientIP string) {
	h.logger.WarnContext(r.Context(), "submission rejected",
		logging.Status(e.status), logging.Method(r.Method), logging.IP(clientIP))
	metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
	writeError(w, e)
}

func (h *SubmitHandler) writeRateLimited(w http.ResponseWriter, res ratelimit.Result) {
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(h.now().Add(res.ResetIn).UnixMilli(), 10))
	writeJSON(w, http.StatusTooManyRequests, response{
		Success: false,
		Message: "Rate limit exceeded. Please try again later.",
		RateLimit: &rateLimitInfo{
			Remaining: res.Remaining,
			ResetIn:   res.ResetIn.Milliseconds(),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, e apiError) {
	writeJSON(w, e.status, response{Success: false, Message: e.message})
}

// getClientIP resolves the original client address, preferring the edge
// proxy headers over the socket peer.
func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// isLocalDev reports whether the request targets a local development
// instance.
func isLocalDev(r *http.Request) bool {
	return strings.Contains(r.Host, "localhost") || strings.Contains(r.Host, "127.0.0.1")
}
