// Package metrics defines the Prometheus instrumentation for the intake
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts submission requests by outcome:
	// accepted, rejected, rate_limited, error.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of submission requests handled",
		},
		[]string{"outcome"},
	)

	// RateLimitHits counts requests denied by the rate limiter.
	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_rate_limit_hits_total",
			Help: "Total number of requests denied by the rate limiter",
		},
	)

	// WebhookDuration observes outbound webhook call latency.
	WebhookDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intake_webhook_duration_seconds",
			Help:    "Duration of outbound webhook calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// WebhookErrors counts failed webhook deliveries.
	WebhookErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_webhook_errors_total",
			Help: "Total number of failed webhook deliveries",
		},
	)
)
