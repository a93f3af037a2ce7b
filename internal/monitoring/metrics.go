package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP requests served by the health server
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanobanana_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_class"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nanobanana_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path", "status_class"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nanobanana_http_inflight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Credential pool
	CredentialPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nanobanana_credential_pool_size",
			Help: "Number of API keys remaining in the pool",
		},
	)

	CredentialRemovalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nanobanana_credential_removals_total",
			Help: "Total number of API keys removed as invalid",
		},
	)

	// Upstream attempts
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanobanana_upstream_requests_total",
			Help: "Total number of upstream API attempts",
		},
		[]string{"mode", "status_class"},
	)

	// Image generation can take minutes, hence the wide buckets.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nanobanana_upstream_request_duration_seconds",
			Help:    "Upstream API attempt latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
		},
		[]string{"mode"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanobanana_upstream_errors_total",
			Help: "Total number of failed upstream attempts by classification",
		},
		[]string{"mode", "kind", "reason"},
	)

	// Dispatch outcomes as seen by callers
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanobanana_dispatch_total",
			Help: "Total number of dispatches by outcome",
		},
		[]string{"mode", "outcome"},
	)

	DispatchAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nanobanana_dispatch_attempts",
			Help:    "Number of upstream attempts per dispatch",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		},
	)

	// Chat commands
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanobanana_commands_total",
			Help: "Total number of chat commands handled by result",
		},
		[]string{"result"},
	)
)
