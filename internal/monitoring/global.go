package monitoring

import (
	"fmt"
	"math"
	"time"
)

// StatusClass buckets an HTTP status into 2xx/4xx/5xx, or "error" when no
// response was received.
func StatusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return fmt.Sprintf("%dxx", code/100)
}

// RecordUpstream records one upstream attempt.
func RecordUpstream(mode string, dur time.Duration, status int, networkErr bool) {
	cls := StatusClass(status)
	if networkErr {
		cls = "network_error"
	}
	durSec := dur.Seconds()
	if math.IsNaN(durSec) || math.IsInf(durSec, 0) {
		durSec = 0
	}
	UpstreamRequestsTotal.WithLabelValues(mode, cls).Inc()
	UpstreamRequestDuration.WithLabelValues(mode).Observe(durSec)
}

// RecordUpstreamError increments the failed-attempt counter.
func RecordUpstreamError(mode, kind, reason string) {
	if reason == "" {
		reason = "other"
	}
	UpstreamErrors.WithLabelValues(mode, kind, reason).Inc()
}

// RecordDispatch records the outcome of a whole dispatch.
func RecordDispatch(mode, outcome string, attempts int) {
	DispatchTotal.WithLabelValues(mode, outcome).Inc()
	DispatchAttempts.Observe(float64(attempts))
}
