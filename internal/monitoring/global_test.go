package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestStatusClass(t *testing.T) {
	require.Equal(t, "error", StatusClass(0))
	require.Equal(t, "2xx", StatusClass(200))
	require.Equal(t, "4xx", StatusClass(400))
	require.Equal(t, "5xx", StatusClass(503))
}

func TestRecordUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("test_mode", "network_error"))
	RecordUpstream("test_mode", 10*time.Millisecond, 0, true)
	after := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("test_mode", "network_error"))
	require.Equal(t, before+1, after)
}

func TestRecordUpstreamErrorDefaultsReason(t *testing.T) {
	before := testutil.ToFloat64(UpstreamErrors.WithLabelValues("test_mode", "TRANSIENT_FAILURE", "other"))
	RecordUpstreamError("test_mode", "TRANSIENT_FAILURE", "")
	require.Equal(t, before+1, testutil.ToFloat64(UpstreamErrors.WithLabelValues("test_mode", "TRANSIENT_FAILURE", "other")))
}
