package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nanobanana-go/internal/config"
	"nanobanana-go/internal/credential"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestEngine(deps Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return BuildEngine(&config.Config{Debug: true}, deps)
}

func TestRootReportsReady(t *testing.T) {
	r := newTestEngine(Dependencies{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, ReadyMessage, w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthzHidesKeys(t *testing.T) {
	pool := credential.NewPool([]string{"AIzaSySECRET0001", "AIzaSySECRET0002"}, nil)
	r := newTestEngine(Dependencies{Pool: pool})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "SECRET")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "pooled", body["mode"])
	require.EqualValues(t, 2, body["keys"])
	require.Equal(t, false, body["fixed_endpoint"])
	require.Equal(t, true, body["ready"])
}

func TestHealthzNotReady(t *testing.T) {
	r := newTestEngine(Dependencies{Ready: func() bool { return false }})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestEngine(Dependencies{})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "nanobanana_http_requests_total")
}

func TestServerShutdown(t *testing.T) {
	s := New("0", newTestEngine(Dependencies{}))
	s.Start()
	require.NoError(t, s.Shutdown(context.Background()))
}
