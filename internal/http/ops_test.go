package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellojohn-identity/internal/metrics"
)

type fakePinger struct{ err error }

func (f fakePinger) Name() string { return "fake" }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestHealthz(t *testing.T) {
	h := NewOpsRouter(OpsConfig{Store: fakePinger{}, Version: "v1.2.3"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, HealthResponse{Status: "ready", Adapter: "fake", Version: "v1.2.3"}, body)
}

func TestHealthz_Unavailable(t *testing.T) {
	h := NewOpsRouter(OpsConfig{Store: fakePinger{err: errors.New("connection refused")}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.RegisterStore(reg))
	metrics.ObserveOp("fake", "get", "ok", 0)

	h := NewOpsRouter(OpsConfig{Store: fakePinger{}, Gatherer: reg})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "identity_store_ops_total"))
}
