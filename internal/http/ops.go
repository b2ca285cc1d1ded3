// Package http expone la superficie operativa del store: /healthz y /metrics.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/hellojohn-identity/internal/observability/logger"
)

// Pinger es lo mínimo que /healthz necesita de la conexión al store.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// OpsConfig agrupa las dependencias del router operativo.
type OpsConfig struct {
	Store Pinger
	// Gatherer de /metrics (default: prometheus.DefaultGatherer)
	Gatherer    prometheus.Gatherer
	PingTimeout time.Duration
	Version     string
}

// HealthResponse es el body de GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"` // ready | unavailable
	Adapter string `json:"adapter"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewOpsRouter arma el router con /healthz y /metrics.
func NewOpsRouter(cfg OpsConfig) http.Handler {
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 2 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", healthz(cfg))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	return r
}

func healthz(cfg OpsConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), cfg.PingTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ready", Adapter: cfg.Store.Name(), Version: cfg.Version}
		status := http.StatusOK
		if err := cfg.Store.Ping(ctx); err != nil {
			logger.From(ctx).Warn("store ping failed", logger.Adapter(resp.Adapter), logger.Err(err))
			resp.Status = "unavailable"
			resp.Error = err.Error()
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
