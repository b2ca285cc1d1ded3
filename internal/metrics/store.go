package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Métricas del document store. Definidas en un paquete standalone para evitar
// ciclos de import entre store (sesión) y los adapters.

var (
	StoreOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "identity_store_ops_total",
		Help: "Operaciones contra el backend del document store por resultado",
	}, []string{"adapter", "op", "result"}) // result: ok|not_found|conflict|error

	StoreOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "identity_store_op_duration_seconds",
		Help:    "Latencia de las operaciones contra el backend del document store",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"adapter", "op"})

	StoreCommitOps = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "identity_store_commit_ops",
		Help:    "Cantidad de operaciones incluidas en cada SaveChanges",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	})
)

// Result clasifica el resultado de una operación para el label "result".
// classify es inyectado por el caller para no depender del paquete de dominio.
func Result(err error, classify func(error) string) string {
	if err == nil {
		return "ok"
	}
	if classify != nil {
		if r := classify(err); r != "" {
			return r
		}
	}
	return "error"
}

// ObserveOp registra una operación del backend.
func ObserveOp(adapter, op, result string, elapsed time.Duration) {
	StoreOpsTotal.WithLabelValues(adapter, op, result).Inc()
	StoreOpDuration.WithLabelValues(adapter, op).Observe(elapsed.Seconds())
}

// RegisterStore registra las métricas del store en reg (o en el default si es nil).
func RegisterStore(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{StoreOpsTotal, StoreOpDuration, StoreCommitOps} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
