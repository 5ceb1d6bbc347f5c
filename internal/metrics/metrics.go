// Package metrics exposes prediction counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	alerts      prometheus.Counter
}

// New registers the counters on a fresh registry so tests and several
// binaries in one process do not collide.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdm",
			Name:      "predictions_total",
			Help:      "Predictions by failure category.",
		}, []string{"category"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdm",
			Name:      "prediction_failures_total",
			Help:      "Failed predictions by error kind.",
		}, []string{"kind"}),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pdm",
			Name:      "alerts_persisted_total",
			Help:      "Alerts appended to the alert log.",
		}),
	}
	m.registry.MustRegister(m.predictions, m.failures, m.alerts)
	return m
}

func (m *Metrics) RecordOutcome(category string, persisted bool) {
	m.predictions.WithLabelValues(category).Inc()
	if persisted {
		m.alerts.Inc()
	}
}

func (m *Metrics) RecordFailure(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
