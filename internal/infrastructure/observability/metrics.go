// Package observability exposes monitor activity as Prometheus metrics.
package observability

import (
	"context"
	"net/http"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "swapwatch"

var _ application.Reporter = (*Metrics)(nil)

// Metrics holds the monitor metrics and records them from monitor events.
type Metrics struct {
	Ticks     *prometheus.CounterVec
	Changes   *prometheus.CounterVec
	Failures  *prometheus.CounterVec
	LastPrice *prometheus.GaugeVec
	LastEvent *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers all metrics on reg. A nil reg gets a fresh registry.
func NewMetrics(reg *prometheus.Registry, namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		Ticks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "ticks_total",
			Help:      "Observations completed per pair, by result",
		}, []string{"pair", "result"}),
		Changes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "changes_total",
			Help:      "Price changes detected per pair",
		}, []string{"pair"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "failures_total",
			Help:      "Failed fetch or extract attempts per pair, by error kind",
		}, []string{"pair", "kind"}),
		LastPrice: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "last_price",
			Help:      "Last observed price per pair (numeric prices only)",
		}, []string{"pair"}),
		LastEvent: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "last_event_timestamp",
			Help:      "Unix timestamp of the last monitor event per pair",
		}, []string{"pair"}),
		gatherer: reg,
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) Report(_ context.Context, e domain.Event) {
	m.Ticks.WithLabelValues(e.Pair, string(e.Kind)).Inc()
	if !e.At.IsZero() {
		m.LastEvent.WithLabelValues(e.Pair).Set(float64(e.At.Unix()))
	}
	switch e.Kind {
	case domain.EventFailed:
		m.Failures.WithLabelValues(e.Pair, domain.ErrorKind(e.Err)).Inc()
	case domain.EventChanged:
		m.Changes.WithLabelValues(e.Pair).Inc()
	}
	if e.Current != nil && e.Current.Numeric {
		m.LastPrice.WithLabelValues(e.Pair).Set(e.Current.Value.InexactFloat64())
	}
}
