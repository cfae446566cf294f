// Package metrics exports layout manager activity to Prometheus.
package metrics

import (
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

const namespace = "layoutd"

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// LayoutMetrics counts manager events.
type LayoutMetrics struct {
	Events       *prometheus.CounterVec
	Dirty        prometheus.Gauge
	LayoutsTotal *prometheus.GaugeVec
}

func NewLayoutMetrics(reg prometheus.Registerer) *LayoutMetrics {
	m := &LayoutMetrics{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "manager",
			Name:      "events_total",
			Help:      "Total number of layout manager mutations, by kind.",
		}, []string{"kind"}),
		Dirty: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "manager",
			Name:      "draft_dirty",
			Help:      "1 while the current draft has unsaved edits.",
		}),
		LayoutsTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "layouts",
			Help:      "Number of known layouts, by route.",
		}, []string{"route"}),
	}

	reg.MustRegister(m.Events, m.Dirty, m.LayoutsTotal)
	return m
}

// Attach subscribes to m and seeds the layout gauges for routes.
func (lm *LayoutMetrics) Attach(m *layouts.Manager, routes []string) func() {
	for _, route := range routes {
		lm.LayoutsTotal.WithLabelValues(route).Set(float64(len(m.ListSelectable(route))))
	}

	return m.Subscribe(func(ev layouts.Event) {
		lm.Events.WithLabelValues(string(ev.Kind)).Inc()

		switch ev.Kind {
		case layouts.EventLayoutCreated:
			lm.LayoutsTotal.WithLabelValues(ev.RoutePath).Inc()
		case layouts.EventLayoutDeleted:
			lm.LayoutsTotal.WithLabelValues(ev.RoutePath).Dec()
		}

		if m.IsDirty() {
			lm.Dirty.Set(1)
		} else {
			lm.Dirty.Set(0)
		}
	})
}
