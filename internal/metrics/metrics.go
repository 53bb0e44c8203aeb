// Package metrics provides Prometheus metrics for navigation outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "unidelivery"

// Metrics records navigation outcomes on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	resolved   *prometheus.CounterVec
	unresolved *prometheus.CounterVec
	routes     *prometheus.GaugeVec
}

// New creates the navigation metrics and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "navigation",
				Name:      "resolved_total",
				Help:      "Total number of navigations resolved to a route",
			},
			[]string{"role", "route"},
		),
		unresolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "navigation",
				Name:      "unresolved_total",
				Help:      "Total number of navigations no route matched",
			},
			[]string{"role"},
		),
		routes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "routes",
				Help:      "Number of routes in the active route table",
			},
			[]string{"role"},
		),
	}

	m.registry.MustRegister(
		m.resolved,
		m.unresolved,
		m.routes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Resolved counts a navigation that resolved to route.
func (m *Metrics) Resolved(role, route string) {
	m.resolved.WithLabelValues(role, route).Inc()
}

// Unresolved counts a navigation that matched no route.
func (m *Metrics) Unresolved(role string) {
	m.unresolved.WithLabelValues(role).Inc()
}

// ObserveTable records the size of the route table active for role.
func (m *Metrics) ObserveTable(role string, routes int) {
	m.routes.WithLabelValues(role).Set(float64(routes))
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
