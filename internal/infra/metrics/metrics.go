// Package metrics exposes authentication counters to Prometheus.
package metrics

import (
	"net/http"

	"noteful/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "noteful"

// AuthMetrics counts authentication attempts and registrations by outcome.
type AuthMetrics struct {
	authentications *prometheus.CounterVec
	registrations   *prometheus.CounterVec
}

var _ usecase.AuthMetrics = (*AuthMetrics)(nil)

// NewRegistry returns a private registry with the Go and process collectors,
// so the global default registry stays untouched.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return registry
}

// NewAuthMetrics creates and registers the auth counters.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	m := &AuthMetrics{
		authentications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "authentications_total",
				Help:      "Total number of authentication attempts by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Total number of registration attempts by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.authentications, m.registrations)

	return m
}

func (m *AuthMetrics) ObserveAuthentication(strategy, outcome string) {
	m.authentications.WithLabelValues(strategy, outcome).Inc()
}

func (m *AuthMetrics) ObserveRegistration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
