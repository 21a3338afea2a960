package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the storefront client.
type Metrics struct {
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec
	FacadeRequests  *prometheus.CounterVec
	FacadeLatency   *prometheus.HistogramVec
}

// New creates the storefront collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BackendRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopfront_backend_requests_total",
				Help: "Total number of requests to the storefront backend",
			},
			[]string{"operation", "outcome"},
		),
		BackendLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopfront_backend_request_duration_seconds",
				Help:    "Duration of storefront backend requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		FacadeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopfront_facade_requests_total",
				Help: "Total number of requests to the view facade",
			},
			[]string{"method", "path", "status"},
		),
		FacadeLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopfront_facade_request_duration_seconds",
				Help:    "Duration of view facade requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	reg.MustRegister(m.BackendRequests, m.BackendLatency, m.FacadeRequests, m.FacadeLatency)

	return m
}

// ObserveBackend records one backend call.
func (m *Metrics) ObserveBackend(operation, outcome string, seconds float64) {
	m.BackendRequests.WithLabelValues(operation, outcome).Inc()
	m.BackendLatency.WithLabelValues(operation).Observe(seconds)
}
