// Package metrics holds the Prometheus collectors for calls made against the
// ledger API.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts API requests by endpoint and outcome and records their
// latency. A nil *Metrics, or one that was never registered, is a no-op.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	registerOnce sync.Once
}

// New returns unregistered metrics.
func New() *Metrics {
	return &Metrics{}
}

// Register registers the collectors with registry. It is idempotent and a
// no-op for a nil registry.
func (m *Metrics) Register(registry prometheus.Registerer) {
	if m == nil || registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.requests = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sebakscan_api_requests_total",
			Help: "Total number of ledger API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"})

		m.duration = factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sebakscan_api_request_duration_seconds",
			Help:    "Latency of ledger API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"})
	})
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
