package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects request and provider counters for Prometheus scraping.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
	providerErrors  *prometheus.CounterVec
}

// NewMetrics registers the gateway collectors on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authgw_requests_total",
			Help: "HTTP requests by path, method and status code.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "authgw_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		providerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authgw_provider_errors_total",
			Help: "Identity provider errors by operation.",
		}, []string{"operation"}),
	}

	reg.MustRegister(m.requests, m.requestDuration, m.providerErrors)
	return m
}

// RecordRequest increments counters for a finished request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.Observe(duration.Seconds())
}

// RecordProviderError increments the provider error counter for an operation.
func (m *Metrics) RecordProviderError(operation string) {
	if m == nil {
		return
	}
	m.providerErrors.WithLabelValues(operation).Inc()
}

// Handler returns the Prometheus scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
