// Package metrics holds the Prometheus collectors for store operations and UI requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storiesdb"

// Metrics owns a private registry so tests can create independent instances.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	storeOps      *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
}

// New creates a Metrics instance with Go and process collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by operation and result.",
		}, []string{"operation", "result"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of store operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "UI requests by screen, method and status code.",
		}, []string{"screen", "method", "code"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.storeOps,
		m.storeDuration,
		m.httpRequests,
	)

	return m
}

// ObserveStore records one store operation that started at start.
func (m *Metrics) ObserveStore(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeOps.WithLabelValues(operation, result).Inc()
	m.storeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveRequest records one served UI request.
func (m *Metrics) ObserveRequest(screen, method string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(screen, method, strconv.Itoa(code)).Inc()
}

// Gatherer exposes the registry for scraping and tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
