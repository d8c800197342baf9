package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	ticketOps       *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route, method and status",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		errorCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "HTTP errors by route, method and error code",
			},
			[]string{"path", "method", "code"},
		),
		ticketOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ticket_operations_total",
				Help: "Ticket operations by kind and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}
	m.registry.MustRegister(m.requestCount, m.requestDuration, m.errorCount, m.ticketOps)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordTicketOperation counts a ticket operation; ok=false covers not-found and forbidden alike.
func (m *Metrics) RecordTicketOperation(operation string, ok bool) {
	if m == nil {
		return
	}
	outcome := "applied"
	if !ok {
		outcome = "rejected"
	}
	m.ticketOps.WithLabelValues(operation, outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
