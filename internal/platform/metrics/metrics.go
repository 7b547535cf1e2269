// Package metrics holds the Prometheus collectors for the returns backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "returns"

// Metrics holds all collectors. A nil *Metrics is valid and records nothing, so services
// and tests can run without a registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Return lifecycle
	ReturnMutations *prometheus.CounterVec

	// Reconciliation
	Reconciliations       *prometheus.CounterVec
	ReconcileDuration     prometheus.Histogram
	SagaCompensations     *prometheus.CounterVec
	CompensationFailures  *prometheus.CounterVec
	StoreBreakerStateFlip *prometheus.CounterVec
}

// New creates a Metrics instance on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	m.ReturnMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "return_mutations_total",
			Help:      "Return create/update/status/delete operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	m.Reconciliations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_order_reconciliations_total",
			Help:      "Purchase order reconciliations by outcome (applied, skipped, conflict, failed)",
		},
		[]string{"outcome"},
	)

	m.ReconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "purchase_order_reconcile_duration_seconds",
			Help:      "Time to snapshot, aggregate, build and write one purchase order",
			Buckets:   prometheus.DefBuckets,
		},
	)

	m.SagaCompensations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saga_compensations_total",
			Help:      "Sagas that failed and were compensated",
		},
		[]string{"operation", "step"},
	)

	m.CompensationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saga_compensation_failures_total",
			Help:      "Compensation steps that failed and left partial state behind",
		},
		[]string{"operation", "step"},
	)

	m.StoreBreakerStateFlip = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_breaker_transitions_total",
			Help:      "Store circuit breaker state transitions",
		},
		[]string{"name", "to"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReturnMutations,
		m.Reconciliations,
		m.ReconcileDuration,
		m.SagaCompensations,
		m.CompensationFailures,
		m.StoreBreakerStateFlip,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordReturnMutation records the outcome of a return mutation
func (m *Metrics) RecordReturnMutation(operation string, success bool) {
	if m == nil {
		return
	}
	m.ReturnMutations.WithLabelValues(operation, outcome(success)).Inc()
}

// RecordReconciliation records one purchase order reconciliation
func (m *Metrics) RecordReconciliation(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Reconciliations.WithLabelValues(result).Inc()
	m.ReconcileDuration.Observe(duration.Seconds())
}

// RecordSagaRollback records a failed saga and the compensation steps that did not succeed
func (m *Metrics) RecordSagaRollback(operation, failedStep string, failedCompensations []string) {
	if m == nil {
		return
	}
	m.SagaCompensations.WithLabelValues(operation, failedStep).Inc()
	for _, step := range failedCompensations {
		m.CompensationFailures.WithLabelValues(operation, step).Inc()
	}
}

// RecordBreakerTransition records a store circuit breaker state change
func (m *Metrics) RecordBreakerTransition(name, to string) {
	if m == nil {
		return
	}
	m.StoreBreakerStateFlip.WithLabelValues(name, to).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
