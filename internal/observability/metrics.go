package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	httpRequestsTotal        *prometheus.CounterVec
	httpLatencySeconds       *prometheus.HistogramVec
	httpErrorsTotal          *prometheus.CounterVec
	applicationsTotal        *prometheus.CounterVec
	statusTransitionsTotal   *prometheus.CounterVec
	validationRejectedTotal  *prometheus.CounterVec
	invariantViolationsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taapply_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taapply_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taapply_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		applicationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taapply_applications_total",
			Help: "Applications created or updated in place.",
		}, []string{"action"})

		statusTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taapply_status_transitions_total",
			Help: "Application status transitions, labelled by target status.",
		}, []string{"status"})

		validationRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taapply_validation_rejections_total",
			Help: "Submissions rejected by document validation.",
		}, []string{"reason"})

		invariantViolationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taapply_invariant_violations_total",
			Help: "Programming-logic faults detected at runtime. Should stay at zero.",
		}, []string{"kind"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			applicationsTotal,
			statusTransitionsTotal,
			validationRejectedTotal,
			invariantViolationsTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// Applications exposes the counter for created and updated applications.
func Applications() *prometheus.CounterVec {
	RegisterMetrics()
	return applicationsTotal
}

// StatusTransitions exposes the counter for review status changes.
func StatusTransitions() *prometheus.CounterVec {
	RegisterMetrics()
	return statusTransitionsTotal
}

// ValidationRejections exposes the counter for rejected submissions.
func ValidationRejections() *prometheus.CounterVec {
	RegisterMetrics()
	return validationRejectedTotal
}

// InvariantViolations exposes the counter for detected logic faults.
func InvariantViolations() *prometheus.CounterVec {
	RegisterMetrics()
	return invariantViolationsTotal
}
