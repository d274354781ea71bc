package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	gradingRunsTotal      *prometheus.CounterVec
	gradingRunSeconds     *prometheus.HistogramVec
	gradingFallbacksTotal prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used for API observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "consultigo_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "consultigo_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "consultigo_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		gradingRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "consultigo_grading_runs_total",
			Help: "Grading runs by outcome and scoring model.",
		}, []string{"outcome", "model"})

		gradingRunSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "consultigo_grading_run_seconds",
			Help:    "Duration of end-to-end grading runs.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		}, []string{"model"})

		gradingFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "consultigo_grading_fallbacks_total",
			Help: "Grading runs that fell back to the local scorer.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			gradingRunsTotal,
			gradingRunSeconds,
			gradingFallbacksTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// GradingRuns exposes the counter for grading run outcomes.
func GradingRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return gradingRunsTotal
}

// GradingRunDuration exposes the grading run duration histogram.
func GradingRunDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return gradingRunSeconds
}

// GradingFallbacks exposes the counter for fallback scorings.
func GradingFallbacks() prometheus.Counter {
	RegisterMetrics()
	return gradingFallbacksTotal
}
