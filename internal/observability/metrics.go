package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	essayEvaluationsTotal *prometheus.CounterVec
	essayScore            *prometheus.HistogramVec
	essayCacheHitsTotal   prometheus.Counter
	essaySamplesTotal     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the grading API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "essay_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "essay_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "essay_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		essayEvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "essay_evaluations_total",
			Help: "Essays graded, by grade level and letter.",
		}, []string{"grade_level", "letter"})

		essayScore = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "essay_score",
			Help:    "Distribution of numeric rubric scores.",
			Buckets: []float64{50, 55, 60, 65, 70, 75, 80, 85, 90, 100},
		}, []string{"grade_level"})

		essayCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "essay_cache_hits_total",
			Help: "Evaluations served from the Redis cache.",
		})

		essaySamplesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "essay_samples_total",
			Help: "Sample responses generated, by grade level and format.",
		}, []string{"grade_level", "format"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			essayEvaluationsTotal,
			essayScore,
			essayCacheHitsTotal,
			essaySamplesTotal,
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

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// EssayEvaluations exposes the counter of graded essays.
func EssayEvaluations() *prometheus.CounterVec {
	RegisterMetrics()
	return essayEvaluationsTotal
}

// EssayScore exposes the numeric score histogram.
func EssayScore() *prometheus.HistogramVec {
	RegisterMetrics()
	return essayScore
}

// EssayCacheHits exposes the cache hit counter.
func EssayCacheHits() prometheus.Counter {
	RegisterMetrics()
	return essayCacheHitsTotal
}

// EssaySamples exposes the counter of generated samples.
func EssaySamples() *prometheus.CounterVec {
	RegisterMetrics()
	return essaySamplesTotal
}
