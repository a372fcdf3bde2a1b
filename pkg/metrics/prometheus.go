package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	cache    *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder registered on reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcbseries_upstream_attempts_total",
				Help: "Upstream fetch attempts by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcbseries_upstream_retries_total",
				Help: "Retries scheduled after a retryable failure",
			},
			[]string{"endpoint"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bcbseries_upstream_fetch_duration_seconds",
				Help:    "Duration of a logical fetch including retries",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"endpoint"},
		),
		cache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcbseries_cache_requests_total",
				Help: "Response cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordAttempt records one upstream attempt.
func (r *Recorder) RecordAttempt(endpoint, outcome string) {
	r.attempts.WithLabelValues(endpoint, outcome).Inc()
}

// RecordRetry records a scheduled retry.
func (r *Recorder) RecordRetry(endpoint string) {
	r.retries.WithLabelValues(endpoint).Inc()
}

// RecordLatency records fetch latency in seconds.
func (r *Recorder) RecordLatency(endpoint string, seconds float64) {
	r.latency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordCache records a cache hit, miss or error.
func (r *Recorder) RecordCache(result string) {
	r.cache.WithLabelValues(result).Inc()
}
