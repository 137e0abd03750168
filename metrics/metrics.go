// Package metrics provides Prometheus metrics collection for the
// medications API: HTTP request counters, latency histogram and in-flight
// gauge, plus domain metrics for the dataset and the question pipeline.
// All metrics register with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	QuestionsAnswered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questions_answered_total",
			Help: "Total questions answered, labeled by detected intent",
		},
		[]string{"intent"},
	)

	DatasetRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of medication records in the loaded dataset",
		},
	)

	DatasetReloadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_reload_duration_seconds",
			Help:    "Time spent reloading the dataset",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(QuestionsAnswered)
	prometheus.MustRegister(DatasetRecords)
	prometheus.MustRegister(DatasetReloadDuration)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}
