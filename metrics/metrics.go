// Package metrics provides Prometheus metrics collection for HTTP server monitoring.
// It exports three metrics for tracking HTTP request performance:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// plus counters for the two upstreams (label database, generative backend).
// All metrics are automatically registered with the Prometheus default registry
// during package initialization.
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
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	// LabelRequestTotals counts label-database calls by operation
	// (lookup, search, ping) and outcome (ok, miss, error).
	LabelRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "label_request_total",
			Help: "Total label database requests",
		},
		[]string{"operation", "outcome"},
	)

	// GenerativeRequestTotals counts generative-backend calls by outcome
	// (ok, error, skipped when no API key is configured).
	GenerativeRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generative_request_total",
			Help: "Total generative backend requests",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(LabelRequestTotals)
	prometheus.MustRegister(GenerativeRequestTotals)
}
