package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// statusRecorder captures the response status for the request counters
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Metrics records request totals, latency and in-flight count. The path
// label uses the chi route pattern, not the raw URL, so patient ids and
// drug names do not explode the label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		HTTPRequestInFlight.Inc()
		defer HTTPRequestInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()

		HTTPRequestTotals.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

// ObserveLabelRequest records one label-database call by operation
// (lookup, search, ping) and outcome (ok, miss, error).
func ObserveLabelRequest(operation, outcome string) {
	LabelRequestTotals.WithLabelValues(operation, outcome).Inc()
}

// ObserveGenerativeRequest records one generative-backend call by outcome
// (ok, error, skipped).
func ObserveGenerativeRequest(outcome string) {
	GenerativeRequestTotals.WithLabelValues(outcome).Inc()
}
