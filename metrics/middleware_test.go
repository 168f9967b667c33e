package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordsRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Metrics)
	router.Get("/patient/{patientId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestTotals.WithLabelValues(http.MethodGet, "/patient/{patientId}", "418")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/patient/BIO-20231205", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("Expected request counted under the route pattern, got delta %v", got-before)
	}
}

func TestObserveUpstreamRequests(t *testing.T) {
	labelCounter := LabelRequestTotals.WithLabelValues("lookup", "miss")
	before := testutil.ToFloat64(labelCounter)
	ObserveLabelRequest("lookup", "miss")
	if got := testutil.ToFloat64(labelCounter); got != before+1 {
		t.Errorf("Expected label counter incremented, got delta %v", got-before)
	}

	genCounter := GenerativeRequestTotals.WithLabelValues("skipped")
	before = testutil.ToFloat64(genCounter)
	ObserveGenerativeRequest("skipped")
	if got := testutil.ToFloat64(genCounter); got != before+1 {
		t.Errorf("Expected generative counter incremented, got delta %v", got-before)
	}
}
