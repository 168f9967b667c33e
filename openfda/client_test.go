package openfda

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBuildLookupQuery(t *testing.T) {
	client := NewClient("", time.Second)

	query := client.buildLookupQuery("advil dual action")

	// The literal "+OR+" between clauses is the upstream OR operator and
	// must survive assembly un-percent-encoded.
	if strings.Count(query, "+OR+") != 2 {
		t.Errorf("Expected two +OR+ separators, got %q", query)
	}
	if strings.Contains(query, "%2B") {
		t.Errorf("Plus signs must not be percent-encoded: %q", query)
	}

	expectedClauses := []string{
		`openfda.brand_name:%22advil+dual+action%22`,
		`openfda.generic_name:%22ADVIL+DUAL+ACTION%22`,
		`openfda.substance_name:%22ADVIL+DUAL+ACTION%22`,
	}
	for _, clause := range expectedClauses {
		if !strings.Contains(query, clause) {
			t.Errorf("Expected query to contain %q, got %q", clause, query)
		}
	}
}

func TestGetDrugInfo(t *testing.T) {
	var capturedQuery string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery

		resp := map[string]any{
			"results": []map[string]any{
				{
					"warnings":          []string{"May be fatal in overdose"},
					"drug_interactions": []string{"Avoid alcohol"},
					"openfda": map[string]any{
						"brand_name":   []string{"Tylenol"},
						"generic_name": []string{"ACETAMINOPHEN"},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	client := NewClientWithBaseURL(ts.URL, "", time.Second)

	record, err := client.GetDrugInfo(context.Background(), "Tylenol")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(capturedQuery, "+OR+") {
		t.Errorf("Expected raw query to carry literal +OR+, got %q", capturedQuery)
	}
	if !strings.Contains(capturedQuery, "limit=1") {
		t.Errorf("Expected limit=1, got %q", capturedQuery)
	}

	if record.BrandNames[0] != "Tylenol" {
		t.Errorf("Expected brand name mapped, got %v", record.BrandNames)
	}
	// The database serves generic names in all caps; the record carries
	// the display form.
	if record.GenericNames[0] != "Acetaminophen" {
		t.Errorf("Expected generic name canonicalized, got %v", record.GenericNames)
	}
	if record.Interactions[0] != "Avoid alcohol" {
		t.Errorf("Expected interactions mapped, got %v", record.Interactions)
	}

	// Fields the payload omitted get the placeholder
	if !IsPlaceholder(record.Purpose) {
		t.Errorf("Expected placeholder for missing purpose, got %v", record.Purpose)
	}
	if !IsPlaceholder(record.Dosage) {
		t.Errorf("Expected placeholder for missing dosage, got %v", record.Dosage)
	}
}

func TestGetDrugInfoNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream 404",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": {"code": "NOT_FOUND"}}`, http.StatusNotFound)
			},
		},
		{
			name: "empty results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			client := NewClientWithBaseURL(ts.URL, "", time.Second)

			_, err := client.GetDrugInfo(context.Background(), "nosuchdrug")

			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("Expected NotFoundError, got %v", err)
			}
			if !strings.Contains(notFound.Error(), "nosuchdrug") {
				t.Errorf("Expected drug name in error, got %q", notFound.Error())
			}
		})
	}
}

func TestGetDrugInfoServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClientWithBaseURL(ts.URL, "", time.Second)

	_, err := client.GetDrugInfo(context.Background(), "aspirin")
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		t.Error("Server errors must not be reported as not-found")
	}
}

func TestSearchDrugsPassthrough(t *testing.T) {
	upstream := `{"meta": {}, "results": [{"openfda": {"brand_name": ["Advil"]}}]}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "limit=5") {
			t.Errorf("Expected limit=5, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(upstream))
	}))
	defer ts.Close()

	client := NewClientWithBaseURL(ts.URL, "", time.Second)

	body, err := client.SearchDrugs(context.Background(), "advil")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(body) != upstream {
		t.Errorf("Expected upstream body untouched, got %q", string(body))
	}
}

func TestPing(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		client := NewClientWithBaseURL(ts.URL, "", time.Second)
		if err := client.Ping(context.Background()); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		client := NewClientWithBaseURL(ts.URL, "", time.Second)
		if err := client.Ping(context.Background()); err == nil {
			t.Error("Expected error for 500 response")
		}
	})
}

func TestCanonicalName(t *testing.T) {
	client := NewClient("", time.Second)

	tests := []struct {
		input    string
		expected string
	}{
		{"LISINOPRIL", "Lisinopril"},
		{"  advil dual action  ", "Advil Dual Action"},
		{"tylenol", "Tylenol"},
	}

	for _, tt := range tests {
		if got := client.CanonicalName(tt.input); got != tt.expected {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsPlaceholder(t *testing.T) {
	if !IsPlaceholder([]string{"N/A"}) {
		t.Error("Expected single N/A to be the placeholder")
	}
	if IsPlaceholder([]string{"N/A", "more"}) {
		t.Error("Multi-element slices are not the placeholder")
	}
	if IsPlaceholder([]string{"real warning"}) {
		t.Error("Real content is not the placeholder")
	}
	if IsPlaceholder(nil) {
		t.Error("Nil is not the placeholder")
	}
}
