// Package openfda provides the client for the openFDA drug-label database.
// It resolves a medication name to a normalized label record and exposes the
// raw brand-name search used by the passthrough endpoints.
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/logging"
	"github.com/metricare/patient-api/metrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultBaseURL = "https://api.fda.gov/drug/label.json"

// notFoundPlaceholder is the single-element value for label fields the
// database does not populate.
var notFoundPlaceholder = []string{"N/A"}

// Compile-time check to ensure Client implements LabelSource
var _ interfaces.LabelSource = (*Client)(nil)

// NotFoundError reports a lookup that returned no matching label.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no information found for '%s'", e.Name)
}

// Client queries the openFDA drug-label endpoint
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	titleCaser cases.Caser
}

// NewClient creates an openFDA client. The API key is optional; without it
// openFDA serves requests under the anonymous quota.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		titleCaser: cases.Title(language.English),
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint, used in tests
func NewClientWithBaseURL(baseURL, apiKey string, timeout time.Duration) *Client {
	c := NewClient(apiKey, timeout)
	c.baseURL = baseURL
	return c
}

// labelResponse mirrors the relevant subset of the upstream payload
type labelResponse struct {
	Results []labelResult `json:"results"`
}

type labelResult struct {
	Purpose                 []string   `json:"purpose"`
	Warnings                []string   `json:"warnings"`
	DosageAndAdministration []string   `json:"dosage_and_administration"`
	AdverseReactions        []string   `json:"adverse_reactions"`
	DrugInteractions        []string   `json:"drug_interactions"`
	IndicationsAndUsage     []string   `json:"indications_and_usage"`
	OpenFDA                 openFDARef `json:"openfda"`
}

type openFDARef struct {
	BrandName        []string `json:"brand_name"`
	GenericName      []string `json:"generic_name"`
	ManufacturerName []string `json:"manufacturer_name"`
}

// CanonicalName returns the display form of a drug name ("ADVIL DUAL ACTION"
// becomes "Advil Dual Action").
func (c *Client) CanonicalName(name string) string {
	return c.titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// buildLookupQuery builds the three-clause boolean search for a drug name.
// openFDA treats the literal "+" between clauses as the OR operator, so the
// query must be assembled by hand: url.Values.Encode would percent-encode
// the pluses and silently degrade the search to its first clause.
func (c *Client) buildLookupQuery(name string) string {
	trimmed := strings.TrimSpace(name)
	upper := strings.ToUpper(trimmed)

	quote := func(s string) string {
		// QueryEscape encodes spaces inside a term as "+", which is what
		// the upstream query syntax expects.
		return `%22` + url.QueryEscape(s) + `%22`
	}

	clauses := []string{
		"openfda.brand_name:" + quote(trimmed),
		"openfda.generic_name:" + quote(upper),
		"openfda.substance_name:" + quote(upper),
	}
	return strings.Join(clauses, "+OR+")
}

// lookupURL assembles the full request URL for GetDrugInfo
func (c *Client) lookupURL(name string) string {
	u := fmt.Sprintf("%s?search=%s&limit=1", c.baseURL, c.buildLookupQuery(name))
	if c.apiKey != "" {
		u += "&api_key=" + url.QueryEscape(c.apiKey)
	}
	return u
}

// GetDrugInfo resolves a drug name (brand or generic, case-insensitive) to
// a LabelRecord. First match wins. A miss returns *NotFoundError.
func (c *Client) GetDrugInfo(ctx context.Context, name string) (interfaces.LabelRecord, error) {
	var record interfaces.LabelRecord

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lookupURL(name), nil)
	if err != nil {
		return record, fmt.Errorf("failed to create label request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveLabelRequest("lookup", "error")
		return record, fmt.Errorf("label lookup for %q failed: %w", name, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("Failed to close label response body", "error", err)
		}
	}()

	// openFDA answers a query with zero hits with 404
	if resp.StatusCode == http.StatusNotFound {
		metrics.ObserveLabelRequest("lookup", "miss")
		return record, &NotFoundError{Name: name}
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveLabelRequest("lookup", "error")
		return record, fmt.Errorf("label lookup for %q returned status %d", name, resp.StatusCode)
	}

	var payload labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.ObserveLabelRequest("lookup", "error")
		return record, fmt.Errorf("failed to decode label response: %w", err)
	}

	if len(payload.Results) == 0 {
		metrics.ObserveLabelRequest("lookup", "miss")
		return record, &NotFoundError{Name: name}
	}

	metrics.ObserveLabelRequest("lookup", "ok")
	return c.normalizeLabel(payload.Results[0]), nil
}

// normalizeLabel maps an upstream hit to a LabelRecord, substituting the
// placeholder for missing fields. Brand and generic names come back from
// the database in inconsistent casing (often all caps) and are normalized
// to their display form.
func (c *Client) normalizeLabel(result labelResult) interfaces.LabelRecord {
	orPlaceholder := func(values []string) []string {
		if len(values) == 0 {
			return notFoundPlaceholder
		}
		return values
	}

	canonical := func(values []string) []string {
		if len(values) == 0 {
			return notFoundPlaceholder
		}
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = c.CanonicalName(v)
		}
		return out
	}

	return interfaces.LabelRecord{
		BrandNames:   canonical(result.OpenFDA.BrandName),
		GenericNames: canonical(result.OpenFDA.GenericName),
		Manufacturer: orPlaceholder(result.OpenFDA.ManufacturerName),
		Purpose:      orPlaceholder(result.Purpose),
		Warnings:     orPlaceholder(result.Warnings),
		Dosage:       orPlaceholder(result.DosageAndAdministration),
		SideEffects:  orPlaceholder(result.AdverseReactions),
		Interactions: orPlaceholder(result.DrugInteractions),
		Indications:  orPlaceholder(result.IndicationsAndUsage),
	}
}

// IsPlaceholder reports whether a label field carries the not-found placeholder
func IsPlaceholder(values []string) bool {
	return len(values) == 1 && values[0] == "N/A"
}

// SearchDrugs runs a raw brand-name search (limit 5) and returns the
// upstream JSON body untouched
func (c *Client) SearchDrugs(ctx context.Context, query string) ([]byte, error) {
	u := fmt.Sprintf("%s?search=openfda.brand_name:%s&limit=5", c.baseURL, url.QueryEscape(query))
	if c.apiKey != "" {
		u += "&api_key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveLabelRequest("search", "error")
		return nil, fmt.Errorf("drug search for %q failed: %w", query, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("Failed to close search response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveLabelRequest("search", "error")
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	metrics.ObserveLabelRequest("search", "ok")
	return body, nil
}

// Ping checks reachability of the label database with a minimal query
func (c *Client) Ping(ctx context.Context) error {
	u := c.baseURL + "?limit=1"
	if c.apiKey != "" {
		u += "&api_key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveLabelRequest("ping", "error")
		return fmt.Errorf("label database unreachable: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("Failed to close ping response body", "error", err)
		}
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		metrics.ObserveLabelRequest("ping", "error")
		return fmt.Errorf("label database unhealthy: status %d", resp.StatusCode)
	}

	metrics.ObserveLabelRequest("ping", "ok")
	return nil
}
