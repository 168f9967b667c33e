// Package gemini provides the client for the generative-text backend.
// All structured-output parsing for the backend lives here too, so every
// caller shares one resilient decoding strategy.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/logging"
	"github.com/metricare/patient-api/metrics"
	"golang.org/x/sync/semaphore"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// NoSummaryFallback is returned whenever the backend is unconfigured or
// produces an empty candidate.
const NoSummaryFallback = "No summary generated."

// Compile-time check to ensure Client implements TextGenerator
var _ interfaces.TextGenerator = (*Client)(nil)

// Client calls the generateContent endpoint. Calls are bounded by a
// weighted semaphore so a burst of summary requests cannot pile unbounded
// blocking work on the backend.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	sem        *semaphore.Weighted
}

// NewClient creates a generative-backend client. An empty API key is
// allowed: every generative call then degrades to the fixed fallback string.
func NewClient(apiKey, model string, timeout time.Duration, maxConcurrency int) *Client {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sem: semaphore.NewWeighted(int64(maxConcurrency)),
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint, used in tests
func NewClientWithBaseURL(baseURL, apiKey, model string, timeout time.Duration, maxConcurrency int) *Client {
	c := NewClient(apiKey, model, timeout, maxConcurrency)
	c.baseURL = baseURL
	return c
}

// Available reports whether the backend is configured with credentials
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Request/response shapes for the generateContent API

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends a single free-text prompt and returns the generated
// text. Temperature is clamped to [0,1]. Without an API key it returns the
// fixed fallback string and no error.
func (c *Client) GenerateText(ctx context.Context, prompt string, temperature float64) (string, error) {
	if !c.Available() {
		logging.Debug("Generative backend not configured, returning fallback")
		metrics.ObserveGenerativeRequest("skipped")
		return NoSummaryFallback, nil
	}

	if temperature < 0 {
		temperature = 0
	}
	if temperature > 1 {
		temperature = 1
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("generative call cancelled while queued: %w", err)
	}
	defer c.sem.Release(1)

	payload := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{Temperature: temperature},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveGenerativeRequest("error")
		return "", fmt.Errorf("generative backend call failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("Failed to close generate response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		metrics.ObserveGenerativeRequest("error")
		return "", fmt.Errorf("generative backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.ObserveGenerativeRequest("error")
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	var sb strings.Builder
	if len(decoded.Candidates) > 0 {
		for _, p := range decoded.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}

	metrics.ObserveGenerativeRequest("ok")

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return NoSummaryFallback, nil
	}

	return text, nil
}
