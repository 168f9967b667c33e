package gemini

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// The backend has no built-in structured output, so prompts impose
// JSON-in-text conventions and the decoders here parse the answers
// defensively. Every decode has exactly one fallback path: an error return
// the caller maps to the previous pipeline stage's data.

var indexListPattern = regexp.MustCompile(`\[\s*(?:\d+\s*(?:,\s*\d+\s*)*)?\]`)

// StripCodeFences removes a surrounding Markdown code fence, with or
// without a language tag, from a backend response.
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop the language tag line ("json", "python", ...)
	if idx := strings.Index(trimmed, "\n"); idx != -1 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		if firstLine != "" && !strings.ContainsAny(firstLine, "[{") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// DecodeIndexList extracts the first bracketed integer list from a
// response and returns the indices, rejecting any outside [0, bound).
func DecodeIndexList(text string, bound int) ([]int, error) {
	match := indexListPattern.FindString(StripCodeFences(text))
	if match == "" {
		return nil, fmt.Errorf("no index list found in response")
	}

	var indices []int
	if err := json.Unmarshal([]byte(match), &indices); err != nil {
		return nil, fmt.Errorf("failed to parse index list: %w", err)
	}

	for _, idx := range indices {
		if idx < 0 || idx >= bound {
			return nil, fmt.Errorf("index %d out of bounds [0, %d)", idx, bound)
		}
	}

	return indices, nil
}

// IndexedRevision is one entry of a keyed revision object.
type IndexedRevision struct {
	Severity string   `json:"severity"`
	Items    []string `json:"items"`
}

// DecodeIndexedObject parses a response expected to be a JSON object keyed
// by zero-based index strings. Keys that do not parse as integers in
// [0, bound) are dropped rather than failing the whole decode.
func DecodeIndexedObject(text string, bound int) (map[int]IndexedRevision, error) {
	cleaned := StripCodeFences(text)

	// Locate the outermost object in case the backend added prose around it
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var raw map[string]IndexedRevision
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse revision object: %w", err)
	}

	revisions := make(map[int]IndexedRevision, len(raw))
	for key, rev := range raw {
		var idx int
		if _, err := fmt.Sscanf(key, "%d", &idx); err != nil {
			continue
		}
		if idx < 0 || idx >= bound {
			continue
		}
		revisions[idx] = rev
	}

	return revisions, nil
}
