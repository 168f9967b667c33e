// Package contraindications implements the contraindication pipeline: label
// lookup fan-out, keyword severity classification, patient-specific
// relevance filtering, and plain-language display summarization.
package contraindications

import (
	"strings"

	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/openfda"
)

// Severity is the coarse four-level risk classification.
type Severity string

const (
	SeveritySevere   Severity = "SEVERE"
	SeverityModerate Severity = "MODERATE"
	SeverityLow      Severity = "LOW"
	SeverityUnknown  Severity = "UNKNOWN"
)

const (
	// maxItemLength caps display items derived from raw label text
	maxItemLength = 200

	// maxRawPromptLength caps the raw label text exposed to the backend
	maxRawPromptLength = 1500

	// NoLabelDataItem is the fixed item for drugs the label database misses
	NoLabelDataItem = "No label data available for this drug."

	// NoRiskItem is the fixed item for entries the backend judges risk-free
	NoRiskItem = "No significant drug interaction risks for this patient."

	// ReviewItem replaces long raw label text when summarization fails, so
	// regulatory boilerplate never reaches the end user
	ReviewItem = "Review full prescribing information for details."
)

// Entry is one medication's risk-classification result as shown to the
// end user. It flows through the pipeline stages: raw, filtered (subset),
// summarized (items and severity rewritten).
type Entry struct {
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Severity    Severity `json:"severity"`
	Items       []string `json:"items"`
	Description *string  `json:"description"`

	// rawText is the untruncated label text backing Items, exposed to the
	// summarizer prompt only.
	rawText []string
}

// PatientContext is the read-only patient input used to build prompts.
type PatientContext struct {
	Name              string
	Medications       []string
	HistoryText       string
	FamilyHistoryText string
}

var severeKeywords = []string{"death", "fatal", "severe", "life-threatening"}
var moderateKeywords = []string{"caution", "avoid", "risk", "monitor"}

// ClassifySeverity derives a severity tag from label warning text. The
// checks are sequential first-match-wins, so a SEVERE keyword always beats
// a MODERATE one in the same text.
func ClassifySeverity(warnings []string) Severity {
	text := strings.ToLower(strings.Join(warnings, " "))

	for _, keyword := range severeKeywords {
		if strings.Contains(text, keyword) {
			return SeveritySevere
		}
	}
	for _, keyword := range moderateKeywords {
		if strings.Contains(text, keyword) {
			return SeverityModerate
		}
	}
	return SeverityLow
}

// CoerceSeverity forces a backend-supplied severity into the three display
// levels; anything unrecognized becomes LOW.
func CoerceSeverity(value string) Severity {
	switch Severity(strings.ToUpper(strings.TrimSpace(value))) {
	case SeveritySevere:
		return SeveritySevere
	case SeverityModerate:
		return SeverityModerate
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityLow
	}
}

// truncateItems caps each item at maxItemLength characters
func truncateItems(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = truncateRunes(item, maxItemLength)
	}
	return out
}

// truncateRunes cuts s after limit characters. The cut falls on a rune
// boundary so multibyte label text never degrades to invalid UTF-8.
func truncateRunes(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

// NewEntry builds the raw pipeline entry for one medication. A lookup
// failure of any kind degrades to an UNKNOWN entry instead of aborting the
// batch.
func NewEntry(label string, record interfaces.LabelRecord, lookupErr error) Entry {
	if lookupErr != nil {
		return Entry{
			Type:     "diagnostic",
			Label:    label,
			Severity: SeverityUnknown,
			Items:    []string{NoLabelDataItem},
		}
	}

	// Interactions are the preferred display text; fall back to warnings
	// when the label has none.
	source := record.Interactions
	if openfda.IsPlaceholder(source) {
		source = record.Warnings
	}

	return Entry{
		Type:     "diagnostic",
		Label:    label,
		Severity: ClassifySeverity(record.Warnings),
		Items:    truncateItems(source),
		rawText:  source,
	}
}

// RawText returns the untruncated label text backing the entry's items
func (e Entry) RawText() []string {
	return e.rawText
}
