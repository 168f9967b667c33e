package contraindications

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/metricare/patient-api/interfaces"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name     string
		warnings []string
		expected Severity
	}{
		{
			name:     "fatal keyword",
			warnings: []string{"Overdose may be fatal in children"},
			expected: SeveritySevere,
		},
		{
			name:     "death keyword",
			warnings: []string{"Cases of sudden death have been reported"},
			expected: SeveritySevere,
		},
		{
			name:     "life-threatening keyword",
			warnings: []string{"May cause life-threatening reactions"},
			expected: SeveritySevere,
		},
		{
			name:     "severe beats moderate in same text",
			warnings: []string{"Use caution, severe reactions possible"},
			expected: SeveritySevere,
		},
		{
			name:     "caution keyword",
			warnings: []string{"Use with caution in elderly patients"},
			expected: SeverityModerate,
		},
		{
			name:     "monitor keyword",
			warnings: []string{"Monitor liver function regularly"},
			expected: SeverityModerate,
		},
		{
			name:     "no keywords",
			warnings: []string{"May cause mild drowsiness"},
			expected: SeverityLow,
		},
		{
			name:     "empty warnings",
			warnings: []string{},
			expected: SeverityLow,
		},
		{
			name:     "case insensitive match",
			warnings: []string{"FATAL overdose reported"},
			expected: SeveritySevere,
		},
		{
			name:     "keyword split across elements",
			warnings: []string{"first part", "avoid concurrent use"},
			expected: SeverityModerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySeverity(tt.warnings); got != tt.expected {
				t.Errorf("ClassifySeverity() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoerceSeverity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Severity
	}{
		{"uppercase severe", "SEVERE", SeveritySevere},
		{"lowercase moderate", "moderate", SeverityModerate},
		{"padded low", "  low ", SeverityLow},
		{"unknown value coerced to low", "CRITICAL", SeverityLow},
		{"unknown tag coerced to low", "UNKNOWN", SeverityLow},
		{"empty coerced to low", "", SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceSeverity(tt.input); got != tt.expected {
				t.Errorf("CoerceSeverity(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewEntryLookupFailure(t *testing.T) {
	entry := NewEntry("Aspirin", interfaces.LabelRecord{}, errors.New("upstream down"))

	if entry.Severity != SeverityUnknown {
		t.Errorf("Expected severity UNKNOWN, got %v", entry.Severity)
	}
	if len(entry.Items) != 1 || entry.Items[0] != NoLabelDataItem {
		t.Errorf("Expected single no-data item, got %v", entry.Items)
	}
	if entry.Label != "Aspirin" {
		t.Errorf("Expected label preserved, got %q", entry.Label)
	}
}

func TestNewEntryPrefersInteractions(t *testing.T) {
	record := interfaces.LabelRecord{
		Warnings:     []string{"May be fatal when combined with nitrates"},
		Interactions: []string{"Do not combine with nitrates"},
	}

	entry := NewEntry("Sildenafil", record, nil)

	if entry.Severity != SeveritySevere {
		t.Errorf("Expected severity from warnings, got %v", entry.Severity)
	}
	if len(entry.Items) != 1 || entry.Items[0] != "Do not combine with nitrates" {
		t.Errorf("Expected items from interactions, got %v", entry.Items)
	}
}

func TestNewEntryFallsBackToWarnings(t *testing.T) {
	record := interfaces.LabelRecord{
		Warnings:     []string{"Use caution when driving"},
		Interactions: []string{"N/A"},
	}

	entry := NewEntry("Cetirizine", record, nil)

	if len(entry.Items) != 1 || entry.Items[0] != "Use caution when driving" {
		t.Errorf("Expected items from warnings when interactions are placeholder, got %v", entry.Items)
	}
	if entry.Severity != SeverityModerate {
		t.Errorf("Expected MODERATE, got %v", entry.Severity)
	}
}

func TestNewEntryTruncatesLongItems(t *testing.T) {
	long := strings.Repeat("x", 500)
	record := interfaces.LabelRecord{
		Warnings:     []string{"mild"},
		Interactions: []string{long},
	}

	entry := NewEntry("Ibuprofen", record, nil)

	if len(entry.Items[0]) != maxItemLength {
		t.Errorf("Expected item truncated to %d chars, got %d", maxItemLength, len(entry.Items[0]))
	}
	// The untruncated text stays available for the summarizer prompt
	if len(entry.RawText()[0]) != 500 {
		t.Errorf("Expected raw text untruncated, got %d chars", len(entry.RawText()[0]))
	}
}

func TestNewEntryTruncatesOnRuneBoundary(t *testing.T) {
	// The "µ" straddles the 200-character cut; a byte slice would split it
	item := strings.Repeat("a", 199) + "µg per dose"
	record := interfaces.LabelRecord{
		Warnings:     []string{"mild"},
		Interactions: []string{item},
	}

	entry := NewEntry("Metformin", record, nil)

	got := entry.Items[0]
	if !utf8.ValidString(got) {
		t.Fatalf("Truncated item is not valid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != maxItemLength {
		t.Errorf("Expected %d characters, got %d", maxItemLength, utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "µ") {
		t.Errorf("Expected cut after the whole rune, got %q", got[len(got)-4:])
	}
}

func TestTruncateRunesShortInputUntouched(t *testing.T) {
	if got := truncateRunes("éléphant", 100); got != "éléphant" {
		t.Errorf("Expected input under the limit untouched, got %q", got)
	}
}
