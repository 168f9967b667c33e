package contraindications

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/metricare/patient-api/gemini"
	"github.com/metricare/patient-api/logging"
)

// maxSummaryItems caps the bullet points kept per summarized entry
const maxSummaryItems = 4

// rawPromptText joins an entry's untruncated label text for the summarizer
// prompt, capped at maxRawPromptLength characters.
func rawPromptText(entry Entry) string {
	text := strings.Join(entry.RawText(), " ")
	if text == "" {
		text = strings.Join(entry.Items, " ")
	}
	return truncateRunes(text, maxRawPromptLength)
}

// buildSummarizePrompt asks the backend to rewrite raw label text into
// short doctor-readable bullet points keyed by entry index.
func buildSummarizePrompt(pc PatientContext, entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("You are a clinical assistant. Rewrite the following drug label excerpts as short, plain-language risk notes for a doctor treating this patient.\n\n")
	fmt.Fprintf(&sb, "Patient: %s\n", pc.Name)
	fmt.Fprintf(&sb, "Current medications: %s\n\n", strings.Join(pc.Medications, ", "))

	sb.WriteString("Clinical history:\n")
	sb.WriteString(orNone(pc.HistoryText))
	sb.WriteString("\n\nFamily history:\n")
	sb.WriteString(orNone(pc.FamilyHistoryText))
	sb.WriteString("\n\nLabel excerpts (indexed):\n")

	for i, entry := range entries {
		fmt.Fprintf(&sb, "%d. %s [%s]: %s\n", i, entry.Label, entry.Severity, rawPromptText(entry))
	}

	sb.WriteString("\nFor each index, produce 1-4 short bullet points covering only risks relevant to this patient, ")
	sb.WriteString("and re-assess the severity as SEVERE, MODERATE or LOW. ")
	fmt.Fprintf(&sb, "If an entry carries no relevant risk for this patient, use exactly one bullet point: %q and severity LOW.\n\n", NoRiskItem)
	sb.WriteString(`Respond with ONLY a JSON object keyed by the zero-based index as a string, `)
	sb.WriteString(`e.g. {"0": {"severity": "MODERATE", "items": ["..."]}}. Do not add any other text.`)

	return sb.String()
}

// summarizeForDisplay rewrites each entry's items and severity from the
// backend's keyed response. Entries whose index is absent from the parsed
// response default to severity LOW with the fixed no-risk sentence. A
// malformed response falls back to the input list, with long raw items
// replaced by a generic pointer to the prescribing information.
func (p *Pipeline) summarizeForDisplay(ctx context.Context, pc PatientContext, entries []Entry, runID string) []Entry {
	if len(entries) == 0 {
		return entries
	}

	response, err := p.generator.GenerateText(ctx, buildSummarizePrompt(pc, entries), 0.2)
	if err != nil {
		logging.Warn("Display summarizer call failed", "run_id", runID, "error", err)
		return redactLongItems(entries)
	}

	revisions, err := gemini.DecodeIndexedObject(response, len(entries))
	if err != nil {
		logging.Warn("Display summarizer response unusable", "run_id", runID, "error", err)
		return redactLongItems(entries)
	}

	summarized := make([]Entry, len(entries))
	for i, entry := range entries {
		revision, ok := revisions[i]
		if !ok || len(revision.Items) == 0 {
			entry.Severity = SeverityLow
			entry.Items = []string{NoRiskItem}
			summarized[i] = entry
			continue
		}

		items := revision.Items
		if len(items) > maxSummaryItems {
			items = items[:maxSummaryItems]
		}

		entry.Severity = CoerceSeverity(revision.Severity)
		entry.Items = items
		summarized[i] = entry
	}

	logging.Debug("Display summarizer applied", "run_id", runID, "entries", len(summarized))
	return summarized
}

// redactLongItems replaces items over 100 characters with the generic
// review sentence so raw regulatory boilerplate never reaches the end user.
func redactLongItems(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, entry := range entries {
		items := make([]string, len(entry.Items))
		for j, item := range entry.Items {
			if utf8.RuneCountInString(item) > 100 {
				item = ReviewItem
			}
			items[j] = item
		}
		entry.Items = items
		out[i] = entry
	}
	return out
}
