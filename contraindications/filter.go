package contraindications

import (
	"context"
	"fmt"
	"strings"

	"github.com/metricare/patient-api/gemini"
	"github.com/metricare/patient-api/logging"
)

// maxFilterItems limits how many items per entry go into the filter prompt
const maxFilterItems = 3

// buildFilterPrompt enumerates indexed entries and asks the backend for a
// strict index-only answer. The index-only format keeps parsing
// deterministic and keeps the backend from inventing new entries.
func buildFilterPrompt(pc PatientContext, entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("You are a clinical assistant reviewing potential drug contraindication warnings for a specific patient.\n\n")
	fmt.Fprintf(&sb, "Patient: %s\n", pc.Name)
	fmt.Fprintf(&sb, "Current medications: %s\n\n", strings.Join(pc.Medications, ", "))

	sb.WriteString("Clinical history:\n")
	sb.WriteString(orNone(pc.HistoryText))
	sb.WriteString("\n\nFamily history:\n")
	sb.WriteString(orNone(pc.FamilyHistoryText))
	sb.WriteString("\n\nContraindication entries (indexed):\n")

	for i, entry := range entries {
		items := entry.Items
		if len(items) > maxFilterItems {
			items = items[:maxFilterItems]
		}
		fmt.Fprintf(&sb, "%d. %s [%s]: %s\n", i, entry.Label, entry.Severity, strings.Join(items, " | "))
	}

	sb.WriteString("\nKeep only the entries that are relevant to THIS patient. ")
	sb.WriteString("Omit drug-drug interaction warnings unless the patient takes both drugs involved. ")
	sb.WriteString("Omit warnings for populations the patient does not belong to (e.g. pregnancy warnings when not applicable).\n\n")
	sb.WriteString("Respond with ONLY a JSON array of the integer indices to keep, e.g. [0, 2, 4]. ")
	sb.WriteString("Respond with [] if no entry is relevant. Do not add any other text.")

	return sb.String()
}

// filterRelevant asks the backend which entries apply to this patient and
// returns that subset in original order. Any failure, malformed answer, or
// out-of-bounds index falls back to the unfiltered input: this stage never
// fails the request.
func (p *Pipeline) filterRelevant(ctx context.Context, pc PatientContext, entries []Entry, runID string) []Entry {
	if len(entries) == 0 {
		return entries
	}

	response, err := p.generator.GenerateText(ctx, buildFilterPrompt(pc, entries), 0.2)
	if err != nil {
		logging.Warn("Relevance filter call failed, keeping all entries", "run_id", runID, "error", err)
		return entries
	}

	indices, err := gemini.DecodeIndexList(response, len(entries))
	if err != nil {
		logging.Warn("Relevance filter response unusable, keeping all entries", "run_id", runID, "error", err)
		return entries
	}

	keep := make(map[int]bool, len(indices))
	for _, idx := range indices {
		keep[idx] = true
	}

	filtered := make([]Entry, 0, len(indices))
	for i, entry := range entries {
		if keep[i] {
			filtered = append(filtered, entry)
		}
	}

	logging.Debug("Relevance filter applied", "run_id", runID, "kept", len(filtered), "total", len(entries))
	return filtered
}

func orNone(text string) string {
	if strings.TrimSpace(text) == "" {
		return "(none)"
	}
	return text
}
