// Package summary assembles the prompt for the doctor-facing free-text
// patient summary, including the due/overdue follow-up markup rules the
// dashboard renders specially.
package summary

import (
	"fmt"
	"strings"
	"time"
)

// Request is the POST /patient/summary body. The list elements reuse the
// wire shapes of the patient endpoints.
type Request struct {
	PatientName       string                 `json:"patient_name"`
	History           []HistoryItem          `json:"history"`
	Medications       []MedicationItem       `json:"medications"`
	FamilyHistory     []FamilyHistoryItem    `json:"family_history"`
	Contraindications []ContraindicationItem `json:"contraindications"`
}

// HistoryItem is one clinical history entry as submitted by the caller
type HistoryItem struct {
	Label string   `json:"label"`
	Date  string   `json:"date"`
	Items []string `json:"items"`
}

// MedicationItem is one medication as submitted by the caller
type MedicationItem struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

// FamilyHistoryItem is one relative as submitted by the caller
type FamilyHistoryItem struct {
	Label      string   `json:"label"`
	Relation   string   `json:"relation"`
	Conditions []string `json:"conditions"`
}

// ContraindicationItem is one contraindication entry as submitted by the caller
type ContraindicationItem struct {
	Label    string   `json:"label"`
	Severity string   `json:"severity"`
	Items    []string `json:"items"`
}

// Result is the single response element
type Result struct {
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// FlattenHistory renders history entries as prompt bullet lines
func FlattenHistory(history []HistoryItem) string {
	lines := make([]string, len(history))
	for i, h := range history {
		lines[i] = fmt.Sprintf("- %s (%s): %s", h.Label, h.Date, strings.Join(h.Items, ", "))
	}
	return strings.Join(lines, "\n")
}

// FlattenMedications renders medications as prompt bullet lines
func FlattenMedications(medications []MedicationItem) string {
	lines := make([]string, len(medications))
	for i, m := range medications {
		lines[i] = fmt.Sprintf("- %s: %s", m.Label, strings.Join(m.Items, ", "))
	}
	return strings.Join(lines, "\n")
}

// FlattenFamilyHistory renders relatives as prompt bullet lines
func FlattenFamilyHistory(familyHistory []FamilyHistoryItem) string {
	lines := make([]string, len(familyHistory))
	for i, f := range familyHistory {
		lines[i] = fmt.Sprintf("- %s (%s): %s", f.Label, f.Relation, strings.Join(f.Conditions, ", "))
	}
	return strings.Join(lines, "\n")
}

// FlattenContraindications renders contraindication entries as prompt bullet lines
func FlattenContraindications(contraindications []ContraindicationItem) string {
	lines := make([]string, len(contraindications))
	for i, c := range contraindications {
		lines[i] = fmt.Sprintf("- %s [%s]: %s", c.Label, c.Severity, strings.Join(c.Items, ", "))
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt assembles the summary prompt. The due/overdue rules are part
// of the prompt contract: items due now or under one month overdue get
// **double asterisks**, items more than one month overdue get ***triple
// asterisks*** with the overdue duration spelled out.
func BuildPrompt(req Request, now time.Time) string {
	currentDateTime := now.Format("January 02, 2006")
	currentDateISO := now.Format("2006-01-02")

	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a clinical assistant. Today's date and time (use this to decide what is \"due now\"): %s (ISO %s).\n\n",
		currentDateTime, currentDateISO)

	sb.WriteString("Summarise the following patient data in 2-4 sentences for a doctor. ")
	sb.WriteString("Take into account their clinical history, current medications, family history, and any potential contraindications or drug interactions. ")
	sb.WriteString("Highlight anything that may need attention (e.g. family risk factors, severe/moderate contraindications).\n\n")

	sb.WriteString("IMPORTANT - Due/overdue follow-ups: From the clinical history, identify any follow-up, check-up, or next visit that is DUE NOW or OVERDUE based on today's date. ")
	sb.WriteString("Always state how much time overdue when relevant (e.g. \"1 week overdue\", \"2 months overdue\").\n")
	sb.WriteString("- For items that are due now or only slightly overdue (e.g. under 1 month), wrap the phrase in double asterisks: **Hypertension follow-up is due now** or **Annual physical is 2 weeks overdue**.\n")
	sb.WriteString("- For items that are SEVERELY overdue (e.g. more than 1 month past due), wrap the phrase in TRIPLE asterisks and include how overdue: ***Cardiology follow-up is 3 months overdue***. Use *** only for severely overdue items so they appear red and bold.\n")
	sb.WriteString("Use ** or *** only for these due/overdue items. Do not add disclaimers.\n\n")

	fmt.Fprintf(&sb, "Patient: %s\n\n", req.PatientName)
	fmt.Fprintf(&sb, "Clinical History:\n%s\n\n", orNone(FlattenHistory(req.History)))
	fmt.Fprintf(&sb, "Current Medications:\n%s\n\n", orNone(FlattenMedications(req.Medications)))
	fmt.Fprintf(&sb, "Family History:\n%s\n\n", orNone(FlattenFamilyHistory(req.FamilyHistory)))
	fmt.Fprintf(&sb, "Potential Contraindications / Interactions:\n%s\n", orNone(FlattenContraindications(req.Contraindications)))

	return sb.String()
}

func orNone(text string) string {
	if strings.TrimSpace(text) == "" {
		return "(none)"
	}
	return text
}
