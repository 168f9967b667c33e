package summary

import (
	"strings"
	"testing"
	"time"
)

func sampleRequest() Request {
	return Request{
		PatientName: "Emily Watson",
		History: []HistoryItem{
			{Label: "Hypertension", Date: "Jan 05, 2024", Items: []string{"BP 150/95", "Next visit Mar 01, 2024"}},
		},
		Medications: []MedicationItem{
			{Label: "Lisinopril", Items: []string{"10mg daily"}},
		},
		FamilyHistory: []FamilyHistoryItem{
			{Label: "Oscar Wilde", Relation: "Father", Conditions: []string{"Hypertension", "Stroke"}},
		},
		Contraindications: []ContraindicationItem{
			{Label: "Lisinopril", Severity: "MODERATE", Items: []string{"Monitor potassium"}},
		},
	}
}

func TestFlattenHistory(t *testing.T) {
	got := FlattenHistory(sampleRequest().History)
	want := "- Hypertension (Jan 05, 2024): BP 150/95, Next visit Mar 01, 2024"
	if got != want {
		t.Errorf("FlattenHistory() = %q, want %q", got, want)
	}
}

func TestFlattenMedications(t *testing.T) {
	got := FlattenMedications(sampleRequest().Medications)
	if got != "- Lisinopril: 10mg daily" {
		t.Errorf("FlattenMedications() = %q", got)
	}
}

func TestFlattenFamilyHistory(t *testing.T) {
	got := FlattenFamilyHistory(sampleRequest().FamilyHistory)
	if got != "- Oscar Wilde (Father): Hypertension, Stroke" {
		t.Errorf("FlattenFamilyHistory() = %q", got)
	}
}

func TestFlattenContraindications(t *testing.T) {
	got := FlattenContraindications(sampleRequest().Contraindications)
	if got != "- Lisinopril [MODERATE]: Monitor potassium" {
		t.Errorf("FlattenContraindications() = %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	now := time.Date(2025, time.February, 28, 10, 0, 0, 0, time.UTC)
	prompt := BuildPrompt(sampleRequest(), now)

	expectations := []string{
		// The model decides due/overdue against the injected date
		"February 28, 2025",
		"2025-02-28",
		"Emily Watson",
		"- Hypertension (Jan 05, 2024): BP 150/95, Next visit Mar 01, 2024",
		"- Lisinopril: 10mg daily",
		"- Oscar Wilde (Father): Hypertension, Stroke",
		"- Lisinopril [MODERATE]: Monitor potassium",
		// Markup contract for the dashboard renderer
		"double asterisks",
		"TRIPLE asterisks",
		"***Cardiology follow-up is 3 months overdue***",
		"Do not add disclaimers",
	}

	for _, want := range expectations {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestBuildPromptEmptySections(t *testing.T) {
	prompt := BuildPrompt(Request{PatientName: "John Doe"}, time.Now())

	if count := strings.Count(prompt, "(none)"); count != 4 {
		t.Errorf("Expected 4 empty-section placeholders, got %d", count)
	}
}
