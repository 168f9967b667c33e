package patients

import "testing"

func TestGetPatient(t *testing.T) {
	directory := NewDirectory()

	tests := []struct {
		name         string
		id           string
		expectedName string
		expectedID   string
		known        bool
	}{
		{
			name:         "seeded patient",
			id:           "BIO-20240308",
			expectedName: "Emily Watson",
			expectedID:   "BIO-20240308",
			known:        true,
		},
		{
			name:         "another seeded patient",
			id:           "BIO-20231205",
			expectedName: "John Doe",
			expectedID:   "BIO-20231205",
			known:        true,
		},
		{
			name:         "unknown id gets stub with prefixed id",
			id:           "12345",
			expectedName: "John Doe",
			expectedID:   "BIO-12345",
			known:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patient := directory.GetPatient(tt.id)

			if patient.Name != tt.expectedName {
				t.Errorf("Expected name %q, got %q", tt.expectedName, patient.Name)
			}
			if patient.PatientID != tt.expectedID {
				t.Errorf("Expected id %q, got %q", tt.expectedID, patient.PatientID)
			}
			if directory.Known(tt.id) != tt.known {
				t.Errorf("Expected Known(%q) = %v", tt.id, tt.known)
			}
		})
	}
}

func TestUnknownIDGetsDefaults(t *testing.T) {
	directory := NewDirectory()

	history := directory.GetHistory("nobody")
	if len(history) == 0 {
		t.Error("Expected default history for unknown id")
	}

	medications := directory.GetMedications("nobody")
	if len(medications) == 0 {
		t.Fatal("Expected default medications for unknown id")
	}
	for _, med := range medications {
		if med.Label == "" {
			t.Error("Default medications must carry label names the label database can resolve")
		}
	}

	familyHistory := directory.GetFamilyHistory("nobody")
	if len(familyHistory) == 0 {
		t.Error("Expected default family history for unknown id")
	}
}

func TestRecordShapes(t *testing.T) {
	directory := NewDirectory()

	for _, id := range []string{"BIO-20231205", "BIO-20240308", "BIO-20240521"} {
		if !directory.Known(id) {
			t.Errorf("Expected %q to be seeded", id)
			continue
		}

		for _, entry := range directory.GetHistory(id) {
			if entry.Type != "diagnostic" {
				t.Errorf("History entries carry type diagnostic, got %q", entry.Type)
			}
			if entry.Label == "" || entry.Date == "" {
				t.Errorf("History entry incomplete: %+v", entry)
			}
		}

		for _, entry := range directory.GetFamilyHistory(id) {
			if entry.Relation == "" {
				t.Errorf("Family history entry missing relation: %+v", entry)
			}
		}
	}
}
