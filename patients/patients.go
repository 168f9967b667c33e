// Package patients provides the static patient directory for the patient API.
// Records are seeded in-memory; there is no persistent store. Unknown patient
// ids fall back to a stub profile so the dashboard endpoints never 404.
package patients

// Patient holds basic demographic info.
type Patient struct {
	Name       string `json:"name"`
	PatientID  string `json:"patientid"`
	PatientDOB string `json:"patientDOB"`
}

// HistoryEntry is one clinical history item.
type HistoryEntry struct {
	Type  string   `json:"type"`
	Label string   `json:"label"`
	Date  string   `json:"date"`
	Items []string `json:"items"`
}

// Medication is one currently prescribed drug.
type Medication struct {
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Conflicts   []string `json:"conflicts"`
	Items       []string `json:"items"`
	Description *string  `json:"description"`
}

// FamilyHistoryEntry is one relative and their known conditions.
type FamilyHistoryEntry struct {
	Type       string   `json:"type"`
	Relation   string   `json:"relation"`
	Label      string   `json:"label"`
	Conditions []string `json:"conditions"`
}

// Record bundles everything the directory knows about one patient.
type Record struct {
	Patient       Patient
	History       []HistoryEntry
	Medications   []Medication
	FamilyHistory []FamilyHistoryEntry
}

// Directory is a read-only lookup table of patient records.
type Directory struct {
	records map[string]Record
}

// NewDirectory creates a directory seeded with the sample records.
func NewDirectory() *Directory {
	return &Directory{records: sampleRecords()}
}

// GetPatient returns demographics for the given id. Unknown ids get the
// stub profile with a BIO-prefixed id, matching the dashboard contract.
func (d *Directory) GetPatient(id string) Patient {
	if rec, ok := d.records[id]; ok {
		return rec.Patient
	}
	return Patient{
		Name:       "John Doe",
		PatientID:  "BIO-" + id,
		PatientDOB: "Jan 12, 1984",
	}
}

// GetHistory returns the clinical history entries for the given id.
func (d *Directory) GetHistory(id string) []HistoryEntry {
	if rec, ok := d.records[id]; ok {
		return rec.History
	}
	return defaultHistory()
}

// GetMedications returns the current medications for the given id.
// Labels use names the label database recognizes (brand or generic).
func (d *Directory) GetMedications(id string) []Medication {
	if rec, ok := d.records[id]; ok {
		return rec.Medications
	}
	return defaultMedications()
}

// GetFamilyHistory returns relatives and conditions for the given id.
func (d *Directory) GetFamilyHistory(id string) []FamilyHistoryEntry {
	if rec, ok := d.records[id]; ok {
		return rec.FamilyHistory
	}
	return defaultFamilyHistory()
}

// Known reports whether the id has a seeded record.
func (d *Directory) Known(id string) bool {
	_, ok := d.records[id]
	return ok
}
