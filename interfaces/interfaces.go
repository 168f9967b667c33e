// Package interfaces defines core abstractions for the patient API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"time"

	"github.com/metricare/patient-api/patients"
)

// LabelRecord is the normalized result of a drug-label lookup. Fields the
// label database does not populate carry the single-element placeholder
// ["N/A"].
type LabelRecord struct {
	BrandNames   []string `json:"brand_names"`
	GenericNames []string `json:"generic_names"`
	Manufacturer []string `json:"manufacturer"`
	Purpose      []string `json:"purpose"`
	Warnings     []string `json:"warnings"`
	Dosage       []string `json:"dosage"`
	SideEffects  []string `json:"side_effects"`
	Interactions []string `json:"interactions"`
	Indications  []string `json:"indications"`
}

// LabelSource defines the contract for drug-label lookups against the
// external label database.
type LabelSource interface {
	// GetDrugInfo resolves a brand or generic drug name (case-insensitive)
	// to a LabelRecord. A miss returns a NotFoundError; callers must check
	// before treating the record as populated.
	GetDrugInfo(ctx context.Context, name string) (LabelRecord, error)

	// SearchDrugs runs a raw brand-name search and returns the upstream
	// JSON payload untouched.
	SearchDrugs(ctx context.Context, query string) ([]byte, error)

	// Ping checks reachability of the label database.
	Ping(ctx context.Context) error
}

// TextGenerator defines the contract for the generative-text backend.
type TextGenerator interface {
	// GenerateText sends a single free-text prompt and returns free text.
	// Temperature is clamped to [0,1]. When no API key is configured the
	// implementation returns a fixed fallback string and a nil error.
	GenerateText(ctx context.Context, prompt string, temperature float64) (string, error)

	// Available reports whether the backend is configured with credentials.
	Available() bool
}

// PatientSource defines the contract for patient record access.
type PatientSource interface {
	GetPatient(id string) patients.Patient
	GetHistory(id string) []patients.HistoryEntry
	GetMedications(id string) []patients.Medication
	GetFamilyHistory(id string) []patients.FamilyHistoryEntry
}

// InputValidator defines the contract for validating user-supplied input
// before it reaches an upstream query.
type InputValidator interface {
	ValidateDrugName(input string) error
	ValidatePatientID(input string) error
}

// StatusStore defines the contract for upstream status tracking. It
// provides thread-safe access to probe results recorded by the scheduler
// and consumed by the health endpoint.
type StatusStore interface {
	GetLabelSourceStatus() (ok bool, checkedAt time.Time)
	SetLabelSourceStatus(ok bool)
	GetServerStartTime() time.Time
	SetServerStartTime(t time.Time)
}

// Scheduler defines the contract for background job scheduling.
type Scheduler interface {
	Start() error
	Stop()
}
