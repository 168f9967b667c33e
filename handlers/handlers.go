// Package handlers provides HTTP request handlers for the patient API endpoints.
// It includes handlers for patient record access, the contraindication pipeline,
// drug lookups, patient summaries, health checks, and response formatting with
// proper input validation and error handling.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/logging"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	RespondWithJSON(w, code, errorResponse)
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// patientID extracts and validates the patient id path parameter. A second
// return of false means the error response has already been written.
func patientID(w http.ResponseWriter, r *http.Request, validator interfaces.InputValidator) (string, bool) {
	id := chi.URLParam(r, "patientId")
	if err := validator.ValidatePatientID(id); err != nil {
		logging.Warn("Unusual user input", "patient_id", id)
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return id, true
}

// GetPatient returns patient demographics
func GetPatient(directory interfaces.PatientSource, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := patientID(w, r, validator)
		if !ok {
			return
		}
		RespondWithJSON(w, http.StatusOK, directory.GetPatient(id))
	}
}

// GetHistory returns the patient's clinical history entries
func GetHistory(directory interfaces.PatientSource, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := patientID(w, r, validator)
		if !ok {
			return
		}
		RespondWithJSON(w, http.StatusOK, directory.GetHistory(id))
	}
}

// GetMedications returns the patient's current medications
func GetMedications(directory interfaces.PatientSource, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := patientID(w, r, validator)
		if !ok {
			return
		}
		RespondWithJSON(w, http.StatusOK, directory.GetMedications(id))
	}
}

// GetFamilyHistory returns the patient's family history entries
func GetFamilyHistory(directory interfaces.PatientSource, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := patientID(w, r, validator)
		if !ok {
			return
		}
		RespondWithJSON(w, http.StatusOK, directory.GetFamilyHistory(id))
	}
}

// Root returns the welcome message
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{
			"message": "Patient clinical data API. See /health for status.",
		})
	}
}
