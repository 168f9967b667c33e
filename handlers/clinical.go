package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/metricare/patient-api/contraindications"
	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/logging"
	"github.com/metricare/patient-api/patients"
	"github.com/metricare/patient-api/summary"
)

// patientContextFor assembles the pipeline input from directory data
func patientContextFor(directory interfaces.PatientSource, id string) contraindications.PatientContext {
	patient := directory.GetPatient(id)
	medications := directory.GetMedications(id)

	labels := make([]string, len(medications))
	for i, med := range medications {
		labels[i] = med.Label
	}

	return contraindications.PatientContext{
		Name:              patient.Name,
		Medications:       labels,
		HistoryText:       summary.FlattenHistory(historyItems(directory.GetHistory(id))),
		FamilyHistoryText: summary.FlattenFamilyHistory(familyHistoryItems(directory.GetFamilyHistory(id))),
	}
}

func historyItems(entries []patients.HistoryEntry) []summary.HistoryItem {
	items := make([]summary.HistoryItem, len(entries))
	for i, e := range entries {
		items[i] = summary.HistoryItem{Label: e.Label, Date: e.Date, Items: e.Items}
	}
	return items
}

func familyHistoryItems(entries []patients.FamilyHistoryEntry) []summary.FamilyHistoryItem {
	items := make([]summary.FamilyHistoryItem, len(entries))
	for i, e := range entries {
		items[i] = summary.FamilyHistoryItem{Label: e.Label, Relation: e.Relation, Conditions: e.Conditions}
	}
	return items
}

// GetContraindications runs the contraindication pipeline for the patient's
// current medications. The whole run is bounded by requestTimeout; the
// pipeline degrades per stage, so this handler always answers 200 with a list.
func GetContraindications(directory interfaces.PatientSource, pipeline *contraindications.Pipeline, validator interfaces.InputValidator, requestTimeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := patientID(w, r, validator)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		entries := pipeline.Run(ctx, patientContextFor(directory, id))
		RespondWithJSON(w, http.StatusOK, entries)
	}
}

// PostSummary generates the free-text patient summary from caller-supplied
// clinical data. The response is a single-element list so the dashboard can
// treat it like the other diagnostic collections.
func PostSummary(generator interfaces.TextGenerator, requestTimeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req summary.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(req.PatientName) == "" {
			RespondWithError(w, http.StatusBadRequest, "patient_name is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		text, err := generator.GenerateText(ctx, summary.BuildPrompt(req, time.Now()), 0.3)
		if err != nil {
			logging.Error("Patient summary generation failed", "patient", req.PatientName, "error", err)
			RespondWithError(w, http.StatusInternalServerError, "Failed to generate patient summary")
			return
		}

		RespondWithJSON(w, http.StatusOK, []summary.Result{
			{Type: "diagnostic", Summary: text},
		})
	}
}
