package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/logging"
	"github.com/metricare/patient-api/openfda"
)

// DrugsSearch runs a raw brand-name search against the label database and
// forwards the upstream payload untouched
func DrugsSearch(labels interfaces.LabelSource, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			RespondWithError(w, http.StatusBadRequest, "Missing search term 'q'")
			return
		}

		if err := validator.ValidateDrugName(query); err != nil {
			logging.Warn("Unusual user input", "query", query)
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		body, err := labels.SearchDrugs(r.Context(), query)
		if err != nil {
			logging.Error("Drug search failed", "query", query, "error", err)
			RespondWithError(w, http.StatusBadGateway, "Drug search is currently unavailable")
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

// DrugInfo resolves a brand or generic drug name to its normalized label record
func DrugInfo(labels interfaces.LabelSource, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if err := validator.ValidateDrugName(name); err != nil {
			logging.Warn("Unusual user input", "drug", name)
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		record, err := labels.GetDrugInfo(r.Context(), name)
		if err != nil {
			var notFound *openfda.NotFoundError
			if errors.As(err, &notFound) {
				RespondWithError(w, http.StatusNotFound, notFound.Error())
				return
			}
			logging.Error("Drug lookup failed", "drug", name, "error", err)
			RespondWithError(w, http.StatusBadGateway, "Drug lookup is currently unavailable")
			return
		}

		RespondWithJSON(w, http.StatusOK, record)
	}
}
