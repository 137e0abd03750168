// Package handlers provides HTTP request handlers for the medications
// API endpoints: medication listing and lookup, category listing,
// advanced search, dataset statistics, question answering and health
// checks. Handlers receive their dependencies by injection and respond
// with the shared JSON helpers.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pharmassist/medications-api/interfaces"
	"github.com/pharmassist/medications-api/logging"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// Handler bundles the dependencies shared by all endpoint handlers
type Handler struct {
	dataStore interfaces.DataStore
	answerer  interfaces.Answerer
	checker   interfaces.HealthChecker
	validator interfaces.DataValidator
}

// NewHandler creates a new Handler with injected dependencies
func NewHandler(dataStore interfaces.DataStore, answerer interfaces.Answerer,
	checker interfaces.HealthChecker, validator interfaces.DataValidator) *Handler {
	return &Handler{
		dataStore: dataStore,
		answerer:  answerer,
		checker:   checker,
		validator: validator,
	}
}

// HealthCheck returns service health; 503 while the dataset is unloaded
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	_, data, httpStatus := h.checker.HealthCheck()
	RespondWithJSON(w, httpStatus, data)
}

// ListMedications returns medications filtered by the search, category
// and limit query parameters. All parameters are optional; without any,
// the full table is returned in dataset order.
func (h *Handler) ListMedications(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	limitStr := r.URL.Query().Get("limit")

	if err := h.validator.ValidateSearchTerm(search); err != nil {
		logging.Warn("Rejected search term", "error", err)
		RespondWithError(w, http.StatusBadRequest, "Invalid search term")
		return
	}

	limit := 0
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	medications := h.dataStore.Search(search, category, limit)
	RespondWithJSON(w, http.StatusOK, medications)
}

// GetCategories returns the sorted distinct category list
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.dataStore.GetCategories())
}

// GetMedicationByID returns a single medication or 404
func (h *Handler) GetMedicationByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.validator.ValidateID(id); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid medication id")
		return
	}

	med, found := h.dataStore.GetMedicationByID(id)
	if !found {
		RespondWithError(w, http.StatusNotFound, "Medication not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, med)
}

// answerRequest is the POST /api/answer request body
type answerRequest struct {
	Question string `json:"question"`
}

// AnswerQuestion runs the question-answering pipeline over the posted
// question. Missing or empty questions are rejected with 400 before the
// pipeline runs.
func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question := strings.TrimSpace(req.Question)
	if err := h.validator.ValidateQuestion(question); err != nil {
		logging.Warn("Rejected question", "error", err)
		RespondWithError(w, http.StatusBadRequest, "No question provided")
		return
	}

	logging.Info("Received question", "question", truncate(question, 100))

	answer := h.answerer.Answer(question)

	logging.Info("Generated answer", "answer", truncate(answer, 100))
	RespondWithJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// AdvancedSearch filters the table by the posted criteria object
func (h *Handler) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var criteria entities.SearchCriteria
	if err := decodeJSONBody(r, &criteria); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid search criteria")
		return
	}

	for _, term := range []string{criteria.TradeName, criteria.GenericName, criteria.Indication} {
		if err := h.validator.ValidateSearchTerm(term); err != nil {
			logging.Warn("Rejected advanced search term", "error", err)
			RespondWithError(w, http.StatusBadRequest, "Invalid search term")
			return
		}
	}

	results := h.dataStore.AdvancedSearch(criteria)
	RespondWithJSON(w, http.StatusOK, results)
}

// GetStatistics returns the dataset statistics object
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.dataStore.Statistics())
}

// RequireData wraps data-serving handlers with a 503 guard while the
// dataset is unloaded
func (h *Handler) RequireData(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(h.dataStore.GetMedications()) == 0 {
			RespondWithError(w, http.StatusServiceUnavailable, "Medication data not available")
			return
		}
		next(w, r)
	}
}

func decodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	// Reject trailing garbage after the JSON object
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected trailing content")
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
