package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pharmassist/medications-api/data"
	"github.com/pharmassist/medications-api/health"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
	"github.com/pharmassist/medications-api/qa"
	"github.com/pharmassist/medications-api/validation"
)

func newTestRouter(t *testing.T, loaded bool) *chi.Mux {
	t.Helper()

	store := data.NewMedicationStore()
	store.SetServerStartTime(time.Now())

	if loaded {
		price := func(v float64) *float64 { return &v }
		store.UpdateData([]entities.Medication{
			{
				ID: "0", TradeName: "Panadol", GenericName: "Paracetamol",
				Category: "Analgesic", Indications: "For relief of pain and fever",
				Price: "5.50", PriceNumeric: price(5.50),
				DosageForm: "Tablet", Strength: "500mg",
			},
			{
				ID: "1", TradeName: "Lipitor", GenericName: "Atorvastatin",
				Category: "Statin", Indications: "Lowers cholesterol",
				Price: "25.00", PriceNumeric: price(25.00),
			},
		})
	}

	handler := NewHandler(store, qa.NewEngine(store), health.NewHealthChecker(store), validation.NewDataValidator())

	router := chi.NewRouter()
	router.Get("/api/health", handler.HealthCheck)
	router.Get("/api/medications", handler.RequireData(handler.ListMedications))
	router.Get("/api/medications/{id}", handler.RequireData(handler.GetMedicationByID))
	router.Get("/api/categories", handler.RequireData(handler.GetCategories))
	router.Post("/api/answer", handler.RequireData(handler.AnswerQuestion))
	router.Post("/api/search/advanced", handler.RequireData(handler.AdvancedSearch))
	router.Get("/api/statistics", handler.RequireData(handler.GetStatistics))

	return router
}

func doRequest(t *testing.T, router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("unloaded store", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(t, false), http.MethodGet, "/api/health", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", rec.Code)
		}
	})

	t.Run("loaded store", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(t, true), http.MethodGet, "/api/health", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if body["status"] != "healthy" {
			t.Errorf("expected healthy status, got %v", body["status"])
		}
	})
}

func TestListMedications(t *testing.T) {
	router := newTestRouter(t, true)

	t.Run("full list", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/medications", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var medications []entities.Medication
		if err := json.Unmarshal(rec.Body.Bytes(), &medications); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if len(medications) != 2 {
			t.Errorf("expected 2 medications, got %d", len(medications))
		}
	})

	t.Run("search filter", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/medications?search=lipitor", "")

		var medications []entities.Medication
		if err := json.Unmarshal(rec.Body.Bytes(), &medications); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if len(medications) != 1 || medications[0].TradeName != "Lipitor" {
			t.Errorf("expected only Lipitor, got %v", medications)
		}
	})

	t.Run("limit", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/medications?limit=1", "")

		var medications []entities.Medication
		if err := json.Unmarshal(rec.Body.Bytes(), &medications); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if len(medications) != 1 {
			t.Errorf("expected 1 medication, got %d", len(medications))
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/medications?limit=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("dangerous search term", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/medications?search=%3Cscript%3E", "")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unloaded store returns 503", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(t, false), http.MethodGet, "/api/medications", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", rec.Code)
		}
	})
}

func TestGetMedicationByID(t *testing.T) {
	router := newTestRouter(t, true)

	t.Run("found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/medications/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var med entities.Medication
		if err := json.Unmarshal(rec.Body.Bytes(), &med); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if med.TradeName != "Lipitor" {
			t.Errorf("expected Lipitor, got %s", med.TradeName)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/medications/99", "")

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/medications/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetCategories(t *testing.T) {
	rec := doRequest(t, newTestRouter(t, true), http.MethodGet, "/api/categories", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var categories []string
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Analgesic" || categories[1] != "Statin" {
		t.Errorf("expected sorted categories, got %v", categories)
	}
}

func TestAnswerQuestion(t *testing.T) {
	router := newTestRouter(t, true)

	t.Run("answered question", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/answer",
			`{"question": "How much does Lipitor cost?"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if !strings.Contains(body["answer"], "**Lipitor** is priced at 25.00.") {
			t.Errorf("unexpected answer: %q", body["answer"])
		}
	})

	t.Run("empty question", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/answer", `{"question": "  "}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if body["error"] != "No question provided" {
			t.Errorf("unexpected error message: %q", body["error"])
		}
	})

	t.Run("missing question field", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/answer", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/answer", `{"question": `)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("trailing content rejected", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/answer", `{"question": "hi"}{"extra": 1}`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAdvancedSearch(t *testing.T) {
	router := newTestRouter(t, true)

	t.Run("price range", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/search/advanced",
			`{"min_price": 10, "max_price": 30}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var medications []entities.Medication
		if err := json.Unmarshal(rec.Body.Bytes(), &medications); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if len(medications) != 1 || medications[0].TradeName != "Lipitor" {
			t.Errorf("expected only Lipitor in range, got %v", medications)
		}
	})

	t.Run("malformed criteria", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/search/advanced", `[`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("dangerous term", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/search/advanced",
			`{"trade_name": "<script>alert(1)</script>"}`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetStatistics(t *testing.T) {
	rec := doRequest(t, newTestRouter(t, true), http.MethodGet, "/api/statistics", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats entities.Statistics
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if stats.TotalMedications != 2 {
		t.Errorf("expected 2 medications, got %d", stats.TotalMedications)
	}
	if stats.PriceStatistics.Count != 2 {
		t.Errorf("expected 2 priced records, got %d", stats.PriceStatistics.Count)
	}
}

func TestRespondWithJSONHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, http.StatusOK, map[string]string{"ok": "yes"})

	if got := rec.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("unexpected content type %q", got)
	}
	if rec.Header().Get("Last-Modified") == "" {
		t.Error("expected Last-Modified header to be set")
	}
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, http.StatusNotFound, "Medication not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Medication not found" {
		t.Errorf("unexpected error body: %v", body)
	}
}
