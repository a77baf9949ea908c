package handlers

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"ggumjisum/backend/database"
	"ggumjisum/backend/services"
)

// newTestRouter builds the full route set over a fresh in-memory app.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	store, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	app, err := services.NewApp(services.Options{
		Store: store,
		Rand:  rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("building app: %v", err)
	}

	h := NewHandler(app)
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/parse", h.ParseText).Methods("POST")
	r.HandleFunc("/transactions", h.AddTransaction).Methods("POST")
	r.HandleFunc("/transactions", h.GetTransactions).Methods("GET")
	r.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	r.HandleFunc("/users", h.CreateUser).Methods("POST")
	r.HandleFunc("/users/me", h.GetUser).Methods("GET")
	r.HandleFunc("/island", h.GetIsland).Methods("GET")
	r.HandleFunc("/island/ack", h.AckIslandEvents).Methods("POST")
	r.HandleFunc("/rescue/quiz", h.GetQuiz).Methods("GET")
	r.HandleFunc("/rescue/answer", h.AnswerQuiz).Methods("POST")
	r.HandleFunc("/analytics/categories", h.GetCategoryAnalytics).Methods("GET")
	r.HandleFunc("/analytics/daily", h.GetDailyAnalytics).Methods("GET")
	return r
}

// doJSON runs one request against the router and decodes the JSON
// response into out (skipped when out is nil).
func doJSON(t *testing.T, r *mux.Router, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

// onboardUser registers the default test user.
func onboardUser(t *testing.T, r *mux.Router, budget int64) {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/users", map[string]interface{}{
		"nickname":     "민지",
		"goal":         "여행 가기",
		"budget_limit": budget,
		"reset_day":    1,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("onboarding status = %d: %s", rec.Code, rec.Body.String())
	}
}
