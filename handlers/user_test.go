package handlers

import (
	"net/http"
	"testing"

	"ggumjisum/backend/models"
)

func TestCreateUserEndpoint(t *testing.T) {
	r := newTestRouter(t)

	var user models.User
	rec := doJSON(t, r, http.MethodPost, "/users", map[string]interface{}{
		"nickname":     "민지",
		"goal":         "여행 가기",
		"budget_limit": 300000,
		"reset_day":    1,
	}, &user)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if user.ID == "" || user.Nickname != "민지" || user.BudgetLimit != 300000 {
		t.Errorf("user = %+v", user)
	}
}

func TestCreateUserValidationEndpoint(t *testing.T) {
	r := newTestRouter(t)

	bad := []map[string]interface{}{
		{"nickname": "", "budget_limit": 300000, "reset_day": 1},
		{"nickname": "민지", "budget_limit": 0, "reset_day": 1},
		{"nickname": "민지", "budget_limit": 300000, "reset_day": 40},
	}
	for _, body := range bad {
		rec := doJSON(t, r, http.MethodPost, "/users", body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %v status = %d, want 400", body, rec.Code)
		}
	}
}

func TestGetUserEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/users/me", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("pre-onboarding status = %d, want 404", rec.Code)
	}

	onboardUser(t, r, 300000)

	var user models.User
	rec = doJSON(t, r, http.MethodGet, "/users/me", nil, &user)
	if rec.Code != http.StatusOK || user.Nickname != "민지" {
		t.Errorf("user = %d %+v", rec.Code, user)
	}
}
