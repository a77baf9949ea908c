package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ggumjisum/backend/services"
)

type createUserRequest struct {
	Nickname    string `json:"nickname"`
	Goal        string `json:"goal,omitempty"`
	BudgetLimit int64  `json:"budget_limit"`
	ResetDay    int    `json:"reset_day"`
}

// CreateUser handles POST /users, the onboarding step. Calling it again
// updates the profile while keeping the island's progression.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.app.CreateUser(req.Nickname, req.Goal, req.BudgetLimit, req.ResetDay)
	switch {
	case errors.Is(err, services.ErrInvalidUser):
		writeError(w, http.StatusBadRequest, "nickname, positive budget_limit and reset_day 1-31 are required")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, user)
	}
}

// GetUser handles GET /users/me.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.app.User()
	if errors.Is(err, services.ErrNoUser) {
		writeError(w, http.StatusNotFound, "No user registered")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
