package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"ggumjisum/backend/services"
)

type submitRequest struct {
	Text string `json:"text"`
}

// AddTransaction handles POST /transactions: the raw text runs through
// the full pipeline and the created transaction comes back. A sunk
// island rejects input with 409 until the rescue quiz is passed.
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "Invalid input: text required")
		return
	}

	tx, err := h.app.SubmitText(r.Context(), req.Text)
	switch {
	case errors.Is(err, services.ErrNoUser):
		writeError(w, http.StatusBadRequest, "No user registered")
	case errors.Is(err, services.ErrUnparseable):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":               "Could not parse transaction",
			"needs_clarification": true,
		})
	case errors.Is(err, services.ErrIslandSunk):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":       "Island is sunk, answer the rescue quiz to continue",
			"island_sunk": true,
		})
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, tx)
	}
}

// GetTransactions handles GET /transactions, newest first. The optional
// period query filters to the last week or month.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period != "" && period != "week" && period != "month" {
		writeError(w, http.StatusBadRequest, "period must be week or month")
		return
	}
	writeJSON(w, http.StatusOK, h.app.Transactions(period))
}

type updateRequest struct {
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateTransaction handles PUT /transactions/{id}; only category and
// description are editable after the fact.
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Category == nil && req.Description == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	tx, err := h.app.UpdateTransaction(id, req.Category, req.Description)
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, services.ErrBadCategory):
		writeError(w, http.StatusBadRequest, "Unknown category")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, tx)
	}
}

// DeleteTransaction handles DELETE /transactions/{id}. Deleting a
// same-day record recomputes the spend counter and status.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.app.DeleteTransaction(id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
