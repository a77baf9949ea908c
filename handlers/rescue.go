package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ggumjisum/backend/engine"
	"ggumjisum/backend/services"
)

// GetQuiz handles GET /rescue/quiz: starts (or resumes) the rescue quiz
// for a sunk island. Choices are shuffled server-side and the correct
// index never leaves the server.
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.app.StartQuiz()
	switch {
	case errors.Is(err, services.ErrNoUser):
		writeError(w, http.StatusNotFound, "No user registered")
	case errors.Is(err, services.ErrIslandNotSunk):
		writeError(w, http.StatusConflict, "Island is not sunk")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, quiz)
	}
}

type answerRequest struct {
	Choice *int `json:"choice"`
}

// AnswerQuiz handles POST /rescue/answer. A correct answer restores the
// island; a wrong one burns an attempt. Nothing but a correct answer
// unblocks input.
func (h *Handler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Choice == nil {
		writeError(w, http.StatusBadRequest, "choice index required")
		return
	}

	outcome, err := h.app.AnswerQuiz(*req.Choice)
	switch {
	case errors.Is(err, services.ErrNoUser):
		writeError(w, http.StatusNotFound, "No user registered")
	case errors.Is(err, services.ErrIslandNotSunk):
		writeError(w, http.StatusConflict, "Island is not sunk")
	case errors.Is(err, engine.ErrNoActiveQuiz):
		writeError(w, http.StatusConflict, "No active quiz, fetch one first")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, outcome)
	}
}
