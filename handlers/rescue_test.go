package handlers

import (
	"net/http"
	"testing"

	"ggumjisum/backend/engine"
	"github.com/gorilla/mux"
)

type quizBody struct {
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	AttemptsLeft int      `json:"attempts_left"`
}

func sinkIsland(t *testing.T, r *mux.Router) {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/transactions", map[string]string{"text": "쇼핑 10000원"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("sinking submit status = %d", rec.Code)
	}
}

func poolAnswer(t *testing.T, quiz quizBody) (correct, wrong int) {
	t.Helper()
	for _, q := range engine.QuizPool {
		if q.Question != quiz.Question {
			continue
		}
		for i, c := range quiz.Choices {
			if c == q.CorrectAnswer {
				return i, (i + 1) % len(quiz.Choices)
			}
		}
	}
	t.Fatalf("question %q not in pool", quiz.Question)
	return 0, 0
}

func TestQuizBeforeSunk(t *testing.T) {
	r := newTestRouter(t)
	onboardUser(t, r, 300000)

	rec := doJSON(t, r, http.MethodGet, "/rescue/quiz", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("quiz on floating island status = %d, want 409", rec.Code)
	}
}

func TestRescueFlow(t *testing.T) {
	r := newTestRouter(t)
	onboardUser(t, r, 300000)
	sinkIsland(t, r)

	var quiz quizBody
	rec := doJSON(t, r, http.MethodGet, "/rescue/quiz", nil, &quiz)
	if rec.Code != http.StatusOK {
		t.Fatalf("quiz status = %d: %s", rec.Code, rec.Body.String())
	}
	if quiz.Question == "" || len(quiz.Choices) != 4 || quiz.AttemptsLeft != engine.MaxQuizAttempts {
		t.Fatalf("quiz = %+v", quiz)
	}

	correct, wrong := poolAnswer(t, quiz)

	var outcome struct {
		Correct      bool   `json:"correct"`
		Explanation  string `json:"explanation"`
		AttemptsLeft int    `json:"attempts_left"`
		Restored     bool   `json:"restored"`
	}
	rec = doJSON(t, r, http.MethodPost, "/rescue/answer", map[string]int{"choice": wrong}, &outcome)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer status = %d", rec.Code)
	}
	if outcome.Correct || outcome.Restored {
		t.Fatalf("wrong answer outcome = %+v", outcome)
	}
	if outcome.AttemptsLeft != engine.MaxQuizAttempts-1 {
		t.Errorf("attempts left = %d", outcome.AttemptsLeft)
	}
	if outcome.Explanation == "" {
		t.Error("expected an explanation")
	}

	rec = doJSON(t, r, http.MethodPost, "/rescue/answer", map[string]int{"choice": correct}, &outcome)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer status = %d", rec.Code)
	}
	if !outcome.Correct || !outcome.Restored {
		t.Fatalf("correct answer outcome = %+v", outcome)
	}

	var island islandBody
	doJSON(t, r, http.MethodGet, "/island", nil, &island)
	if island.Status != "warning" || island.TodaySpend != 7000 {
		t.Errorf("restored island = %+v", island)
	}

	rec = doJSON(t, r, http.MethodPost, "/transactions", map[string]string{"text": "커피 1000원"}, nil)
	if rec.Code != http.StatusCreated {
		t.Errorf("post-rescue submit status = %d", rec.Code)
	}
}

func TestAnswerWithoutQuiz(t *testing.T) {
	r := newTestRouter(t)
	onboardUser(t, r, 300000)
	sinkIsland(t, r)

	rec := doJSON(t, r, http.MethodPost, "/rescue/answer", map[string]int{"choice": 0}, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("answer without session status = %d, want 409", rec.Code)
	}
}

func TestAnswerRequiresChoice(t *testing.T) {
	r := newTestRouter(t)
	onboardUser(t, r, 300000)
	sinkIsland(t, r)
	doJSON(t, r, http.MethodGet, "/rescue/quiz", nil, nil)

	rec := doJSON(t, r, http.MethodPost, "/rescue/answer", map[string]string{}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing choice status = %d, want 400", rec.Code)
	}
}
