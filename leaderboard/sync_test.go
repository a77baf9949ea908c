package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ggumjisum/backend/models"
)

func TestSavingsRate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := SavingsRate(nil, 0, now); got != 0 {
		t.Errorf("zero daily budget rate = %f, want 0", got)
	}

	// No transactions in the window: assume spend equals budget.
	if got := SavingsRate(nil, 10000, now); got != 0 {
		t.Errorf("empty window rate = %f, want 0", got)
	}

	// 21000 spent over the 7-day window against a 10000 daily budget:
	// average 3000/day, saving 70%.
	txs := []models.Transaction{
		{Type: models.TypeExpense, Amount: 7000, OccurredAt: now.AddDate(0, 0, -1)},
		{Type: models.TypeExpense, Amount: 7000, OccurredAt: now.AddDate(0, 0, -3)},
		{Type: models.TypeExpense, Amount: 7000, OccurredAt: now.AddDate(0, 0, -5)},
	}
	if got := SavingsRate(txs, 10000, now); got != 70 {
		t.Errorf("rate = %f, want 70", got)
	}

	// Transactions outside the window are ignored.
	old := []models.Transaction{
		{Type: models.TypeExpense, Amount: 70000, OccurredAt: now.AddDate(0, 0, -20)},
	}
	if got := SavingsRate(old, 10000, now); got != 0 {
		t.Errorf("stale-only rate = %f, want 0", got)
	}

	// Heavy income makes the signed sum negative; clamp at 100.
	income := []models.Transaction{
		{Type: models.TypeIncome, Amount: 500000, OccurredAt: now.AddDate(0, 0, -1)},
	}
	if got := SavingsRate(income, 10000, now); got != 100 {
		t.Errorf("income-heavy rate = %f, want clamp at 100", got)
	}

	// Overspending clamps at 0.
	over := []models.Transaction{
		{Type: models.TypeExpense, Amount: 200000, OccurredAt: now.AddDate(0, 0, -1)},
	}
	if got := SavingsRate(over, 10000, now); got != 0 {
		t.Errorf("overspent rate = %f, want clamp at 0", got)
	}
}

func TestBuildSnapshot(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	user := &models.User{ID: "u1", Nickname: "민지", BudgetLimit: 300000}
	state := models.State{IslandLevel: 1, IslandExp: 5, CurrentStreak: 2, BestStreak: 4}

	snap := BuildSnapshot(user, state, nil, now)
	if snap.UserID != "u1" || snap.Nickname != "민지" {
		t.Errorf("identity fields wrong: %+v", snap)
	}
	if snap.TotalSavedDays != 5 {
		t.Errorf("total saved days = %d, want exp 5", snap.TotalSavedDays)
	}
	if !snap.LastSyncedAt.Equal(now) {
		t.Errorf("last synced at = %v, want %v", snap.LastSyncedAt, now)
	}
}

func TestUpsert(t *testing.T) {
	var got Snapshot
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/islands" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	snap := Snapshot{UserID: "u1", Nickname: "민지", IslandLevel: 2}
	if err := client.Upsert(context.Background(), snap); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got.UserID != "u1" || got.IslandLevel != 2 {
		t.Errorf("server received %+v", got)
	}
}

func TestUpsertServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if err := client.Upsert(context.Background(), Snapshot{}); err == nil {
		t.Error("expected an error on a 500 response")
	}
}

func TestUpsertDisabled(t *testing.T) {
	client := NewClient("", time.Second)
	if client.Enabled() {
		t.Error("empty URL should disable the client")
	}
	if err := client.Upsert(context.Background(), Snapshot{}); err != nil {
		t.Errorf("disabled upsert should be a no-op, got %v", err)
	}
}
