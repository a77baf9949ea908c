package database

import (
	"testing"
	"time"

	"ggumjisum/backend/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadSnapshotEmpty(t *testing.T) {
	store := newTestStore(t)
	snap, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap != nil {
		t.Errorf("fresh store returned %+v, want nil", snap)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := newTestStore(t)

	occurred := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	snap := &models.Snapshot{
		User: &models.User{
			ID:          "u1",
			Nickname:    "민지",
			Goal:        "여행 가기",
			BudgetLimit: 300000,
			ResetDay:    1,
		},
		State: models.State{
			TodaySpend:    5000,
			LastSpendDate: "2025-03-10",
			IslandStatus:  models.StatusSafe,
			IslandExp:     4,
			IslandLevel:   1,
			CurrentStreak: 2,
			BestStreak:    4,
		},
		Transactions: []models.Transaction{
			{
				ID:            "t1",
				Type:          models.TypeExpense,
				Amount:        5000,
				Category:      "coffee",
				Description:   "스타벅스",
				OriginalInput: "스타벅스 5000원",
				OccurredAt:    occurred,
			},
		},
	}

	if err := store.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded == nil {
		t.Fatal("loaded nil snapshot")
	}
	if loaded.User == nil || loaded.User.Nickname != "민지" || loaded.User.BudgetLimit != 300000 {
		t.Errorf("user = %+v", loaded.User)
	}
	if loaded.State.TodaySpend != 5000 || loaded.State.IslandExp != 4 {
		t.Errorf("state = %+v", loaded.State)
	}
	if len(loaded.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(loaded.Transactions))
	}
	tx := loaded.Transactions[0]
	if tx.ID != "t1" || tx.Category != "coffee" || !tx.OccurredAt.Equal(occurred) {
		t.Errorf("transaction = %+v", tx)
	}
}

func TestSaveSnapshotUpserts(t *testing.T) {
	store := newTestStore(t)

	first := &models.Snapshot{State: models.State{TodaySpend: 1000}}
	if err := store.SaveSnapshot(first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := &models.Snapshot{State: models.State{TodaySpend: 2000}}
	if err := store.SaveSnapshot(second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.State.TodaySpend != 2000 {
		t.Errorf("spend = %d, want the second save's 2000", loaded.State.TodaySpend)
	}
}
