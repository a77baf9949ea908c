// Package leaderboard pushes denormalized island snapshots to the remote
// leaderboard service. Ranking queries are served elsewhere; this side
// only upserts.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ggumjisum/backend/engine"
	"ggumjisum/backend/models"
)

// Snapshot is the denormalized record keyed by user id on the remote
// side.
type Snapshot struct {
	UserID         string    `json:"user_id"`
	Nickname       string    `json:"nickname"`
	BudgetLimit    int64     `json:"budget_limit"`
	IslandLevel    int       `json:"island_level"`
	IslandExp      int       `json:"island_exp"`
	CurrentStreak  int       `json:"current_streak"`
	BestStreak     int       `json:"best_streak"`
	TotalSavedDays int       `json:"total_saved_days"`
	SavingsRate    float64   `json:"savings_rate"`
	LastSyncedAt   time.Time `json:"last_synced_at"`
}

// Client talks to the leaderboard service. A nil client or empty URL is
// a disabled no-op.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a leaderboard client; url may be empty to disable.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: url,
		client:  &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a remote endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Upsert posts the snapshot. Callers retry; this does one attempt.
func (c *Client) Upsert(ctx context.Context, snap Snapshot) error {
	if !c.Enabled() {
		return nil
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding leaderboard snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/islands", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building leaderboard request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard upsert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("leaderboard upsert: status %d", resp.StatusCode)
	}
	return nil
}

// BuildSnapshot assembles the record from local state.
func BuildSnapshot(user *models.User, state models.State, transactions []models.Transaction, now time.Time) Snapshot {
	return Snapshot{
		UserID:         user.ID,
		Nickname:       user.Nickname,
		BudgetLimit:    user.BudgetLimit,
		IslandLevel:    state.IslandLevel,
		IslandExp:      state.IslandExp,
		CurrentStreak:  state.CurrentStreak,
		BestStreak:     state.BestStreak,
		TotalSavedDays: state.IslandExp, // exp counts successfully budgeted days
		SavingsRate:    SavingsRate(transactions, engine.DailyBudget(user), now),
		LastSyncedAt:   now,
	}
}

// SavingsRate estimates how much of the daily budget was saved over the
// last 7 days, as a percentage clamped to 0..100. With no transactions
// in the window, spend is assumed equal to budget (rate 0).
func SavingsRate(transactions []models.Transaction, dailyBudget int64, now time.Time) float64 {
	if dailyBudget == 0 {
		return 0
	}

	cutoff := now.Add(-7 * 24 * time.Hour)
	var total int64
	count := 0
	for _, tx := range transactions {
		if tx.OccurredAt.Before(cutoff) {
			continue
		}
		total += tx.Signed()
		count++
	}

	avgDailySpend := float64(dailyBudget)
	if count > 0 {
		avgDailySpend = float64(total) / 7
	}

	rate := (float64(dailyBudget) - avgDailySpend) / float64(dailyBudget) * 100
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}
