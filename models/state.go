package models

import "time"

// IslandStatus is the user-facing risk tier derived from today's spend
// ratio. Safe below 0.7, warning from 0.7, sunk at 1.0 and above.
type IslandStatus string

const (
	StatusSafe    IslandStatus = "safe"
	StatusWarning IslandStatus = "warning"
	StatusSunk    IslandStatus = "sunk"
)

// StreakRewards are one-shot unlocks; once true they stay true.
type StreakRewards struct {
	ThreeDaysUnlocked bool `json:"threeDaysUnlocked"`
	SevenDaysUnlocked bool `json:"sevenDaysUnlocked"`
}

// State is the progression record: the rolling daily spend counter plus
// everything the day-rollover settles (exp, level, streaks, rewards).
// IslandLevel is always derived from IslandExp, never set independently.
type State struct {
	TodaySpend            int64         `json:"today_spend"`
	LastSpendDate         string        `json:"last_spend_date"`
	IslandStatus          IslandStatus  `json:"island_status"`
	IslandExp             int           `json:"island_exp"`
	IslandLevel           int           `json:"island_level"`
	JustLeveledUp         bool          `json:"justLeveledUp"`
	CurrentStreak         int           `json:"currentStreak"`
	BestStreak            int           `json:"bestStreak"`
	LastStreakUpdatedDate string        `json:"lastStreakUpdatedDate"`
	StreakRewards         StreakRewards `json:"streakRewards"`
	JustStreakReward      string        `json:"justStreakReward,omitempty"` // "3" or "7"
}

// NewState returns the initial progression state for a fresh island,
// anchored to the given day.
func NewState(today string) State {
	return State{
		LastSpendDate: today,
		IslandStatus:  StatusSafe,
	}
}

// Snapshot is the full persisted application state: one user, one
// progression record, and the bounded transaction history (newest first).
type Snapshot struct {
	User         *User         `json:"user"`
	State        State         `json:"state"`
	Transactions []Transaction `json:"transactions"`
	LastSyncedAt *time.Time    `json:"lastSyncedAt,omitempty"`
}

// MaxTransactions caps the retained history; the oldest entries are
// evicted first (pure FIFO, not time based).
const MaxTransactions = 200
