// Package engine holds the pure state-transition logic of the island:
// daily budget math, the day-rollover progression machine, and the
// rescue quiz gate. Nothing in here performs I/O; persistence and sync
// are the caller's concern.
package engine

import "ggumjisum/backend/models"

// Status thresholds over the spend ratio.
const (
	warningRatio = 0.7
	sunkRatio    = 1.0
)

// restoreFraction is the spend level a rescued island resumes at.
const restoreFraction = 0.7

// DailyBudget is the monthly limit split over 30 days, floored. Zero
// when no user exists yet.
func DailyBudget(user *models.User) int64 {
	if user == nil {
		return 0
	}
	return user.BudgetLimit / 30
}

// Ratio is today's spend over the daily budget. Defined as 0 (not Inf or
// NaN) when the daily budget is 0.
func Ratio(todaySpend, dailyBudget int64) float64 {
	if dailyBudget == 0 {
		return 0
	}
	return float64(todaySpend) / float64(dailyBudget)
}

// RemainingBudget is what is left of today's budget, never negative.
func RemainingBudget(todaySpend, dailyBudget int64) int64 {
	if remaining := dailyBudget - todaySpend; remaining > 0 {
		return remaining
	}
	return 0
}

// StatusForRatio maps a spend ratio onto the island status. Boundaries
// are inclusive on the upper side: exactly 0.7 is warning, exactly 1.0
// is sunk.
func StatusForRatio(r float64) models.IslandStatus {
	switch {
	case r >= sunkRatio:
		return models.StatusSunk
	case r >= warningRatio:
		return models.StatusWarning
	default:
		return models.StatusSafe
	}
}

// ApplyTransaction folds a transaction into today's spend counter and
// recomputes the status. Income cannot drive the counter negative.
// Returns the resulting status.
func ApplyTransaction(state *models.State, user *models.User, tx *models.Transaction) models.IslandStatus {
	if tx.Type == models.TypeExpense {
		state.TodaySpend += tx.Amount
	} else {
		state.TodaySpend -= tx.Amount
		if state.TodaySpend < 0 {
			state.TodaySpend = 0
		}
	}
	state.IslandStatus = StatusForRatio(Ratio(state.TodaySpend, DailyBudget(user)))
	return state.IslandStatus
}

// RecomputeTodaySpend resums the given day's transactions from scratch
// (expenses positive, income negative, no floor mid-sum). Used after a
// deletion invalidates the running counter.
func RecomputeTodaySpend(transactions []models.Transaction, day string) int64 {
	var sum int64
	for _, tx := range transactions {
		if tx.Day() == day {
			sum += tx.Signed()
		}
	}
	return sum
}

// RestoreIsland is the recovery-quiz exit: spend resets to 70% of the
// daily budget and the status is forced to warning rather than derived,
// so the island cannot flap straight back to sunk at the boundary.
func RestoreIsland(state *models.State, user *models.User) {
	daily := DailyBudget(user)
	state.TodaySpend = int64(float64(daily) * restoreFraction)
	state.IslandStatus = models.StatusWarning
}
