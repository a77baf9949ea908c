package engine

import (
	"time"

	"ggumjisum/backend/models"
)

// IslandStage is one step of the island's growth.
type IslandStage struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	RequiredExp int    `json:"requiredExp"`
}

// IslandStages is the fixed level ladder. Levels are only ever computed
// from exp through LevelForExp.
var IslandStages = []IslandStage{
	{Level: 0, Name: "무인도", RequiredExp: 0},
	{Level: 1, Name: "텐트", RequiredExp: 3},
	{Level: 2, Name: "오두막", RequiredExp: 7},
	{Level: 3, Name: "작은 집", RequiredExp: 14},
	{Level: 4, Name: "마을", RequiredExp: 30},
}

// LevelForExp maps accumulated exp onto the stage ladder.
func LevelForExp(exp int) int {
	for i := len(IslandStages) - 1; i >= 0; i-- {
		if exp >= IslandStages[i].RequiredExp {
			return i
		}
	}
	return 0
}

// LevelInfo describes where the island sits on the ladder and how far
// the next stage is.
type LevelInfo struct {
	Current   IslandStage  `json:"current"`
	Next      *IslandStage `json:"next,omitempty"`
	Remaining int          `json:"remaining"`
	Progress  float64      `json:"progress"`
}

// NextLevelInfo computes progress toward the next stage; Progress is 1
// at the top of the ladder.
func NextLevelInfo(exp int) LevelInfo {
	level := LevelForExp(exp)
	current := IslandStages[level]
	if level+1 >= len(IslandStages) {
		return LevelInfo{Current: current, Progress: 1}
	}
	next := IslandStages[level+1]
	rangeTotal := next.RequiredExp - current.RequiredExp
	progress := 1.0
	if rangeTotal > 0 {
		progress = float64(exp-current.RequiredExp) / float64(rangeTotal)
	}
	return LevelInfo{
		Current:   current,
		Next:      &next,
		Remaining: next.RequiredExp - exp,
		Progress:  progress,
	}
}

// RolloverResult reports what a day transition changed.
type RolloverResult struct {
	Rolled       bool
	LeveledUp    bool
	StreakReward string // "3", "7", or ""
}

const dayLayout = "2006-01-02"

// Day formats t as the calendar date used for all day-bucketing.
func Day(t time.Time) string {
	return t.Format(dayLayout)
}

// diffDays returns the whole days between two YYYY-MM-DD strings, or
// ok=false when the stored date does not parse.
func diffDays(from, to string) (int, bool) {
	a, err := time.Parse(dayLayout, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(dayLayout, to)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// EnsureRollover settles the previous day into exp/level/streak state
// and resets today's counters. The day boundary is discovered lazily:
// callers invoke this before every transaction-affecting interaction,
// and it is a no-op when the stored date is already today, so a second
// immediate invocation cannot double-apply.
func EnsureRollover(state *models.State, user *models.User, now time.Time) RolloverResult {
	today := Day(now)
	if state.LastSpendDate == today {
		return RolloverResult{}
	}

	days, ok := diffDays(state.LastSpendDate, today)

	newExp := state.IslandExp
	newLevel := state.IslandLevel
	leveledUp := false
	newStreak := state.CurrentStreak
	newBest := state.BestStreak

	if user != nil && ok && days == 1 {
		daily := DailyBudget(user)
		if Ratio(state.TodaySpend, daily) < sunkRatio {
			// Yesterday closed within budget.
			newExp = state.IslandExp + 1
			newLevel = LevelForExp(newExp)
			leveledUp = newLevel > state.IslandLevel

			if state.LastStreakUpdatedDate != state.LastSpendDate {
				newStreak = state.CurrentStreak + 1
				if newStreak > newBest {
					newBest = newStreak
				}
			}
		} else if state.LastStreakUpdatedDate != state.LastSpendDate {
			newStreak = 0
		}
	} else if !ok || days >= 2 {
		// Skipped days break the streak even with nothing recorded.
		newStreak = 0
	}

	rewards := state.StreakRewards
	justReward := ""
	// Independent checks: must not be mutually exclusive.
	if newStreak == 3 && !rewards.ThreeDaysUnlocked {
		rewards.ThreeDaysUnlocked = true
		justReward = "3"
	}
	if newStreak == 7 && !rewards.SevenDaysUnlocked {
		rewards.SevenDaysUnlocked = true
		justReward = "7"
	}

	closedDate := state.LastSpendDate
	*state = models.State{
		TodaySpend:            0,
		LastSpendDate:         today,
		IslandStatus:          models.StatusSafe,
		IslandExp:             newExp,
		IslandLevel:           newLevel,
		JustLeveledUp:         leveledUp,
		CurrentStreak:         newStreak,
		BestStreak:            newBest,
		LastStreakUpdatedDate: closedDate,
		StreakRewards:         rewards,
		JustStreakReward:      justReward,
	}

	return RolloverResult{Rolled: true, LeveledUp: leveledUp, StreakReward: justReward}
}
