package engine

import (
	"testing"
	"time"

	"ggumjisum/backend/models"
)

func TestLevelForExp(t *testing.T) {
	tests := []struct {
		exp, level int
	}{
		{0, 0}, {2, 0},
		{3, 1}, {6, 1},
		{7, 2}, {13, 2},
		{14, 3}, {29, 3},
		{30, 4}, {100, 4},
	}
	for _, tt := range tests {
		if got := LevelForExp(tt.exp); got != tt.level {
			t.Errorf("LevelForExp(%d) = %d, want %d", tt.exp, got, tt.level)
		}
	}
}

func TestNextLevelInfo(t *testing.T) {
	info := NextLevelInfo(1)
	if info.Current.Name != "무인도" {
		t.Errorf("current stage = %s, want 무인도", info.Current.Name)
	}
	if info.Next == nil || info.Next.Name != "텐트" {
		t.Fatalf("next stage = %+v, want 텐트", info.Next)
	}
	if info.Remaining != 2 {
		t.Errorf("remaining = %d, want 2", info.Remaining)
	}

	top := NextLevelInfo(30)
	if top.Next != nil {
		t.Errorf("top of ladder should have no next stage, got %+v", top.Next)
	}
	if top.Progress != 1 {
		t.Errorf("top of ladder progress = %f, want 1", top.Progress)
	}
}

func at(day string) time.Time {
	ts, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return ts.Add(9 * time.Hour)
}

func TestEnsureRolloverSameDayIsNoop(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("2025-03-10")
	state.TodaySpend = 5000

	result := EnsureRollover(&state, user, at("2025-03-10"))
	if result.Rolled {
		t.Error("same-day rollover should be a no-op")
	}
	if state.TodaySpend != 5000 {
		t.Errorf("spend changed to %d on a no-op", state.TodaySpend)
	}
}

func TestEnsureRolloverSuccessDay(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("2025-03-10")
	state.TodaySpend = 5000

	result := EnsureRollover(&state, user, at("2025-03-11"))
	if !result.Rolled {
		t.Fatal("expected a rollover")
	}
	if state.IslandExp != 1 {
		t.Errorf("exp = %d, want 1", state.IslandExp)
	}
	if state.CurrentStreak != 1 || state.BestStreak != 1 {
		t.Errorf("streak = %d/%d, want 1/1", state.CurrentStreak, state.BestStreak)
	}
	if state.TodaySpend != 0 {
		t.Errorf("spend = %d, want reset to 0", state.TodaySpend)
	}
	if state.LastSpendDate != "2025-03-11" {
		t.Errorf("last spend date = %s, want 2025-03-11", state.LastSpendDate)
	}
	if state.IslandStatus != models.StatusSafe {
		t.Errorf("status = %s, want safe", state.IslandStatus)
	}
	if state.LastStreakUpdatedDate != "2025-03-10" {
		t.Errorf("streak guard date = %s, want 2025-03-10", state.LastStreakUpdatedDate)
	}
	if state.IslandLevel != LevelForExp(state.IslandExp) {
		t.Errorf("level %d not derived from exp %d", state.IslandLevel, state.IslandExp)
	}
}

func TestEnsureRolloverOverBudgetDay(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("2025-03-10")
	state.TodaySpend = 10000 // exactly the daily budget: ratio 1.0 fails
	state.CurrentStreak = 5
	state.BestStreak = 5
	state.IslandExp = 4
	state.IslandLevel = 1

	EnsureRollover(&state, user, at("2025-03-11"))
	if state.IslandExp != 4 {
		t.Errorf("exp = %d, want unchanged 4", state.IslandExp)
	}
	if state.CurrentStreak != 0 {
		t.Errorf("streak = %d, want reset to 0", state.CurrentStreak)
	}
	if state.BestStreak != 5 {
		t.Errorf("best streak = %d, want preserved 5", state.BestStreak)
	}
}

func TestEnsureRolloverSkippedDaysBreakStreak(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("2025-03-10")
	state.TodaySpend = 0
	state.CurrentStreak = 6
	state.IslandExp = 6

	EnsureRollover(&state, user, at("2025-03-13"))
	if state.CurrentStreak != 0 {
		t.Errorf("streak after a 3-day gap = %d, want 0", state.CurrentStreak)
	}
	// No exp for skipped days even though nothing was spent.
	if state.IslandExp != 6 {
		t.Errorf("exp = %d, want unchanged 6", state.IslandExp)
	}
}

func TestEnsureRolloverUnparseableDateBreaksStreak(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("not-a-date")
	state.CurrentStreak = 4

	EnsureRollover(&state, user, at("2025-03-11"))
	if state.CurrentStreak != 0 {
		t.Errorf("streak = %d, want 0 on unparseable stored date", state.CurrentStreak)
	}
	if state.LastSpendDate != "2025-03-11" {
		t.Errorf("last spend date = %s, want repaired to today", state.LastSpendDate)
	}
}

func TestEnsureRolloverStreakGuard(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("2025-03-10")
	state.CurrentStreak = 2
	state.LastStreakUpdatedDate = "2025-03-10" // already settled for this date

	EnsureRollover(&state, user, at("2025-03-11"))
	if state.CurrentStreak != 2 {
		t.Errorf("guarded streak = %d, want unchanged 2", state.CurrentStreak)
	}
	// Exp is not guarded, only the streak.
	if state.IslandExp != 1 {
		t.Errorf("exp = %d, want 1", state.IslandExp)
	}
}

func TestEnsureRolloverLevelUp(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("2025-03-10")
	state.IslandExp = 2 // one more success crosses the 텐트 threshold

	result := EnsureRollover(&state, user, at("2025-03-11"))
	if !result.LeveledUp || !state.JustLeveledUp {
		t.Error("expected a level-up at exp 3")
	}
	if state.IslandLevel != 1 {
		t.Errorf("level = %d, want 1", state.IslandLevel)
	}
}

func TestEnsureRolloverStreakRewards(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("2025-03-10")
	state.CurrentStreak = 2

	result := EnsureRollover(&state, user, at("2025-03-11"))
	if result.StreakReward != "3" || state.JustStreakReward != "3" {
		t.Errorf("reward = %q, want 3 at streak 3", result.StreakReward)
	}
	if !state.StreakRewards.ThreeDaysUnlocked {
		t.Error("three-day reward not unlocked")
	}

	// Break the streak, climb back to 3: the reward must not fire twice.
	state.CurrentStreak = 2
	state.LastSpendDate = "2025-03-20"
	state.LastStreakUpdatedDate = "2025-03-19"
	result = EnsureRollover(&state, user, at("2025-03-21"))
	if result.StreakReward != "" {
		t.Errorf("reward fired twice: %q", result.StreakReward)
	}
	if state.CurrentStreak != 3 {
		t.Errorf("streak = %d, want 3", state.CurrentStreak)
	}

	// Push on to 7 for the second reward.
	state.CurrentStreak = 6
	state.LastSpendDate = "2025-03-25"
	state.LastStreakUpdatedDate = "2025-03-24"
	result = EnsureRollover(&state, user, at("2025-03-26"))
	if result.StreakReward != "7" {
		t.Errorf("reward = %q, want 7 at streak 7", result.StreakReward)
	}
	if !state.StreakRewards.SevenDaysUnlocked {
		t.Error("seven-day reward not unlocked")
	}
}

func TestEnsureRolloverThreeConsecutiveDays(t *testing.T) {
	user := &models.User{BudgetLimit: 300000}
	state := models.NewState("2025-03-10")

	days := []string{"2025-03-11", "2025-03-12", "2025-03-13"}
	for _, day := range days {
		state.TodaySpend = 3000
		EnsureRollover(&state, user, at(day))
	}
	if state.IslandExp != 3 {
		t.Errorf("exp after 3 good days = %d, want 3", state.IslandExp)
	}
	if state.CurrentStreak != 3 {
		t.Errorf("streak after 3 good days = %d, want 3", state.CurrentStreak)
	}
	if state.IslandLevel != 1 {
		t.Errorf("level = %d, want 1", state.IslandLevel)
	}
}
