// Package services owns the application state and funnels every
// mutation through one lock, mirroring the single-threaded event model
// of the client this backend grew out of. Engines stay pure; persistence
// and leaderboard sync happen here, after the mutation.
package services

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"ggumjisum/backend/engine"
	"ggumjisum/backend/leaderboard"
	"ggumjisum/backend/models"
	"ggumjisum/backend/nlp"
)

var (
	ErrNoUser        = errors.New("no user registered")
	ErrInvalidUser   = errors.New("invalid user profile")
	ErrUnparseable   = errors.New("could not parse transaction")
	ErrIslandSunk    = errors.New("island is sunk, rescue quiz required")
	ErrIslandNotSunk = errors.New("island is not sunk")
	ErrNotFound      = errors.New("transaction not found")
	ErrBadCategory   = errors.New("unknown category")
)

// SnapshotStore is the persistence contract: a durable snapshot keyed by
// the single application identity.
type SnapshotStore interface {
	LoadSnapshot() (*models.Snapshot, error)
	SaveSnapshot(*models.Snapshot) error
}

// RemoteTextParser is the external-model parse contract; nil results
// mean "no result", never an error.
type RemoteTextParser interface {
	Parse(ctx context.Context, text string) *models.ParseResult
}

// Options wires an App together. Rand and Now are injectable for
// deterministic tests; nil/zero values get production defaults.
type Options struct {
	Store       SnapshotStore
	Remote      RemoteTextParser
	Live        bool
	Leaderboard *leaderboard.Client
	Queue       *SyncQueue
	Rand        *rand.Rand
	Now         func() time.Time
}

// App is the orchestrator behind every handler.
type App struct {
	mu     sync.Mutex
	store  SnapshotStore
	remote RemoteTextParser
	live   bool
	lb     *leaderboard.Client
	queue  *SyncQueue
	gate   *engine.Gate
	now    func() time.Time
	snap   *models.Snapshot
}

// NewApp loads the persisted snapshot (or starts fresh) and returns a
// ready App.
func NewApp(opts Options) (*App, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	snap, err := opts.Store.LoadSnapshot()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		state := models.NewState(engine.Day(now()))
		snap = &models.Snapshot{State: state}
	}

	return &App{
		store:  opts.Store,
		remote: opts.Remote,
		live:   opts.Live,
		lb:     opts.Leaderboard,
		queue:  opts.Queue,
		gate:   engine.NewGate(rng),
		now:    now,
		snap:   snap,
	}, nil
}

// ParseText runs the parse fallback chain without touching state: in
// live mode the remote model goes first, and any nil result falls back
// to the rule-based parser.
func (a *App) ParseText(ctx context.Context, text string) *models.ParseResult {
	if a.live && a.remote != nil {
		if result := a.remote.Parse(ctx, text); result != nil {
			return result
		}
		log.Println("[NLP] remote parser failed, falling back to rules")
	}
	return nlp.Parse(text)
}

// SubmitText is the full pipeline: rollover, parse, gate check, apply,
// persist, enqueue sync. The transaction is applied locally and
// optimistically; sync is best-effort in the background.
func (a *App) SubmitText(ctx context.Context, text string) (*models.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.User == nil {
		return nil, ErrNoUser
	}
	a.rolloverLocked()

	if a.snap.State.IslandStatus == models.StatusSunk {
		return nil, ErrIslandSunk
	}

	result := a.ParseText(ctx, text)
	if result == nil {
		return nil, ErrUnparseable
	}

	tx := models.Transaction{
		ID:            uuid.NewString(),
		Type:          result.Type,
		Amount:        result.Amount,
		Category:      result.Category,
		Description:   result.Description,
		OriginalInput: text,
		OccurredAt:    a.now(),
	}

	engine.ApplyTransaction(&a.snap.State, a.snap.User, &tx)

	a.snap.Transactions = append([]models.Transaction{tx}, a.snap.Transactions...)
	if len(a.snap.Transactions) > models.MaxTransactions {
		a.snap.Transactions = a.snap.Transactions[:models.MaxTransactions]
	}

	a.persistLocked()
	a.enqueueSyncLocked()
	return &tx, nil
}

// Transactions returns the history newest-first. period may be "week",
// "month", or empty for everything.
func (a *App) Transactions(period string) []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	var cutoff time.Time
	switch period {
	case "week":
		cutoff = a.now().Add(-7 * 24 * time.Hour)
	case "month":
		cutoff = a.now().Add(-30 * 24 * time.Hour)
	}

	out := make([]models.Transaction, 0, len(a.snap.Transactions))
	for _, tx := range a.snap.Transactions {
		if !cutoff.IsZero() && tx.OccurredAt.Before(cutoff) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// UpdateTransaction edits the two post-hoc mutable fields.
func (a *App) UpdateTransaction(id string, category, description *string) (*models.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.snap.Transactions {
		if a.snap.Transactions[i].ID != id {
			continue
		}
		if category != nil {
			if !nlp.KnownCategory(*category) {
				return nil, ErrBadCategory
			}
			a.snap.Transactions[i].Category = *category
		}
		if description != nil {
			a.snap.Transactions[i].Description = nlp.Truncate(*description, nlp.DescriptionLimit)
		}
		tx := a.snap.Transactions[i]
		a.persistLocked()
		return &tx, nil
	}
	return nil, ErrNotFound
}

// DeleteTransaction removes a record; when it belongs to the current day
// the spend counter and status are recomputed from scratch.
func (a *App) DeleteTransaction(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.rolloverLocked()

	idx := -1
	for i := range a.snap.Transactions {
		if a.snap.Transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	deleted := a.snap.Transactions[idx]
	a.snap.Transactions = append(a.snap.Transactions[:idx:idx], a.snap.Transactions[idx+1:]...)

	today := engine.Day(a.now())
	if deleted.Day() == today {
		a.snap.State.TodaySpend = engine.RecomputeTodaySpend(a.snap.Transactions, today)
		daily := engine.DailyBudget(a.snap.User)
		a.snap.State.IslandStatus = engine.StatusForRatio(engine.Ratio(a.snap.State.TodaySpend, daily))
	}

	a.persistLocked()
	a.enqueueSyncLocked()
	return nil
}

// CreateUser onboards (or re-profiles) the single user. Progression
// state survives a profile update; the identity stays stable.
func (a *App) CreateUser(nickname, goal string, budgetLimit int64, resetDay int) (*models.User, error) {
	if nickname == "" || budgetLimit <= 0 || resetDay < 1 || resetDay > 31 {
		return nil, ErrInvalidUser
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	id := uuid.NewString()
	if a.snap.User != nil {
		id = a.snap.User.ID
	}
	a.snap.User = &models.User{
		ID:          id,
		Nickname:    nickname,
		Goal:        goal,
		BudgetLimit: budgetLimit,
		ResetDay:    resetDay,
	}

	a.persistLocked()
	a.enqueueSyncLocked()
	user := *a.snap.User
	return &user, nil
}

// User returns the profile, or ErrNoUser.
func (a *App) User() (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.snap.User == nil {
		return nil, ErrNoUser
	}
	user := *a.snap.User
	return &user, nil
}

// IslandView is everything the island screen needs in one read.
type IslandView struct {
	Status           models.IslandStatus  `json:"status"`
	TodaySpend       int64                `json:"today_spend"`
	DailyBudget      int64                `json:"daily_budget"`
	Ratio            float64              `json:"ratio"`
	WaterLevel       float64              `json:"water_level"`
	RemainingBudget  int64                `json:"remaining_budget"`
	IslandExp        int                  `json:"island_exp"`
	IslandLevel      int                  `json:"island_level"`
	LevelInfo        engine.LevelInfo     `json:"level_info"`
	CurrentStreak    int                  `json:"current_streak"`
	BestStreak       int                  `json:"best_streak"`
	StreakRewards    models.StreakRewards `json:"streak_rewards"`
	JustLeveledUp    bool                 `json:"just_leveled_up"`
	JustStreakReward string               `json:"just_streak_reward,omitempty"`
}

// Island reads the current island state. Reads also discover the day
// boundary, so stale counters roll over before the view is built.
func (a *App) Island() (*IslandView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.User == nil {
		return nil, ErrNoUser
	}
	a.rolloverLocked()
	return a.islandViewLocked(), nil
}

// AcknowledgeEvents clears the one-shot level-up and streak-reward
// flags after the client has shown them.
func (a *App) AcknowledgeEvents() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.snap.State.JustLeveledUp = false
	a.snap.State.JustStreakReward = ""
	a.persistLocked()
}

// QuizView is the client-facing shape of a quiz session; the correct
// index is never exposed.
type QuizView struct {
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	AttemptsLeft int      `json:"attempts_left"`
}

// StartQuiz begins (or resumes) a rescue quiz. Only a sunk island can be
// quizzed.
func (a *App) StartQuiz() (*QuizView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.User == nil {
		return nil, ErrNoUser
	}
	a.rolloverLocked()

	if a.snap.State.IslandStatus != models.StatusSunk {
		return nil, ErrIslandNotSunk
	}

	session := a.gate.Session()
	if session == nil {
		session = a.gate.StartQuiz(a.snap.Transactions)
	}
	return &QuizView{
		Question:     session.Question(),
		Choices:      session.Choices(),
		AttemptsLeft: session.AttemptsLeft(),
	}, nil
}

// QuizOutcome reports an answer attempt; Restored means the island came
// back and input is unblocked.
type QuizOutcome struct {
	engine.AnswerResult
	Restored bool        `json:"restored"`
	Island   *IslandView `json:"island,omitempty"`
}

// AnswerQuiz checks an answer; a correct one restores the island (spend
// forced to 70% of budget, status forced to warning).
func (a *App) AnswerQuiz(choice int) (*QuizOutcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.User == nil {
		return nil, ErrNoUser
	}
	if a.snap.State.IslandStatus != models.StatusSunk {
		return nil, ErrIslandNotSunk
	}

	result, err := a.gate.Answer(choice)
	if err != nil {
		return nil, err
	}

	outcome := &QuizOutcome{AnswerResult: result}
	if result.Correct {
		engine.RestoreIsland(&a.snap.State, a.snap.User)
		outcome.Restored = true
		outcome.Island = a.islandViewLocked()
		a.persistLocked()
	}
	return outcome, nil
}

// Close flushes pending sync work.
func (a *App) Close() {
	if a.queue != nil {
		a.queue.Stop()
	}
}

// rolloverLocked lazily settles the day boundary; idempotent within the
// same day. Caller holds the lock.
func (a *App) rolloverLocked() {
	res := engine.EnsureRollover(&a.snap.State, a.snap.User, a.now())
	if !res.Rolled {
		return
	}
	if res.LeveledUp {
		log.Printf("[Island] leveled up to %d", a.snap.State.IslandLevel)
	}
	if res.StreakReward != "" {
		log.Printf("[Island] streak reward unlocked: %s days", res.StreakReward)
	}
	a.persistLocked()
	a.enqueueSyncLocked()
}

func (a *App) islandViewLocked() *IslandView {
	state := a.snap.State
	daily := engine.DailyBudget(a.snap.User)
	ratio := engine.Ratio(state.TodaySpend, daily)
	water := ratio * 100
	if water > 100 {
		water = 100
	}
	return &IslandView{
		Status:           state.IslandStatus,
		TodaySpend:       state.TodaySpend,
		DailyBudget:      daily,
		Ratio:            ratio,
		WaterLevel:       water,
		RemainingBudget:  engine.RemainingBudget(state.TodaySpend, daily),
		IslandExp:        state.IslandExp,
		IslandLevel:      state.IslandLevel,
		LevelInfo:        engine.NextLevelInfo(state.IslandExp),
		CurrentStreak:    state.CurrentStreak,
		BestStreak:       state.BestStreak,
		StreakRewards:    state.StreakRewards,
		JustLeveledUp:    state.JustLeveledUp,
		JustStreakReward: state.JustStreakReward,
	}
}

// persistLocked saves the snapshot. Persistence failures are logged and
// never fail the local mutation.
func (a *App) persistLocked() {
	if err := a.store.SaveSnapshot(a.snap); err != nil {
		log.Printf("[Store] saving snapshot: %v", err)
	}
}

// enqueueSyncLocked schedules a leaderboard upsert built from the state
// as of now; retries happen in the queue, off the caller's path.
func (a *App) enqueueSyncLocked() {
	if a.queue == nil || !a.lb.Enabled() || a.snap.User == nil {
		return
	}
	snapshot := leaderboard.BuildSnapshot(a.snap.User, a.snap.State, a.snap.Transactions, a.now())
	lb := a.lb
	a.queue.Enqueue(func(ctx context.Context) error {
		return lb.Upsert(ctx, snapshot)
	})
}
