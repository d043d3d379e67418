package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type preferenceService interface {
	Init(ctx context.Context, sessionID string) *entity.Appearance
	ToggleTheme(ctx context.Context, sessionID string, appearance *entity.Appearance)
	Change(ctx context.Context, sessionID string, appearance *entity.Appearance, key, value string) error
}

// table is the game and appearance of one browser session.
type table struct {
	mu         sync.Mutex
	game       *entity.Game
	appearance *entity.Appearance
	lastSeen   time.Time
	// closed is set by Sweep; events that reach a closed table retry on a fresh one.
	closed bool
}

// Tables routes events to the session's table. Events on one table run to completion one at a time.
type Tables struct {
	logger            *slog.Logger
	preferenceService preferenceService

	mu     sync.Mutex
	tables map[string]*table
	now    func() time.Time
}

func NewTables(logger *slog.Logger, preferenceService preferenceService) *Tables {
	return &Tables{
		logger:            logger.With("component", "tables"),
		preferenceService: preferenceService,

		tables: make(map[string]*table),
		now:    time.Now,
	}
}

// Open - returns the session's current view, creating its table on first use.
func (that *Tables) Open(ctx context.Context, sessionID string) entity.View {
	return that.run(ctx, sessionID, func(*table) {})
}

func (that *Tables) AttemptMove(ctx context.Context, sessionID string, cell int) entity.View {
	log := that.logger.With("method", "AttemptMove", "cell", cell)

	return that.run(ctx, sessionID, func(t *table) {
		if !t.game.AttemptMove(cell) {
			log.Debug("move ignored")
			return
		}

		if t.game.IsFinished() {
			log.Info("game finished", "status", t.game.Status, "winner", t.game.Winner)
		}
	})
}

func (that *Tables) Restart(ctx context.Context, sessionID string) entity.View {
	return that.run(ctx, sessionID, func(t *table) {
		t.game.Restart()
	})
}

func (that *Tables) ToggleTheme(ctx context.Context, sessionID string) entity.View {
	return that.run(ctx, sessionID, func(t *table) {
		that.preferenceService.ToggleTheme(ctx, sessionID, t.appearance)
	})
}

// ChangePreference - saves and applies one setting. Unknown keys are ignored.
func (that *Tables) ChangePreference(ctx context.Context, sessionID, key, value string) entity.View {
	log := that.logger.With("method", "ChangePreference", "key", key)

	return that.run(ctx, sessionID, func(t *table) {
		err := that.preferenceService.Change(ctx, sessionID, t.appearance, key, value)
		if errors.Is(err, apperror.ErrUnknownPreference) {
			log.Debug("preference change ignored", "error", err)
		}
	})
}

// Sweep - forgets tables idle for longer than idle and reports how many were dropped.
// Preferences live in the store and are reapplied when the session comes back.
func (that *Tables) Sweep(idle time.Duration) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	dropped := 0

	for sessionID, t := range that.tables {
		t.mu.Lock()
		expired := now.Sub(t.lastSeen) > idle
		if expired {
			t.closed = true
		}
		t.mu.Unlock()

		if expired {
			delete(that.tables, sessionID)
			dropped++
		}
	}

	return dropped
}

func (that *Tables) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.tables)
}

func (that *Tables) run(ctx context.Context, sessionID string, event func(t *table)) entity.View {
	t := that.acquire(ctx, sessionID)
	defer t.mu.Unlock()

	t.lastSeen = that.now()
	event(t)

	return entity.NewView(t.game, t.appearance)
}

// acquire - returns the session's table locked. A table swept between lookup and lock is skipped.
func (that *Tables) acquire(ctx context.Context, sessionID string) *table {
	for {
		t := that.getOrCreate(ctx, sessionID)

		t.mu.Lock()
		if !t.closed {
			return t
		}
		t.mu.Unlock()
	}
}

func (that *Tables) getOrCreate(ctx context.Context, sessionID string) *table {
	that.mu.Lock()
	existing, ok := that.tables[sessionID]
	that.mu.Unlock()

	if ok {
		return existing
	}

	// Init touches the store, so it runs without holding that.mu.
	// The appearance is cached for the table's lifetime and must not depend on the first caller staying around.
	created := &table{
		game:       entity.NewGame(),
		appearance: that.preferenceService.Init(context.WithoutCancel(ctx), sessionID),
		lastSeen:   that.now(),
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok = that.tables[sessionID]; ok {
		return existing
	}

	that.tables[sessionID] = created
	that.logger.Debug("table opened", "tables", len(that.tables))

	return created
}
