package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/coachbox/courtclock/internal/accrual"
	"github.com/coachbox/courtclock/internal/ledger"
	"github.com/coachbox/courtclock/internal/models"
)

// State represents the current state of the game clock
type State string

const (
	// StateIdle indicates the clock is not running
	StateIdle State = "idle"

	// StateRunning indicates the tick loop is active
	StateRunning State = "running"
)

// DefaultPollInterval is the cadence at which the running clock samples
// wall-clock time
const DefaultPollInterval = 250 * time.Millisecond

// Define errors
var (
	// ErrPeriodComplete is returned when starting the clock while the
	// current period has already reached its scheduled length
	ErrPeriodComplete = errors.New("current period already complete")
)

// Engine orchestrates the period ledger and the player accrual table into
// one consistent tick: it computes the clamped wall-clock delta, advances
// the current period's slot and fans the same delta out to every active
// player as a single transition under the engine mutex. A reader can never
// observe the ledger updated without the matching accrual.
//
// One goroutine owns the tick loop, so at most one tick is ever in flight;
// pause and reset are safe to call at any time, including between a tick's
// schedule and its execution.
type Engine struct {
	clock        clockwork.Clock
	pollInterval time.Duration

	mu            sync.Mutex
	ledger        *ledger.PeriodLedger
	table         *accrual.Table
	state         State
	currentPeriod int
	lastSample    time.Time
	stopCh        chan struct{}
}

// Config holds configuration for the game clock engine
type Config struct {
	// Clock is the time source; inject a fake for deterministic tests
	Clock clockwork.Clock

	// PollInterval is the tick cadence; defaults to DefaultPollInterval
	PollInterval time.Duration

	// NumPlayers is the initial roster size
	NumPlayers int

	// OnCourt is the initial on-court slot count
	OnCourt int

	// NumPeriods is the initial period count
	NumPeriods int

	// PeriodLengthMs is the scheduled period length
	PeriodLengthMs int64
}

// New creates a new game clock engine in the idle state with zeroed time
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	periodLedger, err := ledger.New(&ledger.Config{
		NumPeriods:     cfg.NumPeriods,
		PeriodLengthMs: cfg.PeriodLengthMs,
	})
	if err != nil {
		return nil, err
	}

	table, err := accrual.New(&accrual.Config{
		NumPlayers: cfg.NumPlayers,
		NumPeriods: cfg.NumPeriods,
		OnCourt:    cfg.OnCourt,
	})
	if err != nil {
		return nil, err
	}

	return &Engine{
		clock:        cfg.Clock,
		pollInterval: pollInterval,
		ledger:       periodLedger,
		table:        table,
		state:        StateIdle,
	}, nil
}

// Start begins the tick loop. Starting an already running engine is a
// no-op; starting with the current period at its scheduled length returns
// ErrPeriodComplete.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateRunning {
		return nil
	}

	if e.ledger.IsComplete(e.currentPeriod) {
		return ErrPeriodComplete
	}

	e.state = StateRunning
	e.lastSample = e.clock.Now()
	e.stopCh = make(chan struct{})
	go e.run(e.stopCh)

	log.Debug().Int("period", e.currentPeriod).Msg("game clock started")
	return nil
}

// Pause stops the tick loop; safe to call in any state
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauseLocked()
}

func (e *Engine) pauseLocked() {
	if e.state != StateRunning {
		return
	}

	e.state = StateIdle
	close(e.stopCh)

	log.Debug().Int("period", e.currentPeriod).Msg("game clock paused")
}

// AdvancePeriod pauses the clock and moves to the next period, clamped to
// the last index
func (e *Engine) AdvancePeriod() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pauseLocked()

	if e.currentPeriod < e.ledger.NumPeriods()-1 {
		e.currentPeriod++
	}

	log.Debug().Int("period", e.currentPeriod).Msg("advanced period")
}

// Reset pauses the clock, zeroes the ledger and every player's accrued
// time, and returns to the first period. Names, identities and active flags
// survive a reset.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pauseLocked()
	e.ledger.Reset()
	e.table.Reset()
	e.currentPeriod = 0

	log.Debug().Msg("game clock reset")
}

// run is the tick loop; exactly one instance exists while the engine is
// running
func (e *Engine) run(stop <-chan struct{}) {
	ticker := e.clock.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if done := e.tick(); done {
				return
			}
		}
	}
}

// tick applies the wall-clock delta since the previous sample as one atomic
// transition. It reports whether the loop should exit.
func (e *Engine) tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A pause or reset may have won the race with this tick
	if e.state != StateRunning {
		return true
	}

	now := e.clock.Now()
	d := now.Sub(e.lastSample).Milliseconds()
	e.lastSample = now

	e.applyDeltaLocked(d)

	if e.ledger.IsComplete(e.currentPeriod) {
		// Auto-pause at the period boundary; the period index does not
		// advance on its own
		e.state = StateIdle
		log.Info().
			Int("period", e.currentPeriod).
			Int64("elapsed_ms", e.ledger.Elapsed(e.currentPeriod)).
			Msg("period complete - clock paused")
		return true
	}

	return false
}

// applyDeltaLocked clamps a raw wall-clock delta and applies it to the
// ledger and every active player. Negative deltas (clock anomalies) apply
// zero time; deltas beyond the period boundary are clamped to the remaining
// time so a period can never overflow, even when a single delayed sample
// spans the boundary.
func (e *Engine) applyDeltaLocked(d int64) {
	if d < 0 {
		d = 0
	}

	apply := d
	if remaining := e.ledger.Remaining(e.currentPeriod); apply > remaining {
		apply = remaining
	}

	if apply <= 0 {
		return
	}

	if err := e.ledger.RecordDelta(e.currentPeriod, apply); err != nil {
		// Unreachable after the clamp above; a bad sample contributes
		// nothing rather than escaping the tick
		log.Warn().Err(err).Int64("delta_ms", d).Msg("dropped tick delta")
		return
	}

	e.table.ApplyDelta(e.currentPeriod, apply)
}

// State returns the current clock state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// CurrentPeriod returns the index of the period the clock is in
func (e *Engine) CurrentPeriod() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentPeriod
}

// ToggleActive flips a player's on-court flag, enforcing the on-court limit
func (e *Engine) ToggleActive(index int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table.ToggleActive(index)
}

// RenamePlayer updates a player's display name
func (e *Engine) RenamePlayer(index int, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table.Rename(index, name)
}

// Reshape reconciles the engine with new configuration. The caller is
// expected to pass an already-normalized configuration (onCourt clamped to
// numPlayers); reshaping preserves surviving accrual data and clamps the
// current period into the new range.
func (e *Engine) Reshape(numPlayers, onCourt, numPeriods int, periodLengthMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ledger.Reshape(numPeriods)
	e.ledger.SetPeriodLength(periodLengthMs)
	e.table.Reshape(numPlayers, numPeriods, onCourt)

	if e.currentPeriod > numPeriods-1 {
		e.currentPeriod = numPeriods - 1
	}
}

// GameState is a point-in-time copy of the engine's mutable state
type GameState struct {
	// State is the clock state at the time of the snapshot
	State State

	// CurrentPeriod is the period index at the time of the snapshot
	CurrentPeriod int

	// PeriodElapsedMs holds the per-period elapsed times
	PeriodElapsedMs []int64

	// GameElapsedMs is the summed elapsed time
	GameElapsedMs int64

	// PeriodLengthMs is the scheduled period length
	PeriodLengthMs int64

	// Players is a deep copy of the player table
	Players []*models.Player
}

// Snapshot returns a consistent copy of the engine state, taken under the
// same lock the tick holds, so the ledger and accrual values always match
func (e *Engine) Snapshot() *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return &GameState{
		State:           e.state,
		CurrentPeriod:   e.currentPeriod,
		PeriodElapsedMs: e.ledger.Snapshot(),
		GameElapsedMs:   e.ledger.GameElapsedMs(),
		PeriodLengthMs:  e.ledger.PeriodLengthMs(),
		Players:         e.table.Players(),
	}
}
