package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultOvertimeCapMs is the fixed length of an overtime period
const DefaultOvertimeCapMs int64 = 3 * 60 * 1000

// ErrOvertimeComplete is returned when starting the overtime clock after it
// has reached its cap
var ErrOvertimeComplete = errors.New("overtime already complete")

// OvertimeClock is an independent clock with a single fixed-length period.
// It follows the same tick contract as the game clock - consecutive
// wall-clock samples, clamped at the cap - but fans out to no players and
// shares no state with the period ledger. The main game's reset does not
// touch it unless explicitly chained by the caller.
type OvertimeClock struct {
	clock        clockwork.Clock
	pollInterval time.Duration

	mu         sync.Mutex
	capMs      int64
	elapsedMs  int64
	running    bool
	lastSample time.Time
	stopCh     chan struct{}
}

// OvertimeConfig holds configuration for an overtime clock
type OvertimeConfig struct {
	// Clock is the time source; inject a fake for deterministic tests
	Clock clockwork.Clock

	// PollInterval is the tick cadence; defaults to DefaultPollInterval
	PollInterval time.Duration

	// CapMs overrides the fixed overtime length; defaults to
	// DefaultOvertimeCapMs
	CapMs int64
}

// NewOvertimeClock creates a new stopped overtime clock at zero
func NewOvertimeClock(cfg *OvertimeConfig) (*OvertimeClock, error) {
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

	capMs := cfg.CapMs
	if capMs <= 0 {
		capMs = DefaultOvertimeCapMs
	}

	return &OvertimeClock{
		clock:        cfg.Clock,
		pollInterval: pollInterval,
		capMs:        capMs,
	}, nil
}

// Start begins ticking; a no-op when already running, an error once the cap
// has been reached
func (o *OvertimeClock) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return nil
	}

	if o.elapsedMs >= o.capMs {
		return ErrOvertimeComplete
	}

	o.running = true
	o.lastSample = o.clock.Now()
	o.stopCh = make(chan struct{})
	go o.run(o.stopCh)

	log.Debug().Msg("overtime clock started")
	return nil
}

// Pause stops ticking; safe to call in any state
func (o *OvertimeClock) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pauseLocked()
}

func (o *OvertimeClock) pauseLocked() {
	if !o.running {
		return
	}

	o.running = false
	close(o.stopCh)
}

// Reset pauses the clock and returns it to zero
func (o *OvertimeClock) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pauseLocked()
	o.elapsedMs = 0
}

func (o *OvertimeClock) run(stop <-chan struct{}) {
	ticker := o.clock.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if done := o.tick(); done {
				return
			}
		}
	}
}

func (o *OvertimeClock) tick() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running {
		return true
	}

	now := o.clock.Now()
	d := now.Sub(o.lastSample).Milliseconds()
	o.lastSample = now

	if d < 0 {
		d = 0
	}
	if remaining := o.capMs - o.elapsedMs; d > remaining {
		d = remaining
	}
	o.elapsedMs += d

	if o.elapsedMs >= o.capMs {
		o.running = false
		log.Info().Int64("elapsed_ms", o.elapsedMs).Msg("overtime complete - clock paused")
		return true
	}

	return false
}

// Restore seeds the elapsed time from persisted state, clamped into
// [0, cap]; only valid while paused
func (o *OvertimeClock) Restore(elapsedMs int64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return
	}

	if elapsedMs < 0 {
		elapsedMs = 0
	}
	if elapsedMs > o.capMs {
		elapsedMs = o.capMs
	}
	o.elapsedMs = elapsedMs
}

// Running reports whether the overtime clock is ticking
func (o *OvertimeClock) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// ElapsedMs returns the accumulated overtime, bounded by the cap
func (o *OvertimeClock) ElapsedMs() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.elapsedMs
}

// CapMs returns the fixed overtime length
func (o *OvertimeClock) CapMs() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.capMs
}
