package ledger

import (
	"errors"
	"fmt"
)

// Define errors
var (
	// ErrPeriodOutOfRange is returned when a period index is outside the
	// ledger's current shape
	ErrPeriodOutOfRange = errors.New("period index out of range")

	// ErrDeltaOutOfRange is returned when a recorded delta is negative or
	// would push a period past its scheduled length
	ErrDeltaOutOfRange = errors.New("delta out of range")
)

// PeriodLedger tracks elapsed time per period. Every slot is bounded by the
// scheduled period length; the ledger itself is not safe for concurrent use
// and is expected to be guarded by its owning engine.
type PeriodLedger struct {
	periodLengthMs int64
	elapsed        []int64
}

// Config holds configuration for a period ledger
type Config struct {
	// NumPeriods is the number of periods in the game
	NumPeriods int

	// PeriodLengthMs is the scheduled length of a single period
	PeriodLengthMs int64
}

// New creates a new period ledger with all periods at zero
func New(cfg *Config) (*PeriodLedger, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.NumPeriods < 1 {
		return nil, fmt.Errorf("num periods must be at least 1, got %d", cfg.NumPeriods)
	}

	if cfg.PeriodLengthMs < 1 {
		return nil, fmt.Errorf("period length must be positive, got %d", cfg.PeriodLengthMs)
	}

	return &PeriodLedger{
		periodLengthMs: cfg.PeriodLengthMs,
		elapsed:        make([]int64, cfg.NumPeriods),
	}, nil
}

// NumPeriods returns the current period count
func (l *PeriodLedger) NumPeriods() int {
	return len(l.elapsed)
}

// PeriodLengthMs returns the scheduled period length
func (l *PeriodLedger) PeriodLengthMs() int64 {
	return l.periodLengthMs
}

// Elapsed returns the elapsed time recorded for a period, or zero for an
// out-of-range index
func (l *PeriodLedger) Elapsed(period int) int64 {
	if period < 0 || period >= len(l.elapsed) {
		return 0
	}
	return l.elapsed[period]
}

// Remaining returns the time left before a period reaches its scheduled
// length, or zero for an out-of-range index
func (l *PeriodLedger) Remaining(period int) int64 {
	if period < 0 || period >= len(l.elapsed) {
		return 0
	}
	return l.periodLengthMs - l.elapsed[period]
}

// IsComplete reports whether a period has reached its scheduled length
func (l *PeriodLedger) IsComplete(period int) bool {
	if period < 0 || period >= len(l.elapsed) {
		return false
	}
	return l.elapsed[period] >= l.periodLengthMs
}

// RecordDelta adds a clamped delta to a period. The caller is responsible
// for clamping; a delta that is negative or exceeds the remaining time is
// rejected so the bounded-period invariant can never be broken here.
func (l *PeriodLedger) RecordDelta(period int, apply int64) error {
	if period < 0 || period >= len(l.elapsed) {
		return ErrPeriodOutOfRange
	}

	if apply < 0 || apply > l.Remaining(period) {
		return ErrDeltaOutOfRange
	}

	l.elapsed[period] += apply
	return nil
}

// GameElapsedMs returns the total elapsed time across all periods
func (l *PeriodLedger) GameElapsedMs() int64 {
	var total int64
	for _, e := range l.elapsed {
		total += e
	}
	return total
}

// Reshape changes the period count, preserving elapsed values for indices
// present in both the old and new shape
func (l *PeriodLedger) Reshape(numPeriods int) {
	if numPeriods < 1 {
		numPeriods = 1
	}

	if numPeriods == len(l.elapsed) {
		return
	}

	elapsed := make([]int64, numPeriods)
	copy(elapsed, l.elapsed)
	l.elapsed = elapsed
}

// SetPeriodLength changes the scheduled period length. Elapsed values that
// exceed the new length are clamped down so the bound invariant holds.
func (l *PeriodLedger) SetPeriodLength(periodLengthMs int64) {
	if periodLengthMs < 1 {
		periodLengthMs = 1
	}

	l.periodLengthMs = periodLengthMs
	for i, e := range l.elapsed {
		if e > periodLengthMs {
			l.elapsed[i] = periodLengthMs
		}
	}
}

// Reset zeroes every period
func (l *PeriodLedger) Reset() {
	for i := range l.elapsed {
		l.elapsed[i] = 0
	}
}

// Snapshot returns a copy of the per-period elapsed values
func (l *PeriodLedger) Snapshot() []int64 {
	elapsed := make([]int64, len(l.elapsed))
	copy(elapsed, l.elapsed)
	return elapsed
}
