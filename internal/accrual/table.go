package accrual

import (
	"errors"
	"fmt"

	"github.com/coachbox/courtclock/internal/models"
)

// Define errors
var (
	// ErrPlayerOutOfRange is returned when a player index is outside the
	// table's current shape
	ErrPlayerOutOfRange = errors.New("player index out of range")

	// ErrOnCourtFull is returned when activating a player would exceed the
	// configured on-court count
	ErrOnCourtFull = errors.New("on-court limit reached")
)

// Table holds per-player accrued active time. Time only ever enters the
// table through ApplyDelta, which fans a single clamped delta out to every
// active player, so the per-player invariant TotalMs == sum(PeriodMs) holds
// in every reachable state. The table is not safe for concurrent use; the
// owning engine guards it.
type Table struct {
	players []*models.Player
	onCourt int
	nextID  int
}

// Config holds configuration for an accrual table
type Config struct {
	// NumPlayers is the initial roster size
	NumPlayers int

	// NumPeriods is the initial period count
	NumPeriods int

	// OnCourt is the on-court slot count; the first OnCourt players of a
	// brand new table start active
	OnCourt int
}

// New creates a new accrual table with zeroed players
func New(cfg *Config) (*Table, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.NumPlayers < 1 {
		return nil, fmt.Errorf("num players must be at least 1, got %d", cfg.NumPlayers)
	}

	if cfg.NumPeriods < 1 {
		return nil, fmt.Errorf("num periods must be at least 1, got %d", cfg.NumPeriods)
	}

	t := &Table{
		onCourt: cfg.OnCourt,
	}
	t.Reshape(cfg.NumPlayers, cfg.NumPeriods, cfg.OnCourt)

	return t, nil
}

// NumPlayers returns the current roster size
func (t *Table) NumPlayers() int {
	return len(t.players)
}

// OnCourt returns the configured on-court slot count
func (t *Table) OnCourt() int {
	return t.onCourt
}

// ActiveCount returns the number of players currently marked active
func (t *Table) ActiveCount() int {
	count := 0
	for _, p := range t.players {
		if p.Active {
			count++
		}
	}
	return count
}

// ApplyDelta adds a clamped delta to every active player, both to the
// running total and to the given period's slot. The delta has already been
// clamped by the engine; anything non-positive is a no-op.
func (t *Table) ApplyDelta(period int, apply int64) {
	if apply <= 0 {
		return
	}

	for _, p := range t.players {
		if !p.Active {
			continue
		}
		if period < 0 || period >= len(p.PeriodMs) {
			continue
		}
		p.TotalMs += apply
		p.PeriodMs[period] += apply
	}
}

// ToggleActive flips a player's active flag. Deactivating is always
// permitted; activating is rejected with ErrOnCourtFull once the active
// count has reached the on-court limit, leaving all flags unchanged.
// It returns the player's new active state.
func (t *Table) ToggleActive(index int) (bool, error) {
	if index < 0 || index >= len(t.players) {
		return false, ErrPlayerOutOfRange
	}

	p := t.players[index]
	if p.Active {
		p.Active = false
		return false, nil
	}

	if t.ActiveCount() >= t.onCourt {
		return false, ErrOnCourtFull
	}

	p.Active = true
	return true, nil
}

// Rename updates a player's display name
func (t *Table) Rename(index int, name string) error {
	if index < 0 || index >= len(t.players) {
		return ErrPlayerOutOfRange
	}

	t.players[index].Name = name
	return nil
}

// Name returns a player's display name, or an empty string for an
// out-of-range index
func (t *Table) Name(index int) string {
	if index < 0 || index >= len(t.players) {
		return ""
	}
	return t.players[index].Name
}

// Reshape reconciles the table with a new roster size and period count.
// Growing appends fresh zeroed players; shrinking truncates from the end.
// Surviving players keep their per-period values for indices present in
// both the old and new period shape. The first onCourt slots start active
// only when the table had no players before the reshape.
func (t *Table) Reshape(numPlayers, numPeriods, onCourt int) {
	if numPlayers < 1 {
		numPlayers = 1
	}
	if numPeriods < 1 {
		numPeriods = 1
	}

	wasEmpty := len(t.players) == 0
	t.onCourt = onCourt

	if numPlayers < len(t.players) {
		t.players = t.players[:numPlayers]
	}

	for len(t.players) < numPlayers {
		p := &models.Player{
			ID:       t.nextID,
			Name:     fmt.Sprintf("Player %d", t.nextID+1),
			PeriodMs: make([]int64, numPeriods),
		}
		if wasEmpty && len(t.players) < onCourt {
			p.Active = true
		}
		t.nextID++
		t.players = append(t.players, p)
	}

	for _, p := range t.players {
		if len(p.PeriodMs) == numPeriods {
			continue
		}
		periodMs := make([]int64, numPeriods)
		copy(periodMs, p.PeriodMs)
		p.PeriodMs = periodMs
		p.TotalMs = sum(periodMs)
	}
}

// Reset zeroes every player's accrued time, preserving identity, names and
// active flags
func (t *Table) Reset() {
	for _, p := range t.players {
		p.TotalMs = 0
		for i := range p.PeriodMs {
			p.PeriodMs[i] = 0
		}
	}
}

// Players returns a deep copy of the player table, in slot order
func (t *Table) Players() []*models.Player {
	players := make([]*models.Player, len(t.players))
	for i, p := range t.players {
		players[i] = p.Clone()
	}
	return players
}

func sum(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}
