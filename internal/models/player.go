package models

// Player represents a roster member being tracked by the game clock
type Player struct {
	// ID is a stable identifier assigned once when the player slot is
	// created; IDs are never reused within a session
	ID int

	// Name is the display name of the player
	Name string

	// Active indicates whether the player is currently on court and
	// accruing time
	Active bool

	// TotalMs is the accumulated active time across the whole game, in
	// milliseconds
	TotalMs int64

	// PeriodMs holds the accumulated active time per period; its length
	// always equals the configured period count, and the sum of its
	// entries equals TotalMs
	PeriodMs []int64
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	periodMs := make([]int64, len(p.PeriodMs))
	copy(periodMs, p.PeriodMs)

	return &Player{
		ID:       p.ID,
		Name:     p.Name,
		Active:   p.Active,
		TotalMs:  p.TotalMs,
		PeriodMs: periodMs,
	}
}
