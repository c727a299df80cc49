package models

// GameFormat represents how the game is divided into periods
type GameFormat string

const (
	// FormatQuarters divides the game into four periods
	FormatQuarters GameFormat = "quarters"

	// FormatHalves divides the game into two periods
	FormatHalves GameFormat = "halves"
)

// Periods returns the number of periods for the format
func (f GameFormat) Periods() int {
	if f == FormatHalves {
		return 2
	}
	return 4
}

// Default configuration values applied when stored or user-supplied
// configuration is missing or out of range
const (
	DefaultNumPlayers    = 10
	DefaultOnCourt       = 5
	DefaultPeriodMinutes = 8
	DefaultBaseTimeouts  = 4
)

// GameConfig holds the roster and clock configuration for a session
type GameConfig struct {
	// NumPlayers is the roster size
	NumPlayers int

	// OnCourt is the number of players on court at a time; never exceeds
	// NumPlayers
	OnCourt int

	// Format determines the period count
	Format GameFormat

	// PeriodMinutes is the scheduled length of a single period
	PeriodMinutes int
}

// DefaultGameConfig returns the configuration used when nothing has been
// stored yet
func DefaultGameConfig() GameConfig {
	return GameConfig{
		NumPlayers:    DefaultNumPlayers,
		OnCourt:       DefaultOnCourt,
		Format:        FormatQuarters,
		PeriodMinutes: DefaultPeriodMinutes,
	}
}

// Normalize clamps every field to its nearest valid value. Out-of-range
// input is never an error; OnCourt is reconciled against NumPlayers before
// any array reshaping happens downstream.
func (c GameConfig) Normalize() GameConfig {
	if c.NumPlayers < 1 {
		c.NumPlayers = 1
	}
	if c.OnCourt < 1 {
		c.OnCourt = 1
	}
	if c.OnCourt > c.NumPlayers {
		c.OnCourt = c.NumPlayers
	}
	if c.Format != FormatQuarters && c.Format != FormatHalves {
		c.Format = FormatQuarters
	}
	if c.PeriodMinutes < 1 {
		c.PeriodMinutes = 1
	}
	return c
}

// NumPeriods returns the period count implied by the format
func (c GameConfig) NumPeriods() int {
	return c.Format.Periods()
}

// PeriodLengthMs returns the scheduled period length in milliseconds
func (c GameConfig) PeriodLengthMs() int64 {
	return int64(c.PeriodMinutes) * 60_000
}
