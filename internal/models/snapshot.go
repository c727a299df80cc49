package models

// Snapshot is the serializable state handed to the persistence collaborator
// whenever configuration, names or counters change. It deliberately excludes
// period and accrual progress: a reload always starts the clock at zero.
type Snapshot struct {
	// GameID identifies the game session the snapshot belongs to; a reset
	// mints a fresh one
	GameID string `json:"game_id"`

	// NumPlayers is the configured roster size
	NumPlayers int `json:"num_players"`

	// OnCourt is the configured on-court slot count
	OnCourt int `json:"on_court"`

	// Format is the period format (quarters or halves)
	Format GameFormat `json:"format"`

	// PeriodMinutes is the scheduled period length
	PeriodMinutes int `json:"period_minutes"`

	// RosterName is the name of the roster currently loaded, if any
	RosterName string `json:"roster_name"`

	// Players holds the display names, in slot order
	Players []RosterPlayer `json:"players"`

	// TimeoutsUsed is the number of timeouts consumed so far
	TimeoutsUsed int `json:"timeouts_used"`

	// Overtimes is the number of overtimes granted so far
	Overtimes int `json:"overtimes"`

	// OTElapsedMs is the elapsed time on the overtime clock
	OTElapsedMs int64 `json:"ot_elapsed_ms"`
}
