package session

import "context"

// Service defines the interface for running a fair-play clock session
type Service interface {
	// Configure applies roster and clock configuration, clamping invalid
	// values and reshaping runtime state while preserving surviving data
	Configure(ctx context.Context, input *ConfigureInput) (*ConfigureOutput, error)

	// StartClock starts the game clock for the current period
	StartClock(ctx context.Context, input *StartClockInput) (*StartClockOutput, error)

	// PauseClock pauses the game clock
	PauseClock(ctx context.Context, input *PauseClockInput) (*PauseClockOutput, error)

	// AdvancePeriod pauses the clock and moves to the next period
	AdvancePeriod(ctx context.Context, input *AdvancePeriodInput) (*AdvancePeriodOutput, error)

	// ResetGame zeroes all game time, optionally chaining the overtime
	// clock and timeout counters into the reset
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// ToggleActive flips a player's on-court flag, enforcing the on-court
	// limit according to the configured capacity policy
	ToggleActive(ctx context.Context, input *ToggleActiveInput) (*ToggleActiveOutput, error)

	// RenamePlayer updates a player's display name
	RenamePlayer(ctx context.Context, input *RenamePlayerInput) (*RenamePlayerOutput, error)

	// GetGameState returns a consistent snapshot of the session with the
	// fairness metrics recomputed from it
	GetGameState(ctx context.Context, input *GetGameStateInput) (*GetGameStateOutput, error)

	// UseTimeout consumes a timeout
	UseTimeout(ctx context.Context, input *UseTimeoutInput) (*UseTimeoutOutput, error)

	// UndoTimeout returns a timeout
	UndoTimeout(ctx context.Context, input *UndoTimeoutInput) (*UndoTimeoutOutput, error)

	// AddOvertime grants an overtime, raising the timeout cap
	AddOvertime(ctx context.Context, input *AddOvertimeInput) (*AddOvertimeOutput, error)

	// StartOvertime starts the overtime clock
	StartOvertime(ctx context.Context, input *StartOvertimeInput) (*StartOvertimeOutput, error)

	// PauseOvertime pauses the overtime clock
	PauseOvertime(ctx context.Context, input *PauseOvertimeInput) (*PauseOvertimeOutput, error)

	// ResetOvertime pauses the overtime clock and returns it to zero
	ResetOvertime(ctx context.Context, input *ResetOvertimeInput) (*ResetOvertimeOutput, error)

	// SaveRoster stores the current lineup under a name
	SaveRoster(ctx context.Context, input *SaveRosterInput) (*SaveRosterOutput, error)

	// LoadRoster loads a saved lineup and resets all runtime accrual state
	LoadRoster(ctx context.Context, input *LoadRosterInput) (*LoadRosterOutput, error)

	// DeleteRoster removes a saved lineup
	DeleteRoster(ctx context.Context, input *DeleteRosterInput) (*DeleteRosterOutput, error)

	// ListRosters returns the names of all saved lineups
	ListRosters(ctx context.Context, input *ListRostersInput) (*ListRostersOutput, error)

	// ExportCSV renders the current play-time table as CSV
	ExportCSV(ctx context.Context, input *ExportCSVInput) (*ExportCSVOutput, error)
}
