package session

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coachbox/courtclock/internal/engine"
	"github.com/coachbox/courtclock/internal/fairness"
	"github.com/coachbox/courtclock/internal/models"
	rosterRepo "github.com/coachbox/courtclock/internal/repositories/roster"
	snapshotRepo "github.com/coachbox/courtclock/internal/repositories/snapshot"
)

// CapacityPolicy decides how an over-capacity activation is surfaced
type CapacityPolicy string

const (
	// CapacityPolicySilent drops the activation without any notice
	CapacityPolicySilent CapacityPolicy = "silent"

	// CapacityPolicyNotify drops the activation and returns a user-visible
	// notice
	CapacityPolicyNotify CapacityPolicy = "notify"
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	SnapshotRepo snapshotRepo.Repository
	RosterRepo   rosterRepo.Repository

	// Clock is the time source shared by the game and overtime clocks;
	// defaults to the real clock
	Clock clockwork.Clock

	// PollInterval is the tick cadence for both clocks
	PollInterval time.Duration

	// BaseTimeouts is the timeout allowance before any overtimes
	BaseTimeouts int

	// CapacityPolicy selects how over-capacity activations are surfaced;
	// defaults to CapacityPolicyNotify
	CapacityPolicy CapacityPolicy

	// Baseline selects which fair-share value player deltas are measured
	// against; defaults to BaselineIdealSoFar
	Baseline fairness.Baseline
}

// ConfigureInput contains parameters for configuring the session. Fields
// left at zero keep their current value; everything else is clamped to the
// nearest valid value, never rejected.
type ConfigureInput struct {
	NumPlayers    int
	OnCourt       int
	Format        models.GameFormat
	PeriodMinutes int
}

// ConfigureOutput contains the configuration that settled after clamping
type ConfigureOutput struct {
	Config models.GameConfig
}

// StartClockInput contains parameters for starting the game clock
type StartClockInput struct{}

// StartClockOutput contains the result of starting the game clock
type StartClockOutput struct {
	State engine.State
}

// PauseClockInput contains parameters for pausing the game clock
type PauseClockInput struct{}

// PauseClockOutput contains the result of pausing the game clock
type PauseClockOutput struct {
	State engine.State
}

// AdvancePeriodInput contains parameters for advancing the period
type AdvancePeriodInput struct{}

// AdvancePeriodOutput contains the result of advancing the period
type AdvancePeriodOutput struct {
	CurrentPeriod int
}

// ResetGameInput contains parameters for resetting the game
type ResetGameInput struct {
	// ResetOvertime chains the overtime clock into the reset; the overtime
	// clock is untouched otherwise
	ResetOvertime bool

	// ResetTimeouts chains the timeout counters into the reset
	ResetTimeouts bool
}

// ResetGameOutput contains the result of resetting the game
type ResetGameOutput struct {
	// GameID is the freshly minted session identifier
	GameID string
}

// ToggleActiveInput contains parameters for toggling a player's on-court
// flag
type ToggleActiveInput struct {
	Index int
}

// ToggleActiveOutput contains the result of toggling a player
type ToggleActiveOutput struct {
	// Active is the player's state after the toggle
	Active bool

	// Notice carries the capacity warning when an activation was rejected
	// under CapacityPolicyNotify
	Notice string
}

// RenamePlayerInput contains parameters for renaming a player
type RenamePlayerInput struct {
	Index int
	Name  string
}

// RenamePlayerOutput contains the result of renaming a player
type RenamePlayerOutput struct{}

// GetGameStateInput contains parameters for reading the session state
type GetGameStateInput struct{}

// PlayerState is the read-only view of one player
type PlayerState struct {
	ID       int
	Name     string
	Active   bool
	TotalMs  int64
	PeriodMs []int64

	// Total is TotalMs rendered mm:ss
	Total string

	// DeltaMs is the player's distance from the configured fairness
	// baseline; positive means over-played
	DeltaMs int64
}

// GetGameStateOutput is a consistent point-in-time view of the session
type GetGameStateOutput struct {
	GameID        string
	Config        models.GameConfig
	RosterName    string
	State         engine.State
	CurrentPeriod int

	PeriodElapsedMs []int64
	GameElapsedMs   int64

	// PeriodClock and GameClock are the elapsed times rendered mm:ss
	PeriodClock string
	GameClock   string

	Players []PlayerState
	Metrics fairness.Metrics

	TimeoutsUsed int
	TimeoutCap   int
	Overtimes    int

	OvertimeRunning   bool
	OvertimeElapsedMs int64
	OvertimeClock     string
}

// UseTimeoutInput contains parameters for using a timeout
type UseTimeoutInput struct{}

// UseTimeoutOutput contains the timeout counters after the change
type UseTimeoutOutput struct {
	Used int
	Cap  int
}

// UndoTimeoutInput contains parameters for undoing a timeout
type UndoTimeoutInput struct{}

// UndoTimeoutOutput contains the timeout counters after the change
type UndoTimeoutOutput struct {
	Used int
	Cap  int
}

// AddOvertimeInput contains parameters for granting an overtime
type AddOvertimeInput struct{}

// AddOvertimeOutput contains the counters after the grant
type AddOvertimeOutput struct {
	Overtimes int
	Cap       int
}

// StartOvertimeInput contains parameters for starting the overtime clock
type StartOvertimeInput struct{}

// StartOvertimeOutput contains the result of starting the overtime clock
type StartOvertimeOutput struct {
	Running bool
}

// PauseOvertimeInput contains parameters for pausing the overtime clock
type PauseOvertimeInput struct{}

// PauseOvertimeOutput contains the result of pausing the overtime clock
type PauseOvertimeOutput struct {
	ElapsedMs int64
}

// ResetOvertimeInput contains parameters for resetting the overtime clock
type ResetOvertimeInput struct{}

// ResetOvertimeOutput contains the result of resetting the overtime clock
type ResetOvertimeOutput struct{}

// SaveRosterInput contains parameters for saving the current lineup
type SaveRosterInput struct {
	Name string
}

// SaveRosterOutput contains the result of saving the lineup
type SaveRosterOutput struct{}

// LoadRosterInput contains parameters for loading a saved lineup
type LoadRosterInput struct {
	Name string
}

// LoadRosterOutput contains the configuration that settled after the load
type LoadRosterOutput struct {
	Config models.GameConfig
}

// DeleteRosterInput contains parameters for deleting a saved lineup
type DeleteRosterInput struct {
	Name string
}

// DeleteRosterOutput contains the result of deleting the lineup
type DeleteRosterOutput struct{}

// ListRostersInput contains parameters for listing saved lineups
type ListRostersInput struct{}

// ListRostersOutput contains the names of all saved lineups
type ListRostersOutput struct {
	Names []string
}

// ExportCSVInput contains parameters for exporting the play-time table
type ExportCSVInput struct{}

// ExportCSVOutput contains the rendered export
type ExportCSVOutput struct {
	CSV string
}
