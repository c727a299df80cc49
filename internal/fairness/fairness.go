// Package fairness derives fair-play baselines from the current clock state.
// Everything here is a pure function of its inputs; metrics are recomputed
// on every read rather than maintained incrementally, so they can never go
// stale relative to the ledger.
package fairness

// Baseline selects which fair-share value player deltas are measured
// against
type Baseline string

const (
	// BaselineIdealSoFar measures players against the fair share of the
	// time actually elapsed
	BaselineIdealSoFar Baseline = "ideal_so_far"

	// BaselineFullGame measures players against the fair share of the full
	// scheduled game
	BaselineFullGame Baseline = "full_game"
)

// Metrics holds the derived fair-share values for the current state
type Metrics struct {
	// GameElapsedMs is the summed elapsed time across all periods
	GameElapsedMs int64

	// IdealMsSoFar is the fair share of the elapsed time a player would
	// have if on-court time were divided evenly across the roster
	IdealMsSoFar int64

	// GoalPerPlayerMs is the fair share of the full scheduled game
	GoalPerPlayerMs int64
}

// Compute derives the fairness metrics from the ledger total and the
// session configuration. A zero roster produces zero metrics, never a
// division fault.
func Compute(gameElapsedMs int64, numPeriods int, periodLengthMs int64, onCourt, numPlayers int) Metrics {
	m := Metrics{GameElapsedMs: gameElapsedMs}

	if numPlayers <= 0 {
		return m
	}

	m.IdealMsSoFar = gameElapsedMs * int64(onCourt) / int64(numPlayers)
	m.GoalPerPlayerMs = int64(numPeriods) * periodLengthMs * int64(onCourt) / int64(numPlayers)

	return m
}

// Delta returns how far a player's accrued time sits above or below the
// selected baseline; positive means over-played
func Delta(totalMs int64, m Metrics, baseline Baseline) int64 {
	if baseline == BaselineFullGame {
		return totalMs - m.GoalPerPlayerMs
	}
	return totalMs - m.IdealMsSoFar
}
