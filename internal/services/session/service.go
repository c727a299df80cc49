package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/coachbox/courtclock/internal/accrual"
	"github.com/coachbox/courtclock/internal/clockfmt"
	"github.com/coachbox/courtclock/internal/engine"
	"github.com/coachbox/courtclock/internal/export"
	"github.com/coachbox/courtclock/internal/fairness"
	"github.com/coachbox/courtclock/internal/models"
	rosterRepo "github.com/coachbox/courtclock/internal/repositories/roster"
	snapshotRepo "github.com/coachbox/courtclock/internal/repositories/snapshot"
)

// service implements the Service interface
type service struct {
	snapshotRepo   snapshotRepo.Repository
	rosterRepo     rosterRepo.Repository
	capacityPolicy CapacityPolicy
	baseline       fairness.Baseline

	engine   *engine.Engine
	overtime *engine.OvertimeClock
	timeouts *engine.TimeoutLedger

	// mu guards the configuration and roster name; the clocks guard their
	// own state
	mu         sync.Mutex
	gameConfig models.GameConfig
	rosterName string
	gameID     string
}

// New creates a new session service. A previously stored snapshot seeds the
// configuration, player names and counters; period and accrual progress
// always start at zero. Missing or malformed stored data fails soft and the
// session starts from defaults.
func New(ctx context.Context, cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SnapshotRepo == nil {
		return nil, ErrNilSnapshotRepo
	}

	if cfg.RosterRepo == nil {
		return nil, ErrNilRosterRepo
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	capacityPolicy := cfg.CapacityPolicy
	if capacityPolicy == "" {
		capacityPolicy = CapacityPolicyNotify
	}

	baseline := cfg.Baseline
	if baseline == "" {
		baseline = fairness.BaselineIdealSoFar
	}

	baseTimeouts := cfg.BaseTimeouts
	if baseTimeouts <= 0 {
		baseTimeouts = models.DefaultBaseTimeouts
	}

	gameConfig := models.DefaultGameConfig()
	stored, err := cfg.SnapshotRepo.GetSnapshot(ctx, &snapshotRepo.GetSnapshotInput{})
	if err != nil {
		if !errors.Is(err, snapshotRepo.ErrSnapshotNotFound) {
			log.Warn().Err(err).Msg("failed to load stored snapshot - starting from defaults")
		}
		stored = nil
	}
	if stored != nil {
		gameConfig = models.GameConfig{
			NumPlayers:    stored.NumPlayers,
			OnCourt:       stored.OnCourt,
			Format:        stored.Format,
			PeriodMinutes: stored.PeriodMinutes,
		}.Normalize()
	}

	eng, err := engine.New(&engine.Config{
		Clock:          clk,
		PollInterval:   cfg.PollInterval,
		NumPlayers:     gameConfig.NumPlayers,
		OnCourt:        gameConfig.OnCourt,
		NumPeriods:     gameConfig.NumPeriods(),
		PeriodLengthMs: gameConfig.PeriodLengthMs(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game clock engine: %w", err)
	}

	overtime, err := engine.NewOvertimeClock(&engine.OvertimeConfig{
		Clock:        clk,
		PollInterval: cfg.PollInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create overtime clock: %w", err)
	}

	s := &service{
		snapshotRepo:   cfg.SnapshotRepo,
		rosterRepo:     cfg.RosterRepo,
		capacityPolicy: capacityPolicy,
		baseline:       baseline,
		engine:         eng,
		overtime:       overtime,
		timeouts:       engine.NewTimeoutLedger(baseTimeouts),
		gameConfig:     gameConfig,
	}

	if stored != nil {
		s.rosterName = stored.RosterName
		s.gameID = stored.GameID
		s.timeouts.Restore(stored.TimeoutsUsed, stored.Overtimes)
		s.overtime.Restore(stored.OTElapsedMs)
		for i, p := range stored.Players {
			if p.Name == "" {
				continue
			}
			if err := s.engine.RenamePlayer(i, p.Name); err != nil {
				break
			}
		}
		log.Info().
			Str("game_id", s.gameID).
			Int("num_players", gameConfig.NumPlayers).
			Str("roster", s.rosterName).
			Msg("session seeded from stored snapshot")
	}
	if s.gameID == "" {
		s.gameID = uuid.New().String()
	}

	return s, nil
}

// Configure applies roster and clock configuration. Zero-valued fields keep
// their current value; everything else clamps to the nearest valid value.
// The on-court count is reconciled against the roster size before any
// reshaping, and surviving accrual data is preserved by index.
func (s *service) Configure(ctx context.Context, input *ConfigureInput) (*ConfigureOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	s.mu.Lock()
	next := s.gameConfig
	if input.NumPlayers > 0 {
		next.NumPlayers = input.NumPlayers
	}
	if input.OnCourt > 0 {
		next.OnCourt = input.OnCourt
	}
	if input.Format != "" {
		next.Format = input.Format
	}
	if input.PeriodMinutes > 0 {
		next.PeriodMinutes = input.PeriodMinutes
	}

	next = next.Normalize()
	s.engine.Reshape(next.NumPlayers, next.OnCourt, next.NumPeriods(), next.PeriodLengthMs())
	s.gameConfig = next
	s.mu.Unlock()

	s.persist(ctx)

	return &ConfigureOutput{Config: next}, nil
}

// StartClock starts the game clock for the current period
func (s *service) StartClock(ctx context.Context, input *StartClockInput) (*StartClockOutput, error) {
	if err := s.engine.Start(); err != nil {
		return nil, err
	}

	return &StartClockOutput{State: s.engine.State()}, nil
}

// PauseClock pauses the game clock
func (s *service) PauseClock(ctx context.Context, input *PauseClockInput) (*PauseClockOutput, error) {
	s.engine.Pause()
	return &PauseClockOutput{State: s.engine.State()}, nil
}

// AdvancePeriod pauses the clock and moves to the next period
func (s *service) AdvancePeriod(ctx context.Context, input *AdvancePeriodInput) (*AdvancePeriodOutput, error) {
	s.engine.AdvancePeriod()
	return &AdvancePeriodOutput{CurrentPeriod: s.engine.CurrentPeriod()}, nil
}

// ResetGame zeroes all game time and mints a fresh game ID. The overtime
// clock and timeout counters are only reset when explicitly chained in.
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	if input == nil {
		input = &ResetGameInput{}
	}

	s.engine.Reset()

	if input.ResetOvertime {
		s.overtime.Reset()
	}
	if input.ResetTimeouts {
		s.timeouts.Reset()
	}

	s.mu.Lock()
	s.gameID = uuid.New().String()
	gameID := s.gameID
	s.mu.Unlock()

	s.persist(ctx)

	log.Info().Str("game_id", gameID).Msg("game reset")

	return &ResetGameOutput{GameID: gameID}, nil
}

// ToggleActive flips a player's on-court flag. An activation beyond the
// on-court limit leaves all flags unchanged; depending on the capacity
// policy the rejection is silent or carries a notice. Either way it is not
// an error.
func (s *service) ToggleActive(ctx context.Context, input *ToggleActiveInput) (*ToggleActiveOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	active, err := s.engine.ToggleActive(input.Index)
	if err != nil {
		if errors.Is(err, accrual.ErrOnCourtFull) {
			out := &ToggleActiveOutput{Active: false}
			if s.capacityPolicy == CapacityPolicyNotify {
				s.mu.Lock()
				onCourt := s.gameConfig.OnCourt
				s.mu.Unlock()
				out.Notice = fmt.Sprintf("Only %d players can be on court - sub someone out first", onCourt)
			}
			return out, nil
		}
		return nil, err
	}

	return &ToggleActiveOutput{Active: active}, nil
}

// RenamePlayer updates a player's display name
func (s *service) RenamePlayer(ctx context.Context, input *RenamePlayerInput) (*RenamePlayerOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := s.engine.RenamePlayer(input.Index, input.Name); err != nil {
		return nil, err
	}

	s.persist(ctx)

	return &RenamePlayerOutput{}, nil
}

// GetGameState returns a consistent snapshot of the session with the
// fairness metrics recomputed from it
func (s *service) GetGameState(ctx context.Context, input *GetGameStateInput) (*GetGameStateOutput, error) {
	s.mu.Lock()
	cfg := s.gameConfig
	rosterName := s.rosterName
	gameID := s.gameID
	s.mu.Unlock()

	state := s.engine.Snapshot()

	metrics := fairness.Compute(
		state.GameElapsedMs,
		cfg.NumPeriods(),
		cfg.PeriodLengthMs(),
		cfg.OnCourt,
		cfg.NumPlayers,
	)

	players := make([]PlayerState, len(state.Players))
	for i, p := range state.Players {
		players[i] = PlayerState{
			ID:       p.ID,
			Name:     p.Name,
			Active:   p.Active,
			TotalMs:  p.TotalMs,
			PeriodMs: p.PeriodMs,
			Total:    clockfmt.MMSS(p.TotalMs),
			DeltaMs:  fairness.Delta(p.TotalMs, metrics, s.baseline),
		}
	}

	var periodElapsed int64
	if state.CurrentPeriod >= 0 && state.CurrentPeriod < len(state.PeriodElapsedMs) {
		periodElapsed = state.PeriodElapsedMs[state.CurrentPeriod]
	}

	otElapsed := s.overtime.ElapsedMs()

	return &GetGameStateOutput{
		GameID:          gameID,
		Config:          cfg,
		RosterName:      rosterName,
		State:           state.State,
		CurrentPeriod:   state.CurrentPeriod,
		PeriodElapsedMs: state.PeriodElapsedMs,
		GameElapsedMs:   state.GameElapsedMs,
		PeriodClock:     clockfmt.MMSS(periodElapsed),
		GameClock:       clockfmt.MMSS(state.GameElapsedMs),
		Players:         players,
		Metrics:         metrics,
		TimeoutsUsed:    s.timeouts.Used(),
		TimeoutCap:      s.timeouts.Cap(),
		Overtimes:       s.timeouts.Overtimes(),
		OvertimeRunning: s.overtime.Running(),
		OvertimeElapsedMs: otElapsed,
		OvertimeClock:   clockfmt.MMSS(otElapsed),
	}, nil
}

// UseTimeout consumes a timeout
func (s *service) UseTimeout(ctx context.Context, input *UseTimeoutInput) (*UseTimeoutOutput, error) {
	s.timeouts.Use()
	s.persist(ctx)

	return &UseTimeoutOutput{Used: s.timeouts.Used(), Cap: s.timeouts.Cap()}, nil
}

// UndoTimeout returns a timeout
func (s *service) UndoTimeout(ctx context.Context, input *UndoTimeoutInput) (*UndoTimeoutOutput, error) {
	s.timeouts.Undo()
	s.persist(ctx)

	return &UndoTimeoutOutput{Used: s.timeouts.Used(), Cap: s.timeouts.Cap()}, nil
}

// AddOvertime grants an overtime, raising the timeout cap
func (s *service) AddOvertime(ctx context.Context, input *AddOvertimeInput) (*AddOvertimeOutput, error) {
	s.timeouts.AddOvertime()
	s.persist(ctx)

	return &AddOvertimeOutput{Overtimes: s.timeouts.Overtimes(), Cap: s.timeouts.Cap()}, nil
}

// StartOvertime starts the overtime clock
func (s *service) StartOvertime(ctx context.Context, input *StartOvertimeInput) (*StartOvertimeOutput, error) {
	if err := s.overtime.Start(); err != nil {
		return nil, err
	}

	return &StartOvertimeOutput{Running: s.overtime.Running()}, nil
}

// PauseOvertime pauses the overtime clock
func (s *service) PauseOvertime(ctx context.Context, input *PauseOvertimeInput) (*PauseOvertimeOutput, error) {
	s.overtime.Pause()
	s.persist(ctx)

	return &PauseOvertimeOutput{ElapsedMs: s.overtime.ElapsedMs()}, nil
}

// ResetOvertime pauses the overtime clock and returns it to zero
func (s *service) ResetOvertime(ctx context.Context, input *ResetOvertimeInput) (*ResetOvertimeOutput, error) {
	s.overtime.Reset()
	s.persist(ctx)

	return &ResetOvertimeOutput{}, nil
}

// SaveRoster stores the current lineup under a name
func (s *service) SaveRoster(ctx context.Context, input *SaveRosterInput) (*SaveRosterOutput, error) {
	if input == nil || input.Name == "" {
		return nil, ErrRosterNameMissing
	}

	s.mu.Lock()
	cfg := s.gameConfig
	s.mu.Unlock()

	state := s.engine.Snapshot()
	players := make([]models.RosterPlayer, len(state.Players))
	for i, p := range state.Players {
		players[i] = models.RosterPlayer{Name: p.Name}
	}

	err := s.rosterRepo.SaveRoster(ctx, &rosterRepo.SaveRosterInput{
		Roster: &models.Roster{
			Name:       input.Name,
			Players:    players,
			NumPlayers: cfg.NumPlayers,
			OnCourt:    cfg.OnCourt,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save roster: %w", err)
	}

	s.mu.Lock()
	s.rosterName = input.Name
	s.mu.Unlock()

	s.persist(ctx)

	return &SaveRosterOutput{}, nil
}

// LoadRoster loads a saved lineup. Loading reconfigures the roster shape,
// applies the saved names and resets all runtime accrual state; the period
// format and length are kept.
func (s *service) LoadRoster(ctx context.Context, input *LoadRosterInput) (*LoadRosterOutput, error) {
	if input == nil || input.Name == "" {
		return nil, ErrRosterNameMissing
	}

	saved, err := s.rosterRepo.GetRoster(ctx, &rosterRepo.GetRosterInput{Name: input.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	s.mu.Lock()
	next := s.gameConfig
	next.NumPlayers = saved.NumPlayers
	next.OnCourt = saved.OnCourt
	next = next.Normalize()

	s.engine.Reset()
	s.engine.Reshape(next.NumPlayers, next.OnCourt, next.NumPeriods(), next.PeriodLengthMs())
	for i, p := range saved.Players {
		if i >= next.NumPlayers {
			break
		}
		if err := s.engine.RenamePlayer(i, p.Name); err != nil {
			break
		}
	}

	s.gameConfig = next
	s.rosterName = saved.Name
	s.mu.Unlock()

	s.persist(ctx)

	log.Info().Str("roster", saved.Name).Int("num_players", next.NumPlayers).Msg("roster loaded")

	return &LoadRosterOutput{Config: next}, nil
}

// DeleteRoster removes a saved lineup
func (s *service) DeleteRoster(ctx context.Context, input *DeleteRosterInput) (*DeleteRosterOutput, error) {
	if input == nil || input.Name == "" {
		return nil, ErrRosterNameMissing
	}

	if err := s.rosterRepo.DeleteRoster(ctx, &rosterRepo.DeleteRosterInput{Name: input.Name}); err != nil {
		return nil, fmt.Errorf("failed to delete roster: %w", err)
	}

	s.mu.Lock()
	if s.rosterName == input.Name {
		s.rosterName = ""
	}
	s.mu.Unlock()

	s.persist(ctx)

	return &DeleteRosterOutput{}, nil
}

// ListRosters returns the names of all saved lineups
func (s *service) ListRosters(ctx context.Context, input *ListRostersInput) (*ListRostersOutput, error) {
	out, err := s.rosterRepo.ListRosters(ctx, &rosterRepo.ListRostersInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}

	return &ListRostersOutput{Names: out.Names}, nil
}

// ExportCSV renders the current play-time table as CSV from a point-in-time
// snapshot; the engine is never mutated
func (s *service) ExportCSV(ctx context.Context, input *ExportCSVInput) (*ExportCSVOutput, error) {
	s.mu.Lock()
	format := s.gameConfig.Format
	s.mu.Unlock()

	state := s.engine.Snapshot()

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, state.Players, export.PeriodLabels(format)); err != nil {
		return nil, err
	}

	return &ExportCSVOutput{CSV: buf.String()}, nil
}

// persist pushes the current snapshot to storage. Storage trouble never
// fails the calling operation; the session carries on in memory.
func (s *service) persist(ctx context.Context) {
	s.mu.Lock()
	cfg := s.gameConfig
	rosterName := s.rosterName
	gameID := s.gameID
	s.mu.Unlock()

	state := s.engine.Snapshot()
	players := make([]models.RosterPlayer, len(state.Players))
	for i, p := range state.Players {
		players[i] = models.RosterPlayer{Name: p.Name}
	}

	err := s.snapshotRepo.SaveSnapshot(ctx, &snapshotRepo.SaveSnapshotInput{
		Snapshot: &models.Snapshot{
			GameID:        gameID,
			NumPlayers:    cfg.NumPlayers,
			OnCourt:       cfg.OnCourt,
			Format:        cfg.Format,
			PeriodMinutes: cfg.PeriodMinutes,
			RosterName:    rosterName,
			Players:       players,
			TimeoutsUsed:  s.timeouts.Used(),
			Overtimes:     s.timeouts.Overtimes(),
			OTElapsedMs:   s.overtime.ElapsedMs(),
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to persist snapshot - continuing with in-memory state")
	}
}
