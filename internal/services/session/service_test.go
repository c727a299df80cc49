package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/coachbox/courtclock/internal/engine"
	"github.com/coachbox/courtclock/internal/models"
	rosterRepo "github.com/coachbox/courtclock/internal/repositories/roster"
	rosterMocks "github.com/coachbox/courtclock/internal/repositories/roster/mocks"
	snapshotRepo "github.com/coachbox/courtclock/internal/repositories/snapshot"
	snapshotMocks "github.com/coachbox/courtclock/internal/repositories/snapshot/mocks"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockSnapshotRepo *snapshotMocks.MockRepository
	mockRosterRepo   *rosterMocks.MockRepository
	clock            *clockwork.FakeClock
	ctx              context.Context

	// saved collects every snapshot the service persisted during a test
	saved []*models.Snapshot
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSnapshotRepo = snapshotMocks.NewMockRepository(s.mockCtrl)
	s.mockRosterRepo = rosterMocks.NewMockRepository(s.mockCtrl)
	s.clock = clockwork.NewFakeClock()
	s.ctx = context.Background()
	s.saved = nil

	s.mockSnapshotRepo.EXPECT().
		SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *snapshotRepo.SaveSnapshotInput) error {
			s.saved = append(s.saved, input.Snapshot)
			return nil
		}).
		AnyTimes()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

// newService builds a service seeded from the given stored snapshot (nil
// means nothing stored)
func (s *SessionServiceTestSuite) newService(stored *models.Snapshot, opts ...func(*Config)) *service {
	if stored == nil {
		s.mockSnapshotRepo.EXPECT().
			GetSnapshot(gomock.Any(), gomock.Any()).
			Return(nil, snapshotRepo.ErrSnapshotNotFound)
	} else {
		s.mockSnapshotRepo.EXPECT().
			GetSnapshot(gomock.Any(), gomock.Any()).
			Return(stored, nil)
	}

	cfg := &Config{
		SnapshotRepo: s.mockSnapshotRepo,
		RosterRepo:   s.mockRosterRepo,
		Clock:        s.clock,
		PollInterval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	svc, err := New(s.ctx, cfg)
	s.Require().NoError(err)
	return svc
}

func (s *SessionServiceTestSuite) lastSaved() *models.Snapshot {
	s.Require().NotEmpty(s.saved, "expected at least one persisted snapshot")
	return s.saved[len(s.saved)-1]
}

func (s *SessionServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(s.ctx, nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(s.ctx, &Config{RosterRepo: s.mockRosterRepo})
	s.ErrorIs(err, ErrNilSnapshotRepo)

	_, err = New(s.ctx, &Config{SnapshotRepo: s.mockSnapshotRepo})
	s.ErrorIs(err, ErrNilRosterRepo)
}

func (s *SessionServiceTestSuite) TestDefaultsWhenNothingStored() {
	svc := s.newService(nil)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)

	s.Equal(10, state.Config.NumPlayers)
	s.Equal(5, state.Config.OnCourt)
	s.Equal(models.FormatQuarters, state.Config.Format)
	s.Equal(8, state.Config.PeriodMinutes)
	s.Equal(engine.StateIdle, state.State)
	s.Len(state.Players, 10)
	s.Equal(0, state.TimeoutsUsed)
	s.Equal(4, state.TimeoutCap)
	s.Equal(int64(0), state.GameElapsedMs)
	s.Equal("00:00", state.GameClock)
	s.NotEmpty(state.GameID, "a fresh session gets a generated game ID")
}

func (s *SessionServiceTestSuite) TestSeedsFromStoredSnapshot() {
	svc := s.newService(&models.Snapshot{
		GameID:        "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		NumPlayers:    7,
		OnCourt:       3,
		Format:        models.FormatHalves,
		PeriodMinutes: 6,
		RosterName:    "U12 Tigers",
		Players:       []models.RosterPlayer{{Name: "Alex"}, {Name: "Sam"}},
		TimeoutsUsed:  2,
		Overtimes:     1,
		OTElapsedMs:   60_000,
	})

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)

	s.Equal("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", state.GameID)
	s.Equal(7, state.Config.NumPlayers)
	s.Equal(3, state.Config.OnCourt)
	s.Equal(models.FormatHalves, state.Config.Format)
	s.Equal(6, state.Config.PeriodMinutes)
	s.Equal("U12 Tigers", state.RosterName)
	s.Equal("Alex", state.Players[0].Name)
	s.Equal("Sam", state.Players[1].Name)
	s.Equal(2, state.TimeoutsUsed)
	s.Equal(5, state.TimeoutCap, "granted overtime raises the cap")
	s.Equal(int64(60_000), state.OvertimeElapsedMs)

	// Stored data never seeds game progress
	s.Equal(int64(0), state.GameElapsedMs)
	s.Equal(0, state.CurrentPeriod)
	for _, p := range state.Players {
		s.Equal(int64(0), p.TotalMs)
	}
}

func (s *SessionServiceTestSuite) TestStorageErrorFailsSoft() {
	s.mockSnapshotRepo.EXPECT().
		GetSnapshot(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis down"))

	svc, err := New(s.ctx, &Config{
		SnapshotRepo: s.mockSnapshotRepo,
		RosterRepo:   s.mockRosterRepo,
		Clock:        s.clock,
	})
	s.Require().NoError(err, "storage trouble must not prevent startup")

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal(10, state.Config.NumPlayers)
}

func (s *SessionServiceTestSuite) TestConfigureClampsAndPersists() {
	svc := s.newService(nil)

	out, err := svc.Configure(s.ctx, &ConfigureInput{
		NumPlayers: 4,
		OnCourt:    9,
	})
	s.Require().NoError(err)

	s.Equal(4, out.Config.NumPlayers)
	s.Equal(4, out.Config.OnCourt, "on-court clamps down to the roster size")

	saved := s.lastSaved()
	s.Equal(4, saved.NumPlayers)
	s.Equal(4, saved.OnCourt)
	s.Len(saved.Players, 4)
}

func (s *SessionServiceTestSuite) TestConfigureKeepsUnsetFields() {
	svc := s.newService(nil)

	out, err := svc.Configure(s.ctx, &ConfigureInput{Format: models.FormatHalves})
	s.Require().NoError(err)

	s.Equal(models.FormatHalves, out.Config.Format)
	s.Equal(10, out.Config.NumPlayers)
	s.Equal(8, out.Config.PeriodMinutes)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Len(state.PeriodElapsedMs, 2)
}

func (s *SessionServiceTestSuite) TestToggleActiveCapacityNotice() {
	svc := s.newService(nil)

	// The first five players start active; a sixth activation is rejected
	// with a notice and no flag changes
	out, err := svc.ToggleActive(s.ctx, &ToggleActiveInput{Index: 5})
	s.Require().NoError(err)
	s.False(out.Active)
	s.NotEmpty(out.Notice)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	for i, p := range state.Players {
		s.Equal(i < 5, p.Active)
	}
}

func (s *SessionServiceTestSuite) TestToggleActiveSilentPolicy() {
	svc := s.newService(nil, func(cfg *Config) {
		cfg.CapacityPolicy = CapacityPolicySilent
	})

	out, err := svc.ToggleActive(s.ctx, &ToggleActiveInput{Index: 5})
	s.Require().NoError(err)
	s.False(out.Active)
	s.Empty(out.Notice)
}

func (s *SessionServiceTestSuite) TestToggleActiveSubstitution() {
	svc := s.newService(nil)

	out, err := svc.ToggleActive(s.ctx, &ToggleActiveInput{Index: 0})
	s.Require().NoError(err)
	s.False(out.Active)

	out, err = svc.ToggleActive(s.ctx, &ToggleActiveInput{Index: 5})
	s.Require().NoError(err)
	s.True(out.Active)
	s.Empty(out.Notice)
}

func (s *SessionServiceTestSuite) TestRenamePlayerPersists() {
	svc := s.newService(nil)

	_, err := svc.RenamePlayer(s.ctx, &RenamePlayerInput{Index: 2, Name: "Riley"})
	s.Require().NoError(err)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal("Riley", state.Players[2].Name)

	s.Equal("Riley", s.lastSaved().Players[2].Name)
}

func (s *SessionServiceTestSuite) TestTimeoutFlow() {
	svc := s.newService(nil)

	for i := 0; i < 6; i++ {
		_, err := svc.UseTimeout(s.ctx, &UseTimeoutInput{})
		s.Require().NoError(err)
	}

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal(4, state.TimeoutsUsed, "used clamps at the cap")

	undo, err := svc.UndoTimeout(s.ctx, &UndoTimeoutInput{})
	s.Require().NoError(err)
	s.Equal(3, undo.Used)

	ot, err := svc.AddOvertime(s.ctx, &AddOvertimeInput{})
	s.Require().NoError(err)
	s.Equal(1, ot.Overtimes)
	s.Equal(5, ot.Cap)

	s.Equal(3, s.lastSaved().TimeoutsUsed)
	s.Equal(1, s.lastSaved().Overtimes)
}

func (s *SessionServiceTestSuite) TestSaveRoster() {
	svc := s.newService(nil)

	_, err := svc.RenamePlayer(s.ctx, &RenamePlayerInput{Index: 0, Name: "Alex"})
	s.Require().NoError(err)

	var savedRoster *models.Roster
	s.mockRosterRepo.EXPECT().
		SaveRoster(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *rosterRepo.SaveRosterInput) error {
			savedRoster = input.Roster
			return nil
		})

	_, err = svc.SaveRoster(s.ctx, &SaveRosterInput{Name: "U12 Tigers"})
	s.Require().NoError(err)

	s.Require().NotNil(savedRoster)
	s.Equal("U12 Tigers", savedRoster.Name)
	s.Equal(10, savedRoster.NumPlayers)
	s.Equal(5, savedRoster.OnCourt)
	s.Len(savedRoster.Players, 10)
	s.Equal("Alex", savedRoster.Players[0].Name)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal("U12 Tigers", state.RosterName)
}

func (s *SessionServiceTestSuite) TestSaveRosterRequiresName() {
	svc := s.newService(nil)

	_, err := svc.SaveRoster(s.ctx, &SaveRosterInput{})
	s.ErrorIs(err, ErrRosterNameMissing)
}

func (s *SessionServiceTestSuite) TestLoadRosterAppliesAndResets() {
	svc := s.newService(nil)

	s.mockRosterRepo.EXPECT().
		GetRoster(gomock.Any(), gomock.Any()).
		Return(&models.Roster{
			Name:       "JV",
			Players:    []models.RosterPlayer{{Name: "Alex"}, {Name: "Sam"}, {Name: "Riley"}},
			NumPlayers: 3,
			OnCourt:    2,
		}, nil)

	out, err := svc.LoadRoster(s.ctx, &LoadRosterInput{Name: "JV"})
	s.Require().NoError(err)
	s.Equal(3, out.Config.NumPlayers)
	s.Equal(2, out.Config.OnCourt)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal("JV", state.RosterName)
	s.Len(state.Players, 3)
	s.Equal("Alex", state.Players[0].Name)
	s.Equal(int64(0), state.GameElapsedMs)
	s.Equal(0, state.CurrentPeriod)
}

func (s *SessionServiceTestSuite) TestLoadRosterNotFound() {
	svc := s.newService(nil)

	s.mockRosterRepo.EXPECT().
		GetRoster(gomock.Any(), gomock.Any()).
		Return(nil, rosterRepo.ErrRosterNotFound)

	_, err := svc.LoadRoster(s.ctx, &LoadRosterInput{Name: "missing"})
	s.ErrorIs(err, rosterRepo.ErrRosterNotFound)
}

func (s *SessionServiceTestSuite) TestDeleteRosterClearsCurrentName() {
	svc := s.newService(&models.Snapshot{
		NumPlayers:    10,
		OnCourt:       5,
		Format:        models.FormatQuarters,
		PeriodMinutes: 8,
		RosterName:    "U12 Tigers",
	})

	s.mockRosterRepo.EXPECT().
		DeleteRoster(gomock.Any(), gomock.Any()).
		Return(nil)

	_, err := svc.DeleteRoster(s.ctx, &DeleteRosterInput{Name: "U12 Tigers"})
	s.Require().NoError(err)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Empty(state.RosterName)
}

func (s *SessionServiceTestSuite) TestListRosters() {
	svc := s.newService(nil)

	s.mockRosterRepo.EXPECT().
		ListRosters(gomock.Any(), gomock.Any()).
		Return(&rosterRepo.ListRostersOutput{Names: []string{"JV", "Varsity"}}, nil)

	out, err := svc.ListRosters(s.ctx, &ListRostersInput{})
	s.Require().NoError(err)
	s.Equal([]string{"JV", "Varsity"}, out.Names)
}

func (s *SessionServiceTestSuite) TestExportCSV() {
	svc := s.newService(nil)

	out, err := svc.ExportCSV(s.ctx, &ExportCSVInput{})
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(out.CSV), "\n")
	s.Require().Len(lines, 11, "header plus ten players")
	s.Equal("Player,Total,Q1,Q2,Q3,Q4", lines[0])
	s.Contains(lines[1], "00:00")
}

func (s *SessionServiceTestSuite) TestFairnessMetricsInState() {
	svc := s.newService(nil)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)

	// 4 quarters of 8 minutes, 5 of 10 on court: 16:00 full-game goal
	s.Equal(int64(960_000), state.Metrics.GoalPerPlayerMs)
	s.Equal(int64(0), state.Metrics.IdealMsSoFar)

	// Nobody has played, so everyone sits exactly at the ideal baseline
	for _, p := range state.Players {
		s.Equal(int64(0), p.DeltaMs)
	}
}

func (s *SessionServiceTestSuite) TestFullPeriodThroughTheClock() {
	svc := s.newService(nil)

	_, err := svc.StartClock(s.ctx, &StartClockInput{})
	s.Require().NoError(err)

	// Let the tick loop's ticker register, then jump past the period end;
	// the clamp applies exactly the remaining time and auto-pauses
	s.clock.BlockUntil(1)
	s.clock.Advance(10 * time.Minute)

	s.Require().Eventually(func() bool {
		state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
		s.Require().NoError(err)
		return state.State == engine.StateIdle && state.GameElapsedMs == 480_000
	}, time.Second, 2*time.Millisecond)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)

	s.Equal("08:00", state.PeriodClock)
	s.Equal(int64(240_000), state.Metrics.IdealMsSoFar)
	for i, p := range state.Players {
		if i < 5 {
			s.Equal(int64(480_000), p.TotalMs)
			s.Equal("08:00", p.Total)
			s.Equal(int64(240_000), p.DeltaMs)
		} else {
			s.Equal(int64(0), p.TotalMs)
			s.Equal(int64(-240_000), p.DeltaMs)
		}
	}
}

func (s *SessionServiceTestSuite) TestResetGameLeavesOvertimeUnlessChained() {
	svc := s.newService(&models.Snapshot{
		NumPlayers:    10,
		OnCourt:       5,
		Format:        models.FormatQuarters,
		PeriodMinutes: 8,
		OTElapsedMs:   90_000,
		TimeoutsUsed:  2,
	})

	_, err := svc.ResetGame(s.ctx, &ResetGameInput{})
	s.Require().NoError(err)

	state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal(int64(90_000), state.OvertimeElapsedMs, "plain reset leaves the overtime clock alone")
	s.Equal(2, state.TimeoutsUsed)

	_, err = svc.ResetGame(s.ctx, &ResetGameInput{ResetOvertime: true, ResetTimeouts: true})
	s.Require().NoError(err)

	state, err = svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal(int64(0), state.OvertimeElapsedMs)
	s.Equal(0, state.TimeoutsUsed)
}

func (s *SessionServiceTestSuite) TestResetMintsNewGameID() {
	svc := s.newService(nil)

	before, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)

	out, err := svc.ResetGame(s.ctx, &ResetGameInput{})
	s.Require().NoError(err)
	s.NotEmpty(out.GameID)
	s.NotEqual(before.GameID, out.GameID)

	s.Equal(out.GameID, s.lastSaved().GameID)
}

func (s *SessionServiceTestSuite) TestOvertimeClockLifecycle() {
	svc := s.newService(nil)

	_, err := svc.StartOvertime(s.ctx, &StartOvertimeInput{})
	s.Require().NoError(err)

	s.clock.BlockUntil(1)
	s.clock.Advance(30 * time.Second)

	s.Require().Eventually(func() bool {
		state, err := svc.GetGameState(s.ctx, &GetGameStateInput{})
		s.Require().NoError(err)
		return state.OvertimeElapsedMs == 30_000
	}, time.Second, 2*time.Millisecond)

	out, err := svc.PauseOvertime(s.ctx, &PauseOvertimeInput{})
	s.Require().NoError(err)
	s.Equal(int64(30_000), out.ElapsedMs)
	s.Equal(int64(30_000), s.lastSaved().OTElapsedMs)

	_, err = svc.ResetOvertime(s.ctx, &ResetOvertimeInput{})
	s.Require().NoError(err)
	s.Equal(int64(0), s.lastSaved().OTElapsedMs)
}
