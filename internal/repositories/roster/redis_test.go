package roster

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/coachbox/courtclock/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) testRoster(name string) *models.Roster {
	return &models.Roster{
		Name: name,
		Players: []models.RosterPlayer{
			{Name: "Alex"},
			{Name: "Sam"},
			{Name: "Riley"},
		},
		NumPlayers: 3,
		OnCourt:    2,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetRoster() {
	err := s.repo.SaveRoster(context.Background(), &SaveRosterInput{
		Roster: s.testRoster("U12 Tigers"),
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetRoster(context.Background(), &GetRosterInput{
		Name: "U12 Tigers",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("U12 Tigers", retrieved.Name)
	s.Len(retrieved.Players, 3)
	s.Equal("Alex", retrieved.Players[0].Name)
	s.Equal(3, retrieved.NumPlayers)
	s.Equal(2, retrieved.OnCourt)
}

func (s *RedisRepositoryTestSuite) TestGetRosterNotFound() {
	_, err := s.repo.GetRoster(context.Background(), &GetRosterInput{
		Name: "missing",
	})
	s.Require().ErrorIs(err, ErrRosterNotFound)
}

func (s *RedisRepositoryTestSuite) TestListRostersSorted() {
	for _, name := range []string{"Varsity", "U12 Tigers", "JV"} {
		err := s.repo.SaveRoster(context.Background(), &SaveRosterInput{
			Roster: s.testRoster(name),
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListRosters(context.Background(), &ListRostersInput{})
	s.Require().NoError(err)
	s.Equal([]string{"JV", "U12 Tigers", "Varsity"}, out.Names)
}

func (s *RedisRepositoryTestSuite) TestListRostersEmpty() {
	out, err := s.repo.ListRosters(context.Background(), &ListRostersInput{})
	s.Require().NoError(err)
	s.Empty(out.Names)
}

func (s *RedisRepositoryTestSuite) TestDeleteRoster() {
	err := s.repo.SaveRoster(context.Background(), &SaveRosterInput{
		Roster: s.testRoster("U12 Tigers"),
	})
	s.Require().NoError(err)

	err = s.repo.DeleteRoster(context.Background(), &DeleteRosterInput{
		Name: "U12 Tigers",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetRoster(context.Background(), &GetRosterInput{
		Name: "U12 Tigers",
	})
	s.Require().ErrorIs(err, ErrRosterNotFound)

	out, err := s.repo.ListRosters(context.Background(), &ListRostersInput{})
	s.Require().NoError(err)
	s.Empty(out.Names)
}

func (s *RedisRepositoryTestSuite) TestSaveOverwritesExisting() {
	err := s.repo.SaveRoster(context.Background(), &SaveRosterInput{
		Roster: s.testRoster("U12 Tigers"),
	})
	s.Require().NoError(err)

	updated := s.testRoster("U12 Tigers")
	updated.Players[0].Name = "Jordan"
	err = s.repo.SaveRoster(context.Background(), &SaveRosterInput{
		Roster: updated,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetRoster(context.Background(), &GetRosterInput{
		Name: "U12 Tigers",
	})
	s.Require().NoError(err)
	s.Equal("Jordan", retrieved.Players[0].Name)

	// The name set holds a single entry
	out, err := s.repo.ListRosters(context.Background(), &ListRostersInput{})
	s.Require().NoError(err)
	s.Equal([]string{"U12 Tigers"}, out.Names)
}

func (s *RedisRepositoryTestSuite) TestSaveRosterValidation() {
	s.Error(s.repo.SaveRoster(context.Background(), nil))
	s.Error(s.repo.SaveRoster(context.Background(), &SaveRosterInput{}))
	s.Error(s.repo.SaveRoster(context.Background(), &SaveRosterInput{
		Roster: &models.Roster{},
	}))
}
