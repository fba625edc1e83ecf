package creature_test

import (
	"context"
	"testing"

	mockdice "github.com/KirkDiggler/arena-bot/internal/dice/mock"
	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/KirkDiggler/arena-bot/internal/services/creature"
	"github.com/KirkDiggler/arena-bot/internal/testutils"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CreatureServiceTestSuite struct {
	suite.Suite
	oracle   *mockdice.MockOracle
	repo     *gamestate.InMemoryRepository
	recorder *events.Recorder
	svc      creature.Service
	ctx      context.Context
}

func (s *CreatureServiceTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.oracle = mockdice.NewMockOracle(ctrl)
	s.repo = gamestate.NewInMemoryRepository()
	s.recorder = events.NewRecorder("test")
	s.ctx = context.Background()

	bus := events.NewBus(nil)
	bus.Subscribe(events.EventTypeCreatureSpawned, s.recorder)

	s.svc = creature.NewService(&creature.ServiceConfig{
		Repository:    s.repo,
		Oracle:        s.oracle,
		UUIDGenerator: uuid.NewSequenceGenerator("spawn"),
		Bus:           bus,
	})
}

func TestCreatureServiceSuite(t *testing.T) {
	suite.Run(t, new(CreatureServiceTestSuite))
}

func (s *CreatureServiceTestSuite) TestSpawn_FirstCreature() {
	gomock.InOrder(
		s.oracle.EXPECT().UniformInt(100, 999).Return(321, nil),
		s.oracle.EXPECT().UniformInt(0, 1).Return(0, nil),
		s.oracle.EXPECT().UniformInt(1, 10).Return(7, nil),
		s.oracle.EXPECT().UniformInt(1, 10).Return(3, nil),
	)

	out, err := s.svc.Spawn(s.ctx)
	s.Require().NoError(err)
	s.Require().True(out.Outcome.Success)

	want := testutils.CreateTestCreature("Python#321", entities.ReachShort, 7, 3)
	s.Equal(want, out.Creature)

	stored, err := s.repo.GetCreature(s.ctx, "Python#321")
	s.Require().NoError(err)
	s.Equal(want, stored)

	published := s.recorder.Events()
	s.Require().Len(published, 1)
	s.Equal("Python#321", published[0].Target)
	s.Equal("short", published[0].Reach)
	s.Equal("spawn-1", published[0].ActionID)
}

func (s *CreatureServiceTestSuite) TestSpawn_ScalesWithKills() {
	testutils.SeedGame(s.T(), s.repo, entities.Team{Currency: 90, KillCount: 2}, nil, nil)

	gomock.InOrder(
		s.oracle.EXPECT().UniformInt(0, 2).Return(1, nil),
		s.oracle.EXPECT().UniformInt(0, 2).Return(0, nil),
		s.oracle.EXPECT().UniformInt(100, 999).Return(777, nil),
		s.oracle.EXPECT().UniformInt(0, 1).Return(1, nil),
		s.oracle.EXPECT().UniformInt(1, 10).Return(10, nil),
		s.oracle.EXPECT().UniformInt(1, 10).Return(1, nil),
	)

	out, err := s.svc.Spawn(s.ctx)
	s.Require().NoError(err)
	s.Require().True(out.Outcome.Success)

	s.Equal("Lieju#777", out.Creature.Name)
	s.Equal(entities.ReachLong, out.Creature.Reach)
	s.Equal(30, out.Creature.Strength)
	s.Equal(3, out.Creature.Life)

	// spawning pays nothing and counts nothing
	currency, err := s.repo.GetTeamCurrency(s.ctx)
	s.Require().NoError(err)
	s.Equal(90, currency)
}

func (s *CreatureServiceTestSuite) TestSpawn_NameTaken() {
	testutils.SeedGame(s.T(), s.repo, entities.Team{}, nil,
		[]*entities.Creature{testutils.CreateTestCreature("Python#500", entities.ReachLong, 1, 1)})
	before := testutils.Snapshot(s.T(), s.repo)

	s.oracle.EXPECT().UniformInt(100, 999).Return(500, nil)
	s.oracle.EXPECT().UniformInt(0, 1).Return(0, nil)
	s.oracle.EXPECT().UniformInt(1, 10).Return(5, nil).Times(2)

	out, err := s.svc.Spawn(s.ctx)
	s.Require().NoError(err)
	s.False(out.Outcome.Success)
	s.Equal(entities.ReasonNameTaken, out.Outcome.Reason)
	s.Nil(out.Creature)
	s.Equal(before, testutils.Snapshot(s.T(), s.repo))
	s.Empty(s.recorder.Events())
}

func (s *CreatureServiceTestSuite) TestSpawn_OracleFailure() {
	s.oracle.EXPECT().UniformInt(100, 999).Return(0, dnderr.Internal("no dice"))

	out, err := s.svc.Spawn(s.ctx)
	s.Nil(out)
	s.True(dnderr.IsInternal(err))

	creatures, err := s.repo.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.Empty(creatures)
}

func (s *CreatureServiceTestSuite) TestGetAndList() {
	testutils.SeedGame(s.T(), s.repo, entities.Team{}, nil, []*entities.Creature{
		testutils.CreateTestCreature("Raiden#200", entities.ReachLong, 4, 9),
		testutils.CreateTestCreature("Python#100", entities.ReachShort, 2, 3),
	})

	got, err := s.svc.GetCreature(s.ctx, "Raiden#200")
	s.Require().NoError(err)
	s.Equal(9, got.Life)

	_, err = s.svc.GetCreature(s.ctx, "Lieju#1")
	s.True(dnderr.IsNotFound(err))

	all, err := s.svc.ListCreatures(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Python#100", all[0].Name)
}
