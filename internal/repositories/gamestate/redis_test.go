package gamestate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	mockuuid "github.com/KirkDiggler/arena-bot/internal/uuid/mocks"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	mockCtrl   *gomock.Controller
	uuidGen    *mockuuid.MockGenerator
	repo       Repository
	ctx        context.Context
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.uuidGen = mockuuid.NewMockGenerator(s.mockCtrl)
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:        s.mockClient,
		GameID:        "g1",
		UUIDGenerator: s.uuidGen,
		LockTTL:       time.Second,
		LockWait:      50 * time.Millisecond,
	})
	s.ctx = context.Background()
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) TestCreateCharacter() {
	char := &entities.Character{
		Name:     "Gimli",
		Variety:  entities.VarietyDwarf,
		Reach:    entities.ReachShort,
		Strength: 30,
		Life:     42,
	}
	data, err := json.Marshal(char)
	s.Require().NoError(err)

	s.mock.ExpectSetNX("arena:g1:character:Gimli", string(data), 0).SetVal(true)
	s.mock.ExpectSAdd("arena:g1:characters", "Gimli").SetVal(1)

	s.NoError(s.repo.CreateCharacter(s.ctx, char))
}

func (s *RedisRepoTestSuite) TestCreateCharacter_AlreadyExists() {
	char := &entities.Character{Name: "Gimli", Variety: entities.VarietyDwarf, Reach: entities.ReachShort, Strength: 1, Life: 1}
	data, err := json.Marshal(char)
	s.Require().NoError(err)

	s.mock.ExpectSetNX("arena:g1:character:Gimli", string(data), 0).SetVal(false)

	err = s.repo.CreateCharacter(s.ctx, char)
	s.True(dnderr.IsAlreadyExists(err))
}

func (s *RedisRepoTestSuite) TestCreateCreature_RedisError() {
	creature := &entities.Creature{Name: "Python#101", Reach: entities.ReachLong, Strength: 2, Life: 3}
	data, err := json.Marshal(creature)
	s.Require().NoError(err)

	s.mock.ExpectSetNX("arena:g1:creature:Python#101", string(data), 0).SetErr(errors.New("redis down"))

	err = s.repo.CreateCreature(s.ctx, creature)
	s.Error(err)
	s.False(dnderr.IsAlreadyExists(err))
}

func (s *RedisRepoTestSuite) TestCreateRejectsNegativeWithoutCallingRedis() {
	err := s.repo.CreateCreature(s.ctx, &entities.Creature{Name: "Bad", Reach: entities.ReachShort, Life: -2})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestGetCharacter() {
	s.mock.ExpectGet("arena:g1:character:Legolas").
		SetVal(`{"name":"Legolas","variety":"elf","reach":"long","strength":20,"life":18}`)

	char, err := s.repo.GetCharacter(s.ctx, "Legolas")
	s.Require().NoError(err)
	s.Equal(entities.VarietyElf, char.Variety)
	s.Equal(entities.ReachLong, char.Reach)
	s.Equal(18, char.Life)

	s.mock.ExpectGet("arena:g1:character:ghost").RedisNil()
	_, err = s.repo.GetCharacter(s.ctx, "ghost")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestSetCreatureField() {
	s.mock.ExpectGet("arena:g1:creature:Lieju#500").
		SetVal(`{"name":"Lieju#500","reach":"short","strength":4,"life":9}`)
	s.mock.ExpectSet("arena:g1:creature:Lieju#500",
		`{"name":"Lieju#500","reach":"short","strength":4,"life":5}`, 0).SetVal("OK")

	s.NoError(s.repo.SetCreatureField(s.ctx, "Lieju#500", entities.FieldLife, 5))
}

func (s *RedisRepoTestSuite) TestRemoveCreature() {
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("arena:g1:creature:Raiden#300").SetVal(1)
	s.mock.ExpectSRem("arena:g1:creatures", "Raiden#300").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.RemoveCreature(s.ctx, "Raiden#300"))
}

func (s *RedisRepoTestSuite) TestTeamFields() {
	s.mock.ExpectHGet("arena:g1:team", "currency").RedisNil()
	currency, err := s.repo.GetTeamCurrency(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, currency)

	s.mock.ExpectHSet("arena:g1:team", "kills", 2).SetVal(1)
	s.NoError(s.repo.SetKillCount(s.ctx, 2))

	s.mock.ExpectHGet("arena:g1:team", "kills").SetVal("2")
	kills, err := s.repo.GetKillCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, kills)

	s.True(dnderr.IsInvalidArgument(s.repo.SetTeamCurrency(s.ctx, -1)))
}

func (s *RedisRepoTestSuite) TestWithGameLock() {
	s.uuidGen.EXPECT().New().Return("token-1")
	s.mock.ExpectSetNX("arena:g1:lock", "token-1", time.Second).SetVal(true)
	s.mock.ExpectSMembers("arena:g1:characters").SetVal([]string{})
	s.mock.ExpectSMembers("arena:g1:creatures").SetVal([]string{})
	s.mock.ExpectHGetAll("arena:g1:team").SetVal(map[string]string{})
	s.mock.ExpectEvalSha(releaseScript.Hash(), []string{"arena:g1:lock"}, "token-1").SetVal(int64(1))

	ran := false
	err := s.repo.WithGameLock(s.ctx, func(ctx context.Context) error {
		ran = true
		return nil
	})
	s.NoError(err)
	s.True(ran)
}

func (s *RedisRepoTestSuite) expectLoadedGame(token string) {
	s.uuidGen.EXPECT().New().Return(token)
	s.mock.ExpectSetNX("arena:g1:lock", token, time.Second).SetVal(true)
	s.mock.ExpectSMembers("arena:g1:characters").SetVal([]string{"Gimli"})
	s.mock.ExpectGet("arena:g1:character:Gimli").
		SetVal(`{"name":"Gimli","variety":"dwarf","reach":"short","strength":30,"life":42}`)
	s.mock.ExpectSMembers("arena:g1:creatures").SetVal([]string{"Python#100"})
	s.mock.ExpectGet("arena:g1:creature:Python#100").
		SetVal(`{"name":"Python#100","reach":"short","strength":3,"life":5}`)
	s.mock.ExpectHGetAll("arena:g1:team").SetVal(map[string]string{"currency": "10", "kills": "0"})
}

func (s *RedisRepoTestSuite) TestWithGameLock_CommitsChangesInOneTransaction() {
	s.expectLoadedGame("token-3")
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("arena:g1:character:Gimli",
		`{"name":"Gimli","variety":"dwarf","reach":"short","strength":30,"life":39}`, 0).SetVal("OK")
	s.mock.ExpectDel("arena:g1:creature:Python#100").SetVal(1)
	s.mock.ExpectSRem("arena:g1:creatures", "Python#100").SetVal(1)
	s.mock.ExpectHSet("arena:g1:team", "currency", 60, "kills", 1).SetVal(0)
	s.mock.ExpectTxPipelineExec()
	s.mock.ExpectEvalSha(releaseScript.Hash(), []string{"arena:g1:lock"}, "token-3").SetVal(int64(1))

	err := s.repo.WithGameLock(s.ctx, func(ctx context.Context) error {
		if err := s.repo.SetCharacterField(ctx, "Gimli", entities.FieldLife, 39); err != nil {
			return err
		}
		if err := s.repo.SetKillCount(ctx, 1); err != nil {
			return err
		}
		if err := s.repo.SetTeamCurrency(ctx, 60); err != nil {
			return err
		}
		// reads inside the lock see the pending writes
		kills, err := s.repo.GetKillCount(ctx)
		s.Equal(1, kills)
		if err != nil {
			return err
		}
		return s.repo.RemoveCreature(ctx, "Python#100")
	})
	s.NoError(err)
}

func (s *RedisRepoTestSuite) TestWithGameLock_FailureWritesNothing() {
	s.expectLoadedGame("token-4")
	s.mock.ExpectEvalSha(releaseScript.Hash(), []string{"arena:g1:lock"}, "token-4").SetVal(int64(1))

	err := s.repo.WithGameLock(s.ctx, func(ctx context.Context) error {
		if err := s.repo.SetKillCount(ctx, 1); err != nil {
			return err
		}
		return s.repo.SetTeamCurrency(ctx, -1)
	})
	s.True(dnderr.IsInvalidArgument(err), "got %v", err)
}

func (s *RedisRepoTestSuite) TestWithGameLock_Busy() {
	s.uuidGen.EXPECT().New().Return("token-2")
	s.mock.MatchExpectationsInOrder(false)
	for i := 0; i < 10; i++ {
		s.mock.ExpectSetNX("arena:g1:lock", "token-2", time.Second).SetVal(false)
	}

	err := s.repo.WithGameLock(s.ctx, func(ctx context.Context) error {
		s.Fail("must not run without the lock")
		return nil
	})
	s.True(dnderr.IsConflict(err), "got %v", err)

	// polling stops at the deadline, so not every scripted reply is used
	s.mock.ClearExpect()
}
