package character_test

import (
	"context"
	"testing"

	mockdice "github.com/KirkDiggler/arena-bot/internal/dice/mock"
	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/KirkDiggler/arena-bot/internal/services/character"
	"github.com/KirkDiggler/arena-bot/internal/testutils"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      character.Service
	repo     *gamestate.InMemoryRepository
	oracle   *mockdice.MockOracle
	recorder *events.Recorder
}

func setup(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:     gamestate.NewInMemoryRepository(),
		oracle:   mockdice.NewMockOracle(ctrl),
		recorder: events.NewRecorder("test"),
	}

	bus := events.NewBus(nil)
	bus.Subscribe(events.EventTypeAny, f.recorder)

	f.svc = character.NewService(&character.ServiceConfig{
		Repository:    f.repo,
		Oracle:        f.oracle,
		UUIDGenerator: uuid.NewSequenceGenerator("action"),
		Bus:           bus,
	})
	return f
}

func TestCreateCharacter_RollsInVarietyRange(t *testing.T) {
	tests := []struct {
		variety  entities.Variety
		min, max int
		reach    entities.Reach
	}{
		{entities.VarietyDwarf, 10, 50, entities.ReachShort},
		{entities.VarietyElf, 15, 25, entities.ReachLong},
		{entities.VarietyHealer, 5, 15, entities.ReachShort},
		{entities.VarietyWizard, 5, 15, entities.ReachLong},
		{entities.VarietyNecromancer, 5, 15, entities.ReachShort},
	}

	for _, tt := range tests {
		t.Run(tt.variety.String(), func(t *testing.T) {
			f := setup(t)
			ctx := context.Background()

			gomock.InOrder(
				f.oracle.EXPECT().UniformInt(tt.min, tt.max).Return(tt.max, nil),
				f.oracle.EXPECT().UniformInt(tt.min, tt.max).Return(tt.min, nil),
			)

			out, err := f.svc.CreateCharacter(ctx, &character.CreateCharacterInput{
				Name:    "Hero",
				Variety: tt.variety,
			})
			require.NoError(t, err)
			require.True(t, out.Outcome.Success)

			// life is rolled before strength
			assert.Equal(t, tt.max, out.Character.Life)
			assert.Equal(t, tt.min, out.Character.Strength)
			assert.Equal(t, tt.reach, out.Character.Reach)

			stored, err := f.repo.GetCharacter(ctx, "Hero")
			require.NoError(t, err)
			assert.Equal(t, out.Character, stored)

			currency, err := f.repo.GetTeamCurrency(ctx)
			require.NoError(t, err)
			assert.Equal(t, 50, currency)
		})
	}
}

func TestCreateCharacter_BonusAddsToExistingCurrency(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutils.SeedGame(t, f.repo, entities.Team{Currency: 12, KillCount: 3}, nil, nil)

	f.oracle.EXPECT().UniformInt(5, 15).Return(9, nil).Times(2)

	out, err := f.svc.CreateCharacter(ctx, &character.CreateCharacterInput{Name: "Elrond", Variety: entities.VarietyHealer})
	require.NoError(t, err)
	require.True(t, out.Outcome.Success)

	currency, err := f.repo.GetTeamCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, 62, currency)

	published := f.recorder.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTypeCharacterCreated, published[0].Type)
	assert.Equal(t, "Elrond", published[0].Actor)
	assert.Equal(t, "healer", published[0].ActorVariety)
	assert.Equal(t, "short", published[0].Reach)
	assert.Equal(t, 50, published[0].Amount)
	assert.Equal(t, "action-1", published[0].ActionID)
}

func TestCreateCharacter_NameTaken(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutils.SeedGame(t, f.repo, entities.Team{Currency: 50},
		[]*entities.Character{testutils.CreateTestCharacter("Gimli", entities.VarietyDwarf, 30, 40)}, nil)
	before := testutils.Snapshot(t, f.repo)

	// name is checked before anything is rolled, whatever the variety
	out, err := f.svc.CreateCharacter(ctx, &character.CreateCharacterInput{Name: "Gimli", Variety: entities.VarietyUnknown})
	require.NoError(t, err)
	assert.False(t, out.Outcome.Success)
	assert.Equal(t, entities.ReasonNameTaken, out.Outcome.Reason)
	assert.Nil(t, out.Character)
	assert.Equal(t, before, testutils.Snapshot(t, f.repo))
	assert.Empty(t, f.recorder.Events())
}

func TestCreateCharacter_UnknownVariety(t *testing.T) {
	f := setup(t)
	before := testutils.Snapshot(t, f.repo)

	out, err := f.svc.CreateCharacter(context.Background(), &character.CreateCharacterInput{Name: "Bob", Variety: entities.Variety(42)})
	require.NoError(t, err)
	assert.False(t, out.Outcome.Success)
	assert.Equal(t, entities.ReasonUnknownVariety, out.Outcome.Reason)
	assert.Equal(t, before, testutils.Snapshot(t, f.repo))
}

func TestCreateCharacter_InvalidInput(t *testing.T) {
	f := setup(t)

	_, err := f.svc.CreateCharacter(context.Background(), nil)
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = f.svc.CreateCharacter(context.Background(), &character.CreateCharacterInput{Name: "   ", Variety: entities.VarietyDwarf})
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestCreateCharacter_OracleFailure(t *testing.T) {
	f := setup(t)
	before := testutils.Snapshot(t, f.repo)

	f.oracle.EXPECT().UniformInt(10, 50).Return(0, dnderr.Internal("no dice"))

	out, err := f.svc.CreateCharacter(context.Background(), &character.CreateCharacterInput{Name: "Gimli", Variety: entities.VarietyDwarf})
	assert.Nil(t, out)
	assert.True(t, dnderr.IsInternal(err))
	assert.Equal(t, before, testutils.Snapshot(t, f.repo))
}

func TestGetAndListCharacters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutils.SeedGame(t, f.repo, entities.Team{}, []*entities.Character{
		testutils.CreateTestCharacter("Gimli", entities.VarietyDwarf, 30, 40),
		testutils.CreateTestCharacter("Legolas", entities.VarietyElf, 20, 20),
	}, nil)

	gimli, err := f.svc.GetCharacter(ctx, "Gimli")
	require.NoError(t, err)
	assert.Equal(t, 30, gimli.Strength)

	_, err = f.svc.GetCharacter(ctx, "ghost")
	assert.True(t, dnderr.IsNotFound(err))

	all, err := f.svc.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
