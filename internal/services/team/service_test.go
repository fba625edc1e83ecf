package team_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	mockgamestate "github.com/KirkDiggler/arena-bot/internal/repositories/gamestate/mock"
	"github.com/KirkDiggler/arena-bot/internal/services/team"
	"github.com/KirkDiggler/arena-bot/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStatus(t *testing.T) {
	repo := gamestate.NewInMemoryRepository()
	testutils.SeedGame(t, repo, entities.Team{Currency: 17, KillCount: 4}, nil, nil)

	svc := team.NewService(&team.ServiceConfig{Repository: repo})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entities.Team{Currency: 17, KillCount: 4}, status)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	repo := gamestate.NewInMemoryRepository()
	testutils.SeedGame(t, repo, entities.Team{Currency: 17, KillCount: 4},
		[]*entities.Character{testutils.CreateTestCharacter("Gimli", entities.VarietyDwarf, 30, 40)},
		[]*entities.Creature{testutils.CreateTestCreature("Python#100", entities.ReachShort, 2, 3)},
	)

	recorder := events.NewRecorder("test")
	bus := events.NewBus(nil)
	bus.Subscribe(events.EventTypeGameReset, recorder)

	svc := team.NewService(&team.ServiceConfig{Repository: repo, Bus: bus})

	outcome, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Len(t, recorder.Events(), 1)

	empty := gamestate.NewInMemoryRepository()
	assert.Equal(t, testutils.Snapshot(t, empty), testutils.Snapshot(t, repo))
}

func TestStatus_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockgamestate.NewMockRepository(ctrl)
	repo.EXPECT().
		WithGameLock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
	repo.EXPECT().GetTeamCurrency(gomock.Any()).Return(0, dnderr.Internal("boom"))

	svc := team.NewService(&team.ServiceConfig{Repository: repo})

	status, err := svc.Status(context.Background())
	assert.Nil(t, status)
	assert.True(t, dnderr.IsInternal(err))
}

func TestNewService_RequiresRepository(t *testing.T) {
	assert.Panics(t, func() {
		team.NewService(&team.ServiceConfig{})
	})
}

func TestStatus_WaitsForTheGameLock(t *testing.T) {
	ctx := context.Background()
	repo := gamestate.NewInMemoryRepository()
	testutils.SeedGame(t, repo, entities.Team{Currency: 10}, nil, nil)

	svc := team.NewService(&team.ServiceConfig{Repository: repo})

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- repo.WithGameLock(ctx, func(ctx context.Context) error {
			if err := repo.SetKillCount(ctx, 1); err != nil {
				return err
			}
			close(held)
			<-release
			return repo.SetTeamCurrency(ctx, 60)
		})
	}()
	<-held

	statuses := make(chan *entities.Team, 1)
	go func() {
		status, err := svc.Status(ctx)
		assert.NoError(t, err)
		statuses <- status
	}()

	select {
	case status := <-statuses:
		t.Fatalf("status read a kill in progress: %+v", status)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, &entities.Team{Currency: 60, KillCount: 1}, <-statuses)
}
