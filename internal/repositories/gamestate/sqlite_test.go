package gamestate_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T, path string) *gamestate.SQLiteRepository {
	t.Helper()
	repo, err := gamestate.NewSQLiteRepository(context.Background(), &gamestate.SQLiteRepoConfig{
		Path:   path,
		GameID: "shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// Two handles on one file stand in for the bot and a CLI run
func TestSQLiteRepository_LockSpansProcesses(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "arena.db")
	bot := openSQLite(t, path)
	cli := openSQLite(t, path)

	increment := func(repo gamestate.Repository, pause time.Duration) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			currency, err := repo.GetTeamCurrency(ctx)
			if err != nil {
				return err
			}
			time.Sleep(pause)
			return repo.SetTeamCurrency(ctx, currency+1)
		}
	}

	held := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- bot.WithGameLock(ctx, func(ctx context.Context) error {
			close(held)
			return increment(bot, 100*time.Millisecond)(ctx)
		})
	}()
	<-held

	require.NoError(t, cli.WithGameLock(ctx, increment(cli, 0)))
	require.NoError(t, <-done)

	currency, err := cli.GetTeamCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, currency, "the second handle waited instead of reading a stale balance")
}

func TestSQLiteRepository_NestedStoreCallsJoinTheTransaction(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t, filepath.Join(t.TempDir(), "arena.db"))

	// a single pooled connection would deadlock if calls inside the lock
	// went to the pool instead of the open transaction
	done := make(chan error, 1)
	go func() {
		done <- repo.WithGameLock(ctx, func(ctx context.Context) error {
			if err := repo.SetKillCount(ctx, 3); err != nil {
				return err
			}
			_, err := repo.ListCharacters(ctx)
			return err
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("store call inside the lock blocked on the pool")
	}

	kills, err := repo.GetKillCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, kills)
}
