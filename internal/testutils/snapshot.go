package testutils

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/stretchr/testify/require"
)

type gameSnapshot struct {
	Characters []*entities.Character `json:"characters"`
	Creatures  []*entities.Creature  `json:"creatures"`
	Currency   int                   `json:"currency"`
	Kills      int                   `json:"kills"`
}

// Snapshot serializes the whole game so two states can be compared byte for byte
func Snapshot(t *testing.T, repo gamestate.Repository) string {
	t.Helper()
	ctx := context.Background()

	var snap gameSnapshot
	var err error
	snap.Characters, err = repo.ListCharacters(ctx)
	require.NoError(t, err)
	snap.Creatures, err = repo.ListCreatures(ctx)
	require.NoError(t, err)
	snap.Currency, err = repo.GetTeamCurrency(ctx)
	require.NoError(t, err)
	snap.Kills, err = repo.GetKillCount(ctx)
	require.NoError(t, err)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	return string(data)
}

// SeedGame fills repo with the given characters, creatures and team counters
func SeedGame(t *testing.T, repo gamestate.Repository, team entities.Team, chars []*entities.Character, creatures []*entities.Creature) {
	t.Helper()
	ctx := context.Background()

	for _, c := range chars {
		require.NoError(t, repo.CreateCharacter(ctx, c))
	}
	for _, c := range creatures {
		require.NoError(t, repo.CreateCreature(ctx, c))
	}
	require.NoError(t, repo.SetTeamCurrency(ctx, team.Currency))
	require.NoError(t, repo.SetKillCount(ctx, team.KillCount))
}
