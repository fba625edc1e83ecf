package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/arena-bot/internal/config"
	"github.com/KirkDiggler/arena-bot/internal/entities"
)

// sqliteGame returns a config loader pointing every run at the same file
func sqliteGame(t *testing.T) func() (*config.Config, error) {
	path := filepath.Join(t.TempDir(), "arena.db")
	return func() (*config.Config, error) {
		return config.LoadCLIFrom(map[string]string{
			"SQLITE_PATH": path,
			"GAME_ID":     "cli-test",
		})
	}
}

func runCLI(t *testing.T, load func() (*config.Config, error), args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, &out, &errOut, load)
	return out.String(), err
}

func TestCLI_GameRoundTrip(t *testing.T) {
	load := sqliteGame(t)

	out, err := runCLI(t, load, "--seed", "42", "create", "Gimli", "dwarf")
	require.NoError(t, err)
	assert.Contains(t, out, "New dwarf created named Gimli with")

	out, err = runCLI(t, load, "team")
	require.NoError(t, err)
	assert.Equal(t, "Money: 50\nKills: 0\n", out)

	out, err = runCLI(t, load, "--seed", "42", "spawn")
	require.NoError(t, err)
	assert.Contains(t, out, "Added creature Python#")

	out, err = runCLI(t, load, "info", "Gimli")
	require.NoError(t, err)
	assert.Contains(t, out, "Gimli is a dwarf with")
	assert.Contains(t, out, "(short reach)")

	out, err = runCLI(t, load, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Characters (1)")
	assert.Contains(t, out, "Creatures (1)")

	out, err = runCLI(t, load, "reset")
	require.NoError(t, err)
	assert.Equal(t, "The game has been reset\n", out)

	out, err = runCLI(t, load, "list")
	require.NoError(t, err)
	assert.Equal(t, "Characters (0)\nCreatures (0)\n", out)
}

func TestCLI_SeedIsReproducible(t *testing.T) {
	first, err := runCLI(t, sqliteGame(t), "--seed", "7", "create", "Legolas", "elf")
	require.NoError(t, err)

	second, err := runCLI(t, sqliteGame(t), "--seed", "7", "create", "Legolas", "elf")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCLI_RejectionIsAnError(t *testing.T) {
	load := sqliteGame(t)

	out, err := runCLI(t, load, "attack", "ghost", "Python#100")
	require.Error(t, err)
	assert.Empty(t, out)

	var rejected *rejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, entities.ReasonActorNotFound, rejected.reason)
	assert.Equal(t, "refused: This character does not exist", err.Error())

	_, err = runCLI(t, load, "create", "Bob", "paladin")
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, entities.ReasonUnknownVariety, rejected.reason)
}

func TestCLI_ArgumentErrors(t *testing.T) {
	load := sqliteGame(t)

	_, err := runCLI(t, load, "attack", "Gimli")
	assert.Error(t, err)

	_, err = runCLI(t, load, "info", "nobody")
	assert.EqualError(t, err, "nobody named nobody is in the arena")
}

func TestCLI_ConfigErrorStopsBeforeRunning(t *testing.T) {
	for _, store := range []string{"floppy", "memory"} {
		load := func() (*config.Config, error) {
			return config.LoadCLIFrom(map[string]string{"ARENA_STORE": store})
		}

		_, err := runCLI(t, load, "team")
		assert.Error(t, err, store)
	}
}

func TestCLI_GameSurvivesBetweenRunsByDefault(t *testing.T) {
	// no ARENA_STORE, only where the file lives
	path := filepath.Join(t.TempDir(), "arena.db")
	load := func() (*config.Config, error) {
		return config.LoadCLIFrom(map[string]string{"SQLITE_PATH": path})
	}

	_, err := runCLI(t, load, "--seed", "3", "create", "Legolas", "elf")
	require.NoError(t, err)

	_, err = runCLI(t, load, "evolve", "Legolas")
	require.NoError(t, err, "the character created by the previous run must still exist")

	out, err := runCLI(t, load, "team")
	require.NoError(t, err)
	assert.Equal(t, "Money: 46\nKills: 0\n", out)
}

func TestCLI_ExportsTracesWhenEnabled(t *testing.T) {
	var exports atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exports.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer collector.Close()

	path := filepath.Join(t.TempDir(), "arena.db")
	load := func() (*config.Config, error) {
		return config.LoadCLIFrom(map[string]string{
			"SQLITE_PATH":                 path,
			"OTEL_ENABLED":                "true",
			"OTEL_EXPORTER_OTLP_ENDPOINT": collector.URL + "/v1/traces",
		})
	}

	_, err := runCLI(t, load, "--seed", "1", "spawn")
	require.NoError(t, err)

	// spans are flushed when the run closes
	assert.Positive(t, exports.Load())
}
