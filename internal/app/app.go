// Package app wires the configured store, logger, tracer and services for
// the binaries under cmd/.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/KirkDiggler/arena-bot/internal/config"
	"github.com/KirkDiggler/arena-bot/internal/dice"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/KirkDiggler/arena-bot/internal/services"
	"github.com/KirkDiggler/arena-bot/internal/telemetry"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewLogger builds a console logger at the configured level. An unknown
// level falls back to info.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Store is the opened game store plus whatever must be closed with it
type Store struct {
	Repository gamestate.Repository
	closers    []func() error
}

// Close releases the store's connections
func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStore connects the backend named by cfg.Store.Kind
func OpenStore(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (*Store, error) {
	switch cfg.Store.Kind {
	case config.StoreMemory, "":
		log.Info().Msg("using in-memory game store")
		return &Store{Repository: gamestate.NewInMemoryRepository()}, nil

	case config.StoreRedis:
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info().Str("addr", client.Options().Addr).Str("game_id", cfg.GameID).Msg("using redis game store")

		repo := gamestate.NewRedisRepository(&gamestate.RedisRepoConfig{
			Client:        client,
			GameID:        cfg.GameID,
			UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
			LockWait:      cfg.Store.LockWait,
		})
		return &Store{Repository: repo, closers: []func() error{client.Close}}, nil

	case config.StoreSQLite:
		repo, err := gamestate.NewSQLiteRepository(ctx, &gamestate.SQLiteRepoConfig{
			Path:   cfg.SQLite.Path,
			GameID: cfg.GameID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		log.Info().Str("path", cfg.SQLite.Path).Str("game_id", cfg.GameID).Msg("using sqlite game store")
		return &Store{Repository: repo, closers: []func() error{repo.Close}}, nil

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store.Kind)
	}
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// ProviderOptions tunes the services built by NewProvider
type ProviderOptions struct {
	// Seed makes dice and action IDs reproducible when non-zero
	Seed int64
}

// NewProvider builds the rules services over repo. Committed events are
// logged through log.
func NewProvider(cfg *config.Config, repo gamestate.Repository, log *zerolog.Logger, opts ProviderOptions) *services.Provider {
	roller := dice.NewRandomRoller()
	var uuidGen uuid.Generator = uuid.NewGoogleUUIDGenerator()
	if opts.Seed != 0 {
		roller = dice.NewSeededRoller(opts.Seed)
		uuidGen = uuid.NewSequenceGenerator("action")
	}

	bus := events.NewBus(log)
	bus.Subscribe(events.EventTypeAny, events.NewLogListener(*log))

	return services.NewProvider(&services.ProviderConfig{
		Repository:    repo,
		Oracle:        dice.NewOracle(roller),
		UUIDGenerator: uuidGen,
		Logger:        log,
		Tracer:        telemetry.TracerFor(cfg.Telemetry, "rules"),
		Bus:           bus,
	})
}
