package team

//go:generate mockgen -destination=mock/mock_service.go -package=mockteam -source=service.go

import (
	"context"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/KirkDiggler/arena-bot/internal/services/action"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Service defines the team service interface
type Service interface {
	// Status returns the team's currency and kill count
	Status(ctx context.Context) (*entities.Team, error)

	// Reset wipes the game back to an empty arena
	Reset(ctx context.Context) (*entities.Outcome, error)
}

type service struct {
	runner *action.Runner
	repo   gamestate.Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    gamestate.Repository
	UUIDGenerator uuid.Generator
	Logger        *zerolog.Logger
	Tracer        trace.Tracer
	Bus           *events.Bus
}

// NewService creates a new team service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	return &service{
		runner: action.NewRunner("team", &action.RunnerConfig{
			Repository:    cfg.Repository,
			UUIDGenerator: cfg.UUIDGenerator,
			Logger:        cfg.Logger,
			Tracer:        cfg.Tracer,
			Bus:           cfg.Bus,
		}),
		repo: cfg.Repository,
	}
}

// Status reads both counters under the game lock so a kill in progress is
// seen whole or not at all
func (s *service) Status(ctx context.Context) (*entities.Team, error) {
	var team entities.Team
	err := s.repo.WithGameLock(ctx, func(ctx context.Context) error {
		var err error
		if team.Currency, err = s.repo.GetTeamCurrency(ctx); err != nil {
			return dnderr.Wrap(err, "failed to get currency")
		}
		if team.KillCount, err = s.repo.GetKillCount(ctx); err != nil {
			return dnderr.Wrap(err, "failed to get kill count")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &team, nil
}

func (s *service) Reset(ctx context.Context) (*entities.Outcome, error) {
	return s.runner.Run(ctx, "team.reset", nil, func(ctx context.Context, actionID string) (*entities.Outcome, error) {
		if err := s.repo.Reset(ctx); err != nil {
			return nil, dnderr.Wrap(err, "failed to reset game")
		}
		return entities.Accepted(actionID, events.Event{Type: events.EventTypeGameReset}), nil
	})
}
