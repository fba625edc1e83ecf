package creature

//go:generate mockgen -destination=mock/mock_service.go -package=mockcreature -source=service.go

import (
	"context"

	"github.com/KirkDiggler/arena-bot/internal/dice"
	"github.com/KirkDiggler/arena-bot/internal/domain/rulebook"
	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/KirkDiggler/arena-bot/internal/services/action"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Service defines the creature service interface
type Service interface {
	// Spawn rolls a new creature scaled by the team's kills
	Spawn(ctx context.Context) (*SpawnOutput, error)

	// GetCreature retrieves a creature by name
	GetCreature(ctx context.Context, name string) (*entities.Creature, error)

	// ListCreatures lists the creatures still alive
	ListCreatures(ctx context.Context) ([]*entities.Creature, error)
}

// SpawnOutput carries the outcome and, on success, the new creature
type SpawnOutput struct {
	Outcome  *entities.Outcome
	Creature *entities.Creature
}

type service struct {
	runner *action.Runner
	repo   gamestate.Repository
	oracle dice.Oracle
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    gamestate.Repository
	Oracle        dice.Oracle
	UUIDGenerator uuid.Generator
	Logger        *zerolog.Logger
	Tracer        trace.Tracer
	Bus           *events.Bus
}

// NewService creates a new creature service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		runner: action.NewRunner("creature", &action.RunnerConfig{
			Repository:    cfg.Repository,
			UUIDGenerator: cfg.UUIDGenerator,
			Logger:        cfg.Logger,
			Tracer:        cfg.Tracer,
			Bus:           cfg.Bus,
		}),
		repo:   cfg.Repository,
		oracle: cfg.Oracle,
	}
	if svc.oracle == nil {
		svc.oracle = dice.NewOracle(dice.NewRandomRoller())
	}

	return svc
}

// Spawn rolls name, reach, strength and life in that order. A name already
// in use is reported, not retried.
func (s *service) Spawn(ctx context.Context) (*SpawnOutput, error) {
	var spawned *entities.Creature
	outcome, err := s.runner.Run(ctx, "creature.spawn", nil, func(ctx context.Context, actionID string) (*entities.Outcome, error) {
		kills, err := s.repo.GetKillCount(ctx)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to get kill count")
		}

		name, err := RollName(s.oracle, kills)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll creature name")
		}

		reachRoll, err := s.oracle.UniformInt(0, 1)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll reach")
		}
		reach := entities.ReachShort
		if reachRoll == 1 {
			reach = entities.ReachLong
		}

		scale := rulebook.CreatureScale(kills)
		strength, err := s.oracle.UniformInt(rulebook.CreatureStatMin, rulebook.CreatureStatMax)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll strength")
		}
		life, err := s.oracle.UniformInt(rulebook.CreatureStatMin, rulebook.CreatureStatMax)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll life")
		}

		taken, err := s.repo.CreatureExists(ctx, name)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to check name %s", name)
		}
		if taken {
			return entities.Rejected(actionID, entities.ReasonNameTaken), nil
		}

		creature := &entities.Creature{
			Name:     name,
			Reach:    reach,
			Strength: strength * scale,
			Life:     life * scale,
		}
		if err := s.repo.CreateCreature(ctx, creature); err != nil {
			return nil, dnderr.Wrapf(err, "failed to create creature %s", name)
		}

		spawned = creature
		return entities.Accepted(actionID, events.Event{
			Type:     events.EventTypeCreatureSpawned,
			Target:   creature.Name,
			Reach:    creature.Reach.String(),
			Strength: creature.Strength,
			Life:     creature.Life,
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &SpawnOutput{Outcome: outcome, Creature: spawned}, nil
}

func (s *service) GetCreature(ctx context.Context, name string) (*entities.Creature, error) {
	creature, err := s.repo.GetCreature(ctx, name)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get creature %s", name)
	}
	return creature, nil
}

func (s *service) ListCreatures(ctx context.Context) ([]*entities.Creature, error) {
	creatures, err := s.repo.ListCreatures(ctx)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list creatures")
	}
	return creatures, nil
}
