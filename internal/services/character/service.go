package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"
	"strings"

	"github.com/KirkDiggler/arena-bot/internal/dice"
	"github.com/KirkDiggler/arena-bot/internal/domain/rulebook"
	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/KirkDiggler/arena-bot/internal/services/action"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Service defines the character service interface
type Service interface {
	// CreateCharacter rolls and stores a new team member
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// GetCharacter retrieves a character by name
	GetCharacter(ctx context.Context, name string) (*entities.Character, error)

	// ListCharacters lists the whole team
	ListCharacters(ctx context.Context) ([]*entities.Character, error)
}

// CreateCharacterInput contains all data needed to create a character
type CreateCharacterInput struct {
	Name    string
	Variety entities.Variety
}

// CreateCharacterOutput carries the outcome and, on success, the new character
type CreateCharacterOutput struct {
	Outcome   *entities.Outcome
	Character *entities.Character
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

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		runner: action.NewRunner("character", &action.RunnerConfig{
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

// CreateCharacter checks the name and variety, rolls life then strength in
// the variety's range and pays the team the creation bonus
func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, dnderr.InvalidArgument("character name is required")
	}

	var created *entities.Character
	outcome, err := s.runner.Run(ctx, "character.create", []attribute.KeyValue{
		attribute.String("arena.actor", name),
		attribute.String("arena.variety", input.Variety.String()),
	}, func(ctx context.Context, actionID string) (*entities.Outcome, error) {
		taken, err := s.repo.CharacterExists(ctx, name)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to check name %s", name)
		}
		if taken {
			return entities.Rejected(actionID, entities.ReasonNameTaken), nil
		}

		stats, ok := rulebook.StatRangeFor(input.Variety)
		if !ok {
			return entities.Rejected(actionID, entities.ReasonUnknownVariety), nil
		}

		life, err := s.oracle.UniformInt(stats.Min, stats.Max)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll life")
		}
		strength, err := s.oracle.UniformInt(stats.Min, stats.Max)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll strength")
		}

		currency, err := s.repo.GetTeamCurrency(ctx)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to get currency")
		}

		char := &entities.Character{
			Name:     name,
			Variety:  input.Variety,
			Reach:    rulebook.ReachFor(input.Variety),
			Strength: strength,
			Life:     life,
		}
		if err := s.repo.CreateCharacter(ctx, char); err != nil {
			return nil, dnderr.Wrapf(err, "failed to create character %s", name)
		}
		if err := s.repo.SetTeamCurrency(ctx, currency+rulebook.CreationBonus); err != nil {
			return nil, dnderr.Wrap(err, "failed to pay creation bonus")
		}

		created = char
		return entities.Accepted(actionID, events.Event{
			Type:         events.EventTypeCharacterCreated,
			Actor:        char.Name,
			ActorVariety: char.Variety.String(),
			Reach:        char.Reach.String(),
			Strength:     char.Strength,
			Life:         char.Life,
			Amount:       rulebook.CreationBonus,
		}), nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateCharacterOutput{Outcome: outcome, Character: created}, nil
}

func (s *service) GetCharacter(ctx context.Context, name string) (*entities.Character, error) {
	char, err := s.repo.GetCharacter(ctx, name)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get character %s", name)
	}
	return char, nil
}

func (s *service) ListCharacters(ctx context.Context) ([]*entities.Character, error) {
	chars, err := s.repo.ListCharacters(ctx)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list characters")
	}
	return chars, nil
}
