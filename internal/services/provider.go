package services

import (
	"github.com/KirkDiggler/arena-bot/internal/dice"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	characterService "github.com/KirkDiggler/arena-bot/internal/services/character"
	combatService "github.com/KirkDiggler/arena-bot/internal/services/combat"
	creatureService "github.com/KirkDiggler/arena-bot/internal/services/creature"
	teamService "github.com/KirkDiggler/arena-bot/internal/services/team"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	CreatureService  creatureService.Service
	CombatService    combatService.Service
	TeamService      teamService.Service
	Bus              *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Repository    gamestate.Repository
	Oracle        dice.Oracle
	UUIDGenerator uuid.Generator
	Logger        *zerolog.Logger
	Tracer        trace.Tracer
	Bus           *events.Bus
}

// NewProvider creates a new service provider with all services sharing one
// store, oracle and event bus
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	repo := cfg.Repository
	if repo == nil {
		repo = gamestate.NewInMemoryRepository()
	}

	oracle := cfg.Oracle
	if oracle == nil {
		oracle = dice.NewOracle(dice.NewRandomRoller())
	}

	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus(cfg.Logger)
	}

	return &Provider{
		CharacterService: characterService.NewService(&characterService.ServiceConfig{
			Repository:    repo,
			Oracle:        oracle,
			UUIDGenerator: cfg.UUIDGenerator,
			Logger:        cfg.Logger,
			Tracer:        cfg.Tracer,
			Bus:           bus,
		}),
		CreatureService: creatureService.NewService(&creatureService.ServiceConfig{
			Repository:    repo,
			Oracle:        oracle,
			UUIDGenerator: cfg.UUIDGenerator,
			Logger:        cfg.Logger,
			Tracer:        cfg.Tracer,
			Bus:           bus,
		}),
		CombatService: combatService.NewService(&combatService.ServiceConfig{
			Repository:    repo,
			Oracle:        oracle,
			UUIDGenerator: cfg.UUIDGenerator,
			Logger:        cfg.Logger,
			Tracer:        cfg.Tracer,
			Bus:           bus,
		}),
		TeamService: teamService.NewService(&teamService.ServiceConfig{
			Repository:    repo,
			UUIDGenerator: cfg.UUIDGenerator,
			Logger:        cfg.Logger,
			Tracer:        cfg.Tracer,
			Bus:           bus,
		}),
		Bus: bus,
	}
}
