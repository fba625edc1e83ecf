// Package action runs a single game operation: it stamps an action ID, opens
// a span, holds the game lock around the read-modify-write, and publishes the
// outcome's events once the lock is released.
package action

import (
	"context"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/events"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate"
	"github.com/KirkDiggler/arena-bot/internal/telemetry"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Func performs the rules of one operation while the game lock is held
type Func func(ctx context.Context, actionID string) (*entities.Outcome, error)

// RunnerConfig holds the collaborators shared by every rules service
type RunnerConfig struct {
	Repository    gamestate.Repository
	UUIDGenerator uuid.Generator
	Logger        *zerolog.Logger
	Tracer        trace.Tracer
	Bus           *events.Bus
}

// Runner wraps operations with locking, tracing, logging and publishing
type Runner struct {
	repo    gamestate.Repository
	uuidGen uuid.Generator
	log     zerolog.Logger
	tracer  trace.Tracer
	bus     *events.Bus
}

// NewRunner creates a runner. Only the repository is required.
func NewRunner(component string, cfg *RunnerConfig) *Runner {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}

	r := &Runner{
		repo:    cfg.Repository,
		uuidGen: cfg.UUIDGenerator,
		log:     zerolog.Nop(),
		tracer:  cfg.Tracer,
		bus:     cfg.Bus,
	}
	if r.uuidGen == nil {
		r.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	if cfg.Logger != nil {
		r.log = cfg.Logger.With().Str("component", component).Logger()
	}
	if r.tracer == nil {
		r.tracer = telemetry.NoopTracer()
	}

	return r
}

// Repository returns the store the runner locks
func (r *Runner) Repository() gamestate.Repository {
	return r.repo
}

// Logger returns the component logger
func (r *Runner) Logger() *zerolog.Logger {
	return &r.log
}

// Run executes fn as operation name. Domain refusals come back as a rejected
// outcome with a nil error; store faults come back as an error.
func (r *Runner) Run(ctx context.Context, name string, attrs []attribute.KeyValue, fn Func) (*entities.Outcome, error) {
	actionID := r.uuidGen.New()

	ctx, span := r.tracer.Start(ctx, name, trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String("arena.action_id", actionID)}, attrs...)...,
	))
	defer span.End()

	log := r.log.With().Str("action", name).Str("action_id", actionID).Logger()

	var outcome *entities.Outcome
	err := r.repo.WithGameLock(ctx, func(ctx context.Context) error {
		var err error
		outcome, err = fn(ctx, actionID)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error().Err(err).
			Str("code", string(dnderr.GetCode(err))).
			Fields(dnderr.GetMeta(err)).
			Msg("operation failed")
		return nil, dnderr.Wrapf(err, "%s failed", name).WithMeta(dnderr.MetaAction, actionID)
	}
	if outcome == nil {
		err := dnderr.Internalf("%s produced no outcome", name)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("arena.success", outcome.Success),
		attribute.String("arena.reason", string(outcome.Reason)),
		attribute.Int("arena.events", len(outcome.Events)),
	)

	if !outcome.Success {
		log.Info().Str("reason", string(outcome.Reason)).Msg("operation rejected")
		return outcome, nil
	}

	log.Debug().Int("events", len(outcome.Events)).Msg("operation committed")
	r.publish(&log, outcome)

	return outcome, nil
}

// publish hands committed events to listeners. A listener failure is logged,
// the game state is already committed.
func (r *Runner) publish(log *zerolog.Logger, outcome *entities.Outcome) {
	if r.bus == nil {
		return
	}
	if err := r.bus.Publish(outcome.Events); err != nil {
		log.Warn().Err(err).Msg("event listener failed")
	}
}
