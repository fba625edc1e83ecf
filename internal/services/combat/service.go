// Package combat resolves attacks, spells and evolution against the game
// store. Every precondition is checked before the first write, so a refused
// action leaves the game exactly as it was.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombat -source=service.go

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
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Service defines the combat service interface
type Service interface {
	// Attack has a character strike a creature, possibly taking a counter-attack
	Attack(ctx context.Context, attackerName, creatureName string) (*entities.Outcome, error)

	// LaunchSpell casts the caster's variety spell on a character or creature
	LaunchSpell(ctx context.Context, casterName, targetName string) (*entities.Outcome, error)

	// Evolve spends team currency on a chance to grow a character's stats
	Evolve(ctx context.Context, characterName string) (*entities.Outcome, error)
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

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		runner: action.NewRunner("combat", &action.RunnerConfig{
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

// findCharacter maps a missing character to ok=false
func (s *service) findCharacter(ctx context.Context, name string) (*entities.Character, bool, error) {
	char, err := s.repo.GetCharacter(ctx, name)
	if err != nil {
		if dnderr.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, dnderr.Wrapf(err, "failed to get character %s", name)
	}
	return char, true, nil
}

// findCreature maps a missing creature to ok=false
func (s *service) findCreature(ctx context.Context, name string) (*entities.Creature, bool, error) {
	creature, err := s.repo.GetCreature(ctx, name)
	if err != nil {
		if dnderr.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, dnderr.Wrapf(err, "failed to get creature %s", name)
	}
	return creature, true, nil
}

func (s *service) currency(ctx context.Context) (int, error) {
	currency, err := s.repo.GetTeamCurrency(ctx)
	if err != nil {
		return 0, dnderr.Wrap(err, "failed to get currency")
	}
	return currency, nil
}

// kill removes the creature and pays the team. currency is the team balance
// the reward is added to, so a spell's cost and the reward land in one write.
func (s *service) kill(ctx context.Context, killer *entities.Character, creature *entities.Creature, currency int) (events.Event, error) {
	kills, err := s.repo.GetKillCount(ctx)
	if err != nil {
		return events.Event{}, dnderr.Wrap(err, "failed to get kill count")
	}

	kills++
	reward := rulebook.KillReward(kills)

	if err := s.repo.SetKillCount(ctx, kills); err != nil {
		return events.Event{}, dnderr.Wrap(err, "failed to count kill")
	}
	if err := s.repo.SetTeamCurrency(ctx, currency+reward); err != nil {
		return events.Event{}, dnderr.Wrap(err, "failed to pay kill reward")
	}
	if err := s.repo.RemoveCreature(ctx, creature.Name); err != nil {
		return events.Event{}, dnderr.Wrapf(err, "failed to remove creature %s", creature.Name)
	}

	return events.Event{
		Type:         events.EventTypeCreatureKilled,
		Actor:        killer.Name,
		ActorVariety: killer.Variety.String(),
		Target:       creature.Name,
		Amount:       reward,
	}, nil
}

func (s *service) Attack(ctx context.Context, attackerName, creatureName string) (*entities.Outcome, error) {
	return s.runner.Run(ctx, "combat.attack", []attribute.KeyValue{
		attribute.String("arena.actor", attackerName),
		attribute.String("arena.target", creatureName),
	}, func(ctx context.Context, actionID string) (*entities.Outcome, error) {
		attacker, ok, err := s.findCharacter(ctx, attackerName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return entities.Rejected(actionID, entities.ReasonActorNotFound), nil
		}

		creature, ok, err := s.findCreature(ctx, creatureName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return entities.Rejected(actionID, entities.ReasonTargetNotFound), nil
		}

		if !attacker.IsAlive() {
			return entities.Rejected(actionID, entities.ReasonActorDead), nil
		}
		if !creature.IsAlive() {
			return entities.Rejected(actionID, entities.ReasonTargetDead), nil
		}
		if !rulebook.CanEngage(attacker.Reach, creature.Reach) {
			return entities.Rejected(actionID, entities.ReasonOutOfReach), nil
		}

		remaining := creature.Life - attacker.Strength
		if remaining <= 0 {
			currency, err := s.currency(ctx)
			if err != nil {
				return nil, err
			}
			killed, err := s.kill(ctx, attacker, creature, currency)
			if err != nil {
				return nil, err
			}
			return entities.Accepted(actionID, killed), nil
		}

		if err := s.repo.SetCreatureField(ctx, creature.Name, entities.FieldLife, remaining); err != nil {
			return nil, dnderr.Wrapf(err, "failed to damage creature %s", creature.Name)
		}
		evts := []events.Event{{
			Type:         events.EventTypeCreatureDamaged,
			Actor:        attacker.Name,
			ActorVariety: attacker.Variety.String(),
			Target:       creature.Name,
			Amount:       attacker.Strength,
			Remaining:    remaining,
		}}

		attackerRemaining := attacker.Life - creature.Strength
		switch {
		case attackerRemaining <= 0:
			// a lethal counter-attack lands whatever the reach
			if err := s.repo.SetCharacterField(ctx, attacker.Name, entities.FieldLife, 0); err != nil {
				return nil, dnderr.Wrapf(err, "failed to kill character %s", attacker.Name)
			}
			evts = append(evts, events.Event{
				Type:          events.EventTypeCharacterKilled,
				Actor:         creature.Name,
				Target:        attacker.Name,
				TargetVariety: attacker.Variety.String(),
				Amount:        attacker.Life,
			})
		case rulebook.CanEngage(creature.Reach, attacker.Reach):
			if err := s.repo.SetCharacterField(ctx, attacker.Name, entities.FieldLife, attackerRemaining); err != nil {
				return nil, dnderr.Wrapf(err, "failed to damage character %s", attacker.Name)
			}
			evts = append(evts, events.Event{
				Type:          events.EventTypeCharacterDamaged,
				Actor:         creature.Name,
				Target:        attacker.Name,
				TargetVariety: attacker.Variety.String(),
				Amount:        creature.Strength,
				Remaining:     attackerRemaining,
			})
		}

		return entities.Accepted(actionID, evts...), nil
	})
}

// LaunchSpell checks the caster, then the spell, then the team's money and
// only then the target
func (s *service) LaunchSpell(ctx context.Context, casterName, targetName string) (*entities.Outcome, error) {
	return s.runner.Run(ctx, "combat.spell", []attribute.KeyValue{
		attribute.String("arena.actor", casterName),
		attribute.String("arena.target", targetName),
	}, func(ctx context.Context, actionID string) (*entities.Outcome, error) {
		caster, ok, err := s.findCharacter(ctx, casterName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return entities.Rejected(actionID, entities.ReasonActorNotFound), nil
		}
		if !caster.IsAlive() {
			return entities.Rejected(actionID, entities.ReasonActorDead), nil
		}

		spell, ok := rulebook.SpellFor(caster.Variety)
		if !ok {
			return entities.Rejected(actionID, entities.ReasonNoSpell), nil
		}

		currency, err := s.currency(ctx)
		if err != nil {
			return nil, err
		}
		if currency < spell.Cost {
			return entities.Rejected(actionID, entities.ReasonInsufficientFunds), nil
		}

		switch spell.Target {
		case rulebook.TargetCreature:
			target, ok, err := s.findCreature(ctx, targetName)
			if err != nil {
				return nil, err
			}
			if !ok {
				return entities.Rejected(actionID, entities.ReasonTargetNotFound), nil
			}
			if !target.IsAlive() {
				return entities.Rejected(actionID, entities.ReasonTargetDead), nil
			}
			return s.castOnCreature(ctx, actionID, spell, caster, target, currency)
		default:
			target, ok, err := s.findCharacter(ctx, targetName)
			if err != nil {
				return nil, err
			}
			if !ok {
				return entities.Rejected(actionID, entities.ReasonTargetNotFound), nil
			}
			if spell.Effect == rulebook.EffectResurrect && target.IsAlive() {
				return entities.Rejected(actionID, entities.ReasonTargetAlive), nil
			}
			if spell.Effect != rulebook.EffectResurrect && !target.IsAlive() {
				return entities.Rejected(actionID, entities.ReasonTargetDead), nil
			}
			return s.castOnCharacter(ctx, actionID, spell, caster, target, currency)
		}
	})
}

func (s *service) castOnCreature(ctx context.Context, actionID string, spell rulebook.Spell, caster *entities.Character, target *entities.Creature, currency int) (*entities.Outcome, error) {
	halved := rulebook.Halve(target.Life)
	balance := currency - spell.Cost

	if rulebook.HalvingKills(halved) {
		killed, err := s.kill(ctx, caster, target, balance)
		if err != nil {
			return nil, err
		}
		return entities.Accepted(actionID, killed), nil
	}

	if err := s.repo.SetCreatureField(ctx, target.Name, entities.FieldLife, halved); err != nil {
		return nil, dnderr.Wrapf(err, "failed to halve creature %s", target.Name)
	}
	if err := s.repo.SetTeamCurrency(ctx, balance); err != nil {
		return nil, dnderr.Wrap(err, "failed to pay for spell")
	}

	return entities.Accepted(actionID, events.Event{
		Type:         events.EventTypeCreatureWeakened,
		Actor:        caster.Name,
		ActorVariety: caster.Variety.String(),
		Target:       target.Name,
		Amount:       target.Life - halved,
		Remaining:    halved,
	}), nil
}

func (s *service) castOnCharacter(ctx context.Context, actionID string, spell rulebook.Spell, caster, target *entities.Character, currency int) (*entities.Outcome, error) {
	evt := events.Event{
		Actor:         caster.Name,
		ActorVariety:  caster.Variety.String(),
		Target:        target.Name,
		TargetVariety: target.Variety.String(),
		Amount:        spell.Amount,
	}

	var life int
	switch spell.Effect {
	case rulebook.EffectHeal:
		life = target.Life + spell.Amount
		evt.Type = events.EventTypeCharacterHealed
	case rulebook.EffectResurrect:
		life = spell.Amount
		evt.Type = events.EventTypeCharacterResurrected
	default:
		return nil, dnderr.Internalf("spell %s cannot target a character", spell.Name)
	}
	evt.Remaining = life

	if err := s.repo.SetCharacterField(ctx, target.Name, entities.FieldLife, life); err != nil {
		return nil, dnderr.Wrapf(err, "failed to cast %s on %s", spell.Name, target.Name)
	}
	if err := s.repo.SetTeamCurrency(ctx, currency-spell.Cost); err != nil {
		return nil, dnderr.Wrap(err, "failed to pay for spell")
	}

	return entities.Accepted(actionID, evt), nil
}

// Evolve rolls both luck checks before writing anything
func (s *service) Evolve(ctx context.Context, characterName string) (*entities.Outcome, error) {
	return s.runner.Run(ctx, "combat.evolve", []attribute.KeyValue{
		attribute.String("arena.actor", characterName),
	}, func(ctx context.Context, actionID string) (*entities.Outcome, error) {
		char, ok, err := s.findCharacter(ctx, characterName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return entities.Rejected(actionID, entities.ReasonActorNotFound), nil
		}
		if !char.IsAlive() {
			return entities.Rejected(actionID, entities.ReasonActorDead), nil
		}

		currency, err := s.currency(ctx)
		if err != nil {
			return nil, err
		}
		if currency < rulebook.EvolutionCost {
			return entities.Rejected(actionID, entities.ReasonInsufficientFunds), nil
		}

		strengthLuck, err := s.oracle.Chance(rulebook.StrengthEvolutionChance)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll strength evolution")
		}
		lifeLuck, err := s.oracle.Chance(rulebook.LifeEvolutionChance)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll life evolution")
		}

		if err := s.repo.SetTeamCurrency(ctx, currency-rulebook.EvolutionCost); err != nil {
			return nil, dnderr.Wrap(err, "failed to pay for evolution")
		}

		evts := []events.Event{{
			Type:         events.EventTypeEvolutionStarted,
			Actor:        char.Name,
			ActorVariety: char.Variety.String(),
			Amount:       rulebook.EvolutionCost,
		}}

		if strengthLuck {
			strength := char.Strength + rulebook.StrengthEvolutionGain
			if err := s.repo.SetCharacterField(ctx, char.Name, entities.FieldStrength, strength); err != nil {
				return nil, dnderr.Wrapf(err, "failed to evolve strength of %s", char.Name)
			}
			evts = append(evts, events.Event{
				Type:     events.EventTypeStrengthEvolved,
				Actor:    char.Name,
				Amount:   rulebook.StrengthEvolutionGain,
				Strength: strength,
			})
		} else {
			evts = append(evts, events.Event{Type: events.EventTypeStrengthUnchanged, Actor: char.Name})
		}

		if lifeLuck {
			life := char.Life + rulebook.LifeEvolutionGain
			if err := s.repo.SetCharacterField(ctx, char.Name, entities.FieldLife, life); err != nil {
				return nil, dnderr.Wrapf(err, "failed to evolve life of %s", char.Name)
			}
			evts = append(evts, events.Event{
				Type:   events.EventTypeLifeEvolved,
				Actor:  char.Name,
				Amount: rulebook.LifeEvolutionGain,
				Life:   life,
			})
		} else {
			evts = append(evts, events.Event{Type: events.EventTypeLifeUnchanged, Actor: char.Name})
		}

		return entities.Accepted(actionID, evts...), nil
	})
}
