package events

import "fmt"

// EventType identifies what happened in a game
type EventType string

// Event is a narrative record produced by a committed game operation.
// Events are returned in the order the mutations were applied.
type Event struct {
	Type     EventType `json:"type"`
	ActionID string    `json:"action_id,omitempty"`

	Actor         string `json:"actor,omitempty"`
	ActorVariety  string `json:"actor_variety,omitempty"`
	Target        string `json:"target,omitempty"`
	TargetVariety string `json:"target_variety,omitempty"`

	// Amount is damage dealt, life healed, currency awarded or stat gained
	Amount int `json:"amount,omitempty"`
	// Remaining is the life left after the change
	Remaining int `json:"remaining,omitempty"`

	Reach    string `json:"reach,omitempty"`
	Strength int    `json:"strength,omitempty"`
	Life     int    `json:"life,omitempty"`
}

// Message renders the event as a line of narration
func (e Event) Message() string {
	switch e.Type {
	case EventTypeCharacterCreated:
		return fmt.Sprintf("New %s created named %s with %d life and %d strength", e.ActorVariety, e.Actor, e.Life, e.Strength)
	case EventTypeCreatureSpawned:
		return fmt.Sprintf("Added creature %s with %s reach, %d strength and %d life", e.Target, e.Reach, e.Strength, e.Life)
	case EventTypeCreatureDamaged:
		return fmt.Sprintf("%s(%s) dealt %d damage to the creature and it has %d points of life left", e.Actor, e.ActorVariety, e.Amount, e.Remaining)
	case EventTypeCreatureKilled:
		return fmt.Sprintf("%s(%s) killed the creature %s, the team earns %d", e.Actor, e.ActorVariety, e.Target, e.Amount)
	case EventTypeCharacterKilled:
		return fmt.Sprintf("%s(%s) has been killed by creature %s", e.Target, e.TargetVariety, e.Actor)
	case EventTypeCharacterDamaged:
		return fmt.Sprintf("%s(%s) lost %d points of life and has %d left", e.Target, e.TargetVariety, e.Amount, e.Remaining)
	case EventTypeCharacterHealed:
		return fmt.Sprintf("%s(%s) has added %d points of life to %s(%s)", e.Actor, e.ActorVariety, e.Amount, e.Target, e.TargetVariety)
	case EventTypeCreatureWeakened:
		return fmt.Sprintf("%s(%s) halved %s, the creature still has %d points of life", e.Actor, e.ActorVariety, e.Target, e.Remaining)
	case EventTypeCharacterResurrected:
		return fmt.Sprintf("%s(%s) has resurrected the character %s(%s)", e.Actor, e.ActorVariety, e.Target, e.TargetVariety)
	case EventTypeEvolutionStarted:
		return fmt.Sprintf("Evolution of %s", e.Actor)
	case EventTypeStrengthEvolved:
		return fmt.Sprintf("%s has now %d points of strength", e.Actor, e.Strength)
	case EventTypeStrengthUnchanged:
		return fmt.Sprintf("%s's strength has not evolved", e.Actor)
	case EventTypeLifeEvolved:
		return fmt.Sprintf("%s has now %d points of life", e.Actor, e.Life)
	case EventTypeLifeUnchanged:
		return fmt.Sprintf("%s's life has not evolved", e.Actor)
	case EventTypeGameReset:
		return "The game has been reset"
	default:
		return string(e.Type)
	}
}
