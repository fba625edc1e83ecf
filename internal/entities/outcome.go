package entities

import "github.com/KirkDiggler/arena-bot/internal/events"

// Reason explains why an operation was refused by the game rules
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonActorNotFound     Reason = "actor_not_found"
	ReasonTargetNotFound    Reason = "target_not_found"
	ReasonActorDead         Reason = "actor_dead"
	ReasonTargetDead        Reason = "target_dead"
	ReasonTargetAlive       Reason = "target_alive"
	ReasonOutOfReach        Reason = "out_of_reach"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonNoSpell           Reason = "no_spell"
	ReasonNameTaken         Reason = "name_taken"
	ReasonUnknownVariety    Reason = "unknown_variety"
)

var reasonMessages = map[Reason]string{
	ReasonActorNotFound:     "This character does not exist",
	ReasonTargetNotFound:    "The target does not exist",
	ReasonActorDead:         "A dead character cannot act",
	ReasonTargetDead:        "The target is dead",
	ReasonTargetAlive:       "The target is still alive",
	ReasonOutOfReach:        "Not enough reach to attack this creature",
	ReasonInsufficientFunds: "The team does not have enough money",
	ReasonNoSpell:           "This variety does not have any spell",
	ReasonNameTaken:         "That name is already taken",
	ReasonUnknownVariety:    "This variety does not exist",
}

// Message is the player-facing explanation of the reason
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// Outcome is the result of a game operation. A rejected outcome never
// carries events and never follows a state change.
type Outcome struct {
	ActionID string
	Success  bool
	Reason   Reason
	Events   []events.Event
}

// Accepted builds a successful outcome
func Accepted(actionID string, evts ...events.Event) *Outcome {
	for i := range evts {
		evts[i].ActionID = actionID
	}
	return &Outcome{
		ActionID: actionID,
		Success:  true,
		Events:   evts,
	}
}

// Rejected builds an outcome refused for reason
func Rejected(actionID string, reason Reason) *Outcome {
	return &Outcome{
		ActionID: actionID,
		Reason:   reason,
	}
}
