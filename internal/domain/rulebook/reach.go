// Package rulebook holds the arena's fixed rules: who can strike whom, how
// characters are rolled, what spells cost and what a kill pays.
// Everything here is pure; services apply the results to the store.
package rulebook

import "github.com/KirkDiggler/arena-bot/internal/entities"

// CanEngage reports whether a combatant with reach attacker can strike one
// with reach target. Long reach strikes anything, short reach only short.
// Counter-attacks call this again with the roles swapped.
func CanEngage(attacker, target entities.Reach) bool {
	if attacker == entities.ReachLong {
		return true
	}
	return attacker == entities.ReachShort && target == entities.ReachShort
}

// ReachFor returns the reach a character of variety v is created with
func ReachFor(v entities.Variety) entities.Reach {
	switch v {
	case entities.VarietyElf, entities.VarietyWizard:
		return entities.ReachLong
	case entities.VarietyDwarf, entities.VarietyHealer, entities.VarietyNecromancer:
		return entities.ReachShort
	default:
		return entities.ReachUnknown
	}
}
