package rulebook

import "github.com/KirkDiggler/arena-bot/internal/entities"

// TargetKind says which namespace a spell's target name is looked up in
type TargetKind int

const (
	TargetCharacter TargetKind = iota + 1
	TargetCreature
)

// SpellEffect identifies what a spell does to its target
type SpellEffect int

const (
	EffectHeal SpellEffect = iota + 1
	EffectHalve
	EffectResurrect
)

// Spell is the single spell known to a variety
type Spell struct {
	Name   string
	Cost   int
	Target TargetKind
	Effect SpellEffect
	// Amount is the life added by a heal or restored by a resurrection
	Amount int
}

var spellbook = map[entities.Variety]Spell{
	entities.VarietyHealer: {
		Name:   "heal",
		Cost:   5,
		Target: TargetCharacter,
		Effect: EffectHeal,
		Amount: 10,
	},
	entities.VarietyWizard: {
		Name:   "halve",
		Cost:   20,
		Target: TargetCreature,
		Effect: EffectHalve,
	},
	entities.VarietyNecromancer: {
		Name:   "resurrect",
		Cost:   75,
		Target: TargetCharacter,
		Effect: EffectResurrect,
		Amount: 10,
	},
}

// SpellFor returns the spell of variety v, if it has one
func SpellFor(v entities.Variety) (Spell, bool) {
	s, ok := spellbook[v]
	return s, ok
}

// Halve is the wizard's damage: life is halved, rounding down
func Halve(life int) int {
	return life / 2
}

// HalvingKills decides whether a creature left with halvedLife dies.
// The test halves a second time, so a creature left with 1 life dies too.
func HalvingKills(halvedLife int) bool {
	return Halve(halvedLife) == 0
}
