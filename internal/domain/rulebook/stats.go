package rulebook

import "github.com/KirkDiggler/arena-bot/internal/entities"

// StatRange is an inclusive range used for both life and strength rolls
type StatRange struct {
	Min int
	Max int
}

// Contains reports whether n falls inside the range
func (r StatRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

var statRanges = map[entities.Variety]StatRange{
	entities.VarietyDwarf:       {Min: 10, Max: 50},
	entities.VarietyElf:         {Min: 15, Max: 25},
	entities.VarietyHealer:      {Min: 5, Max: 15},
	entities.VarietyWizard:      {Min: 5, Max: 15},
	entities.VarietyNecromancer: {Min: 5, Max: 15},
}

// StatRangeFor returns the roll range of a variety
func StatRangeFor(v entities.Variety) (StatRange, bool) {
	r, ok := statRanges[v]
	return r, ok
}

const (
	// CreationBonus is paid to the team for every new character
	CreationBonus = 50

	// EvolutionCost is paid by the team for each evolution attempt
	EvolutionCost = 4
	// StrengthEvolutionChance is the percent chance of gaining strength
	StrengthEvolutionChance = 25
	StrengthEvolutionGain   = 4
	// LifeEvolutionChance is the percent chance of gaining life
	LifeEvolutionChance = 50
	LifeEvolutionGain   = 2

	// CreatureStatMin and CreatureStatMax bound the base creature roll,
	// which is then scaled by 1 + kills
	CreatureStatMin = 1
	CreatureStatMax = 10
)

// CreatureScale is the multiplier applied to creature rolls after kills kills
func CreatureScale(kills int) int {
	return 1 + kills
}

// KillReward is the currency paid for a kill, given the kill counter after
// it was incremented
func KillReward(killCount int) int {
	return 40 + 10*killCount
}
