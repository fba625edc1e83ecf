package rulebook_test

import (
	"testing"

	"github.com/KirkDiggler/arena-bot/internal/domain/rulebook"
	"github.com/KirkDiggler/arena-bot/internal/entities"
	"github.com/stretchr/testify/assert"
)

func TestCanEngage(t *testing.T) {
	assert.True(t, rulebook.CanEngage(entities.ReachLong, entities.ReachLong))
	assert.True(t, rulebook.CanEngage(entities.ReachLong, entities.ReachShort))
	assert.True(t, rulebook.CanEngage(entities.ReachShort, entities.ReachShort))
	assert.False(t, rulebook.CanEngage(entities.ReachShort, entities.ReachLong))
	assert.False(t, rulebook.CanEngage(entities.ReachUnknown, entities.ReachShort))
}

func TestReachFor(t *testing.T) {
	want := map[entities.Variety]entities.Reach{
		entities.VarietyDwarf:       entities.ReachShort,
		entities.VarietyElf:         entities.ReachLong,
		entities.VarietyHealer:      entities.ReachShort,
		entities.VarietyWizard:      entities.ReachLong,
		entities.VarietyNecromancer: entities.ReachShort,
	}
	for _, v := range entities.Varieties() {
		assert.Equal(t, want[v], rulebook.ReachFor(v), v.String())
	}
	assert.Equal(t, entities.ReachUnknown, rulebook.ReachFor(entities.VarietyUnknown))
}

func TestStatRangeFor(t *testing.T) {
	dwarf, ok := rulebook.StatRangeFor(entities.VarietyDwarf)
	assert.True(t, ok)
	assert.Equal(t, rulebook.StatRange{Min: 10, Max: 50}, dwarf)

	elf, _ := rulebook.StatRangeFor(entities.VarietyElf)
	assert.Equal(t, rulebook.StatRange{Min: 15, Max: 25}, elf)

	for _, v := range []entities.Variety{entities.VarietyHealer, entities.VarietyWizard, entities.VarietyNecromancer} {
		r, ok := rulebook.StatRangeFor(v)
		assert.True(t, ok)
		assert.Equal(t, rulebook.StatRange{Min: 5, Max: 15}, r)
	}

	_, ok = rulebook.StatRangeFor(entities.VarietyUnknown)
	assert.False(t, ok)
	assert.True(t, dwarf.Contains(10))
	assert.True(t, dwarf.Contains(50))
	assert.False(t, dwarf.Contains(51))
}

func TestKillReward(t *testing.T) {
	// counter was N before the kill, reward uses N+1
	for before := 0; before < 5; before++ {
		assert.Equal(t, 40+10*(before+1), rulebook.KillReward(before+1))
	}
}

func TestSpellFor(t *testing.T) {
	heal, ok := rulebook.SpellFor(entities.VarietyHealer)
	assert.True(t, ok)
	assert.Equal(t, 5, heal.Cost)
	assert.Equal(t, rulebook.TargetCharacter, heal.Target)

	halve, ok := rulebook.SpellFor(entities.VarietyWizard)
	assert.True(t, ok)
	assert.Equal(t, 20, halve.Cost)
	assert.Equal(t, rulebook.TargetCreature, halve.Target)

	raise, ok := rulebook.SpellFor(entities.VarietyNecromancer)
	assert.True(t, ok)
	assert.Equal(t, 75, raise.Cost)
	assert.Equal(t, 10, raise.Amount)

	_, ok = rulebook.SpellFor(entities.VarietyDwarf)
	assert.False(t, ok)
	_, ok = rulebook.SpellFor(entities.VarietyElf)
	assert.False(t, ok)
}

func TestHalvingKills(t *testing.T) {
	tests := []struct {
		life   int
		halved int
		killed bool
	}{
		{life: 1, halved: 0, killed: true},
		{life: 2, halved: 1, killed: true},
		{life: 3, halved: 1, killed: true},
		{life: 4, halved: 2, killed: false},
		{life: 5, halved: 2, killed: false},
		{life: 100, halved: 50, killed: false},
	}
	for _, tt := range tests {
		halved := rulebook.Halve(tt.life)
		assert.Equal(t, tt.halved, halved, "life %d", tt.life)
		assert.Equal(t, tt.killed, rulebook.HalvingKills(halved), "life %d", tt.life)
	}
}
