package testutils

import (
	"github.com/KirkDiggler/arena-bot/internal/domain/rulebook"
	"github.com/KirkDiggler/arena-bot/internal/entities"
)

// CreateTestCharacter creates a character with the reach its variety gets
func CreateTestCharacter(name string, variety entities.Variety, strength, life int) *entities.Character {
	return &entities.Character{
		Name:     name,
		Variety:  variety,
		Reach:    rulebook.ReachFor(variety),
		Strength: strength,
		Life:     life,
	}
}

// CreateTestCreature creates a creature with explicit stats
func CreateTestCreature(name string, reach entities.Reach, strength, life int) *entities.Creature {
	return &entities.Creature{
		Name:     name,
		Reach:    reach,
		Strength: strength,
		Life:     life,
	}
}
