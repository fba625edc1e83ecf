package gamestate

import (
	"strings"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
)

func validateCharacter(char *entities.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if strings.TrimSpace(char.Name) == "" {
		return dnderr.InvalidArgument("character name cannot be empty")
	}
	if !char.Variety.IsValid() {
		return dnderr.InvalidArgumentf("character %s has unknown variety", char.Name)
	}
	if !char.Reach.IsValid() {
		return dnderr.InvalidArgumentf("character %s has unknown reach", char.Name)
	}
	return validateStats(char.Name, char.Strength, char.Life)
}

func validateCreature(creature *entities.Creature) error {
	if creature == nil {
		return dnderr.InvalidArgument("creature cannot be nil")
	}
	if strings.TrimSpace(creature.Name) == "" {
		return dnderr.InvalidArgument("creature name cannot be empty")
	}
	if !creature.Reach.IsValid() {
		return dnderr.InvalidArgumentf("creature %s has unknown reach", creature.Name)
	}
	return validateStats(creature.Name, creature.Strength, creature.Life)
}

func validateStats(name string, strength, life int) error {
	if strength < 0 {
		return dnderr.InvalidArgumentf("%s: strength cannot be negative", name)
	}
	if life < 0 {
		return dnderr.InvalidArgumentf("%s: life cannot be negative", name)
	}
	return nil
}

func validateField(field entities.Field, value int) error {
	if !field.IsValid() {
		return dnderr.InvalidArgumentf("unknown field %d", int(field))
	}
	if value < 0 {
		return dnderr.InvalidArgumentf("%s cannot be negative", field)
	}
	return nil
}

func validateCounter(name string, value int) error {
	if value < 0 {
		return dnderr.InvalidArgumentf("%s cannot be negative", name)
	}
	return nil
}

func applyCharacterField(char *entities.Character, field entities.Field, value int) {
	switch field {
	case entities.FieldStrength:
		char.Strength = value
	case entities.FieldLife:
		char.Life = value
	}
}

func applyCreatureField(creature *entities.Creature, field entities.Field, value int) {
	switch field {
	case entities.FieldStrength:
		creature.Strength = value
	case entities.FieldLife:
		creature.Life = value
	}
}
