// Package gamestate stores one arena game: its characters, its creatures and
// the team aggregate. Every implementation rejects negative numbers and
// duplicate names, and hands out copies so callers never share records.
package gamestate

//go:generate mockgen -destination=mock/mock_repository.go -package=mockgamestate -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/arena-bot/internal/entities"
)

// Repository is the state store for a single game
type Repository interface {
	CharacterExists(ctx context.Context, name string) (bool, error)
	CreatureExists(ctx context.Context, name string) (bool, error)

	// GetCharacter returns a NotFound error when the name is unknown
	GetCharacter(ctx context.Context, name string) (*entities.Character, error)
	// GetCreature returns a NotFound error when the name is unknown
	GetCreature(ctx context.Context, name string) (*entities.Creature, error)

	// CreateCharacter fails with AlreadyExists or InvalidArgument
	CreateCharacter(ctx context.Context, char *entities.Character) error
	// CreateCreature fails with AlreadyExists or InvalidArgument
	CreateCreature(ctx context.Context, creature *entities.Creature) error

	SetCharacterField(ctx context.Context, name string, field entities.Field, value int) error
	SetCreatureField(ctx context.Context, name string, field entities.Field, value int) error

	// RemoveCreature deletes a dead creature, NotFound when absent
	RemoveCreature(ctx context.Context, name string) error

	GetTeamCurrency(ctx context.Context) (int, error)
	SetTeamCurrency(ctx context.Context, currency int) error
	GetKillCount(ctx context.Context) (int, error)
	SetKillCount(ctx context.Context, kills int) error

	// ListCharacters returns every character sorted by name
	ListCharacters(ctx context.Context) ([]*entities.Character, error)
	// ListCreatures returns every creature sorted by name
	ListCreatures(ctx context.Context) ([]*entities.Creature, error)

	// Reset removes all characters and creatures and zeroes the team
	Reset(ctx context.Context) error

	// WithGameLock runs fn while holding the game's exclusive lock.
	// Calls on one game never interleave their reads and writes.
	WithGameLock(ctx context.Context, fn func(ctx context.Context) error) error
}
