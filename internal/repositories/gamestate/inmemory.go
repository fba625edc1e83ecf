package gamestate

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
)

// gameData is one complete copy of a game
type gameData struct {
	characters map[string]*entities.Character
	creatures  map[string]*entities.Creature
	team       entities.Team
}

func newGameData() *gameData {
	return &gameData{
		characters: make(map[string]*entities.Character),
		creatures:  make(map[string]*entities.Creature),
	}
}

func (d *gameData) clone() *gameData {
	c := &gameData{
		characters: make(map[string]*entities.Character, len(d.characters)),
		creatures:  make(map[string]*entities.Creature, len(d.creatures)),
		team:       d.team,
	}
	for name, char := range d.characters {
		c.characters[name] = char.Clone()
	}
	for name, creature := range d.creatures {
		c.creatures[name] = creature.Clone()
	}
	return c
}

// InMemoryRepository implements Repository using in-memory storage.
// Writes made under WithGameLock land on a staged copy that replaces the
// game only when the locked function succeeds.
type InMemoryRepository struct {
	mu    sync.RWMutex
	state *gameData
	lock  localLock
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemoryRepository creates a new in-memory game store
func NewInMemoryRepository() *InMemoryRepository {
	return newInMemoryFrom(newGameData())
}

func newInMemoryFrom(state *gameData) *InMemoryRepository {
	return &InMemoryRepository{
		state: state,
		lock:  newLocalLock(),
	}
}

// data returns the staged copy when ctx is inside this store's game lock
func (r *InMemoryRepository) data(ctx context.Context) *gameData {
	if staged, ok := stagedFrom(ctx, r).(*gameData); ok {
		return staged
	}
	return r.state
}

func (r *InMemoryRepository) CharacterExists(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.data(ctx).characters[name]
	return exists, nil
}

func (r *InMemoryRepository) CreatureExists(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.data(ctx).creatures[name]
	return exists, nil
}

func (r *InMemoryRepository) GetCharacter(ctx context.Context, name string) (*entities.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.data(ctx).characters[name]
	if !exists {
		return nil, dnderr.NotFoundf("character not found: %s", name).About(name)
	}

	return char.Clone(), nil
}

func (r *InMemoryRepository) GetCreature(ctx context.Context, name string) (*entities.Creature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	creature, exists := r.data(ctx).creatures[name]
	if !exists {
		return nil, dnderr.NotFoundf("creature not found: %s", name).About(name)
	}

	return creature.Clone(), nil
}

func (r *InMemoryRepository) CreateCharacter(ctx context.Context, char *entities.Character) error {
	if err := validateCharacter(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data(ctx).characters[char.Name]; exists {
		return dnderr.AlreadyExistsf("character %s already exists", char.Name).About(char.Name)
	}

	r.data(ctx).characters[char.Name] = char.Clone()
	return nil
}

func (r *InMemoryRepository) CreateCreature(ctx context.Context, creature *entities.Creature) error {
	if err := validateCreature(creature); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data(ctx).creatures[creature.Name]; exists {
		return dnderr.AlreadyExistsf("creature %s already exists", creature.Name).About(creature.Name)
	}

	r.data(ctx).creatures[creature.Name] = creature.Clone()
	return nil
}

func (r *InMemoryRepository) SetCharacterField(ctx context.Context, name string, field entities.Field, value int) error {
	if err := validateField(field, value); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	char, exists := r.data(ctx).characters[name]
	if !exists {
		return dnderr.NotFoundf("character not found: %s", name).About(name)
	}

	applyCharacterField(char, field, value)
	return nil
}

func (r *InMemoryRepository) SetCreatureField(ctx context.Context, name string, field entities.Field, value int) error {
	if err := validateField(field, value); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	creature, exists := r.data(ctx).creatures[name]
	if !exists {
		return dnderr.NotFoundf("creature not found: %s", name).About(name)
	}

	applyCreatureField(creature, field, value)
	return nil
}

func (r *InMemoryRepository) RemoveCreature(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data(ctx).creatures[name]; !exists {
		return dnderr.NotFoundf("creature not found: %s", name).About(name)
	}

	delete(r.data(ctx).creatures, name)
	return nil
}

func (r *InMemoryRepository) GetTeamCurrency(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data(ctx).team.Currency, nil
}

func (r *InMemoryRepository) SetTeamCurrency(ctx context.Context, currency int) error {
	if err := validateCounter("currency", currency); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data(ctx).team.Currency = currency
	return nil
}

func (r *InMemoryRepository) GetKillCount(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data(ctx).team.KillCount, nil
}

func (r *InMemoryRepository) SetKillCount(ctx context.Context, kills int) error {
	if err := validateCounter("kill count", kills); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data(ctx).team.KillCount = kills
	return nil
}

func (r *InMemoryRepository) ListCharacters(ctx context.Context) ([]*entities.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d := r.data(ctx)
	result := make([]*entities.Character, 0, len(d.characters))
	for _, char := range d.characters {
		result = append(result, char.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

func (r *InMemoryRepository) ListCreatures(ctx context.Context) ([]*entities.Creature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d := r.data(ctx)
	result := make([]*entities.Creature, 0, len(d.creatures))
	for _, creature := range d.creatures {
		result = append(result, creature.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

func (r *InMemoryRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	*r.data(ctx) = *newGameData()
	return nil
}

func (r *InMemoryRepository) WithGameLock(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return dnderr.InvalidArgument("lock function cannot be nil")
	}

	return r.lock.run(ctx, func(ctx context.Context) error {
		r.mu.RLock()
		staged := r.state.clone()
		r.mu.RUnlock()

		if err := fn(withStaged(ctx, r, staged)); err != nil {
			return err
		}

		r.mu.Lock()
		r.state = staged
		r.mu.Unlock()
		return nil
	})
}
