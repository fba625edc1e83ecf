package gamestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	// Key patterns, all scoped by game ID
	characterKeyPattern = "arena:%s:character:%s"
	creatureKeyPattern  = "arena:%s:creature:%s"
	charactersSetKey    = "arena:%s:characters"
	creaturesSetKey     = "arena:%s:creatures"
	teamKeyPattern      = "arena:%s:team"
	lockKeyPattern      = "arena:%s:lock"

	teamCurrencyField = "currency"
	teamKillsField    = "kills"

	defaultLockTTL   = 10 * time.Second
	defaultLockWait  = 5 * time.Second
	lockPollInterval = 25 * time.Millisecond

	// listConcurrency bounds parallel GETs when listing a namespace
	listConcurrency = 8
)

// releaseScript deletes the lock only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	GameID        string
	UUIDGenerator uuid.Generator
	// LockTTL is how long a held lock survives a crashed holder
	LockTTL time.Duration
	// LockWait is how long WithGameLock waits before reporting a conflict
	LockWait time.Duration
}

type redisRepo struct {
	client        redis.UniversalClient
	gameID        string
	uuidGenerator uuid.Generator
	lockTTL       time.Duration
	lockWait      time.Duration
}

// NewRedisRepository creates a new Redis-backed game store
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}
	if cfg.GameID == "" {
		panic("game ID is required")
	}

	repo := &redisRepo{
		client:        cfg.Client,
		gameID:        cfg.GameID,
		uuidGenerator: cfg.UUIDGenerator,
		lockTTL:       cfg.LockTTL,
		lockWait:      cfg.LockWait,
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if repo.lockTTL == 0 {
		repo.lockTTL = defaultLockTTL
	}
	if repo.lockWait == 0 {
		repo.lockWait = defaultLockWait
	}

	return repo
}

// wrap stamps store faults with the game they happened in
func (r *redisRepo) wrap(err error, message string) *dnderr.Error {
	return dnderr.Wrap(err, message).ForGame(r.gameID)
}

func (r *redisRepo) wrapf(err error, format string, args ...any) *dnderr.Error {
	return dnderr.Wrapf(err, format, args...).ForGame(r.gameID)
}

func (r *redisRepo) wrapWithCode(err error, code dnderr.Code, message string) *dnderr.Error {
	return dnderr.WrapWithCode(err, code, message).ForGame(r.gameID)
}

func (r *redisRepo) characterKey(name string) string {
	return fmt.Sprintf(characterKeyPattern, r.gameID, name)
}

func (r *redisRepo) creatureKey(name string) string {
	return fmt.Sprintf(creatureKeyPattern, r.gameID, name)
}

func (r *redisRepo) charactersKey() string {
	return fmt.Sprintf(charactersSetKey, r.gameID)
}

func (r *redisRepo) creaturesKey() string {
	return fmt.Sprintf(creaturesSetKey, r.gameID)
}

func (r *redisRepo) teamKey() string {
	return fmt.Sprintf(teamKeyPattern, r.gameID)
}

func (r *redisRepo) lockKey() string {
	return fmt.Sprintf(lockKeyPattern, r.gameID)
}

func (r *redisRepo) CharacterExists(ctx context.Context, name string) (bool, error) {
	if stage := r.staged(ctx); stage != nil {
		return stage.CharacterExists(ctx, name)
	}

	n, err := r.client.Exists(ctx, r.characterKey(name)).Result()
	if err != nil {
		return false, r.wrapf(err, "failed to check character %s", name)
	}
	return n > 0, nil
}

func (r *redisRepo) CreatureExists(ctx context.Context, name string) (bool, error) {
	if stage := r.staged(ctx); stage != nil {
		return stage.CreatureExists(ctx, name)
	}

	n, err := r.client.Exists(ctx, r.creatureKey(name)).Result()
	if err != nil {
		return false, r.wrapf(err, "failed to check creature %s", name)
	}
	return n > 0, nil
}

func (r *redisRepo) GetCharacter(ctx context.Context, name string) (*entities.Character, error) {
	if stage := r.staged(ctx); stage != nil {
		return stage.GetCharacter(ctx, name)
	}

	data, err := r.client.Get(ctx, r.characterKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("character not found: %s", name).About(name)
		}
		return nil, r.wrapf(err, "failed to get character %s", name)
	}

	var char entities.Character
	if err := json.Unmarshal(data, &char); err != nil {
		return nil, r.wrapWithCode(err, dnderr.CodeInternal, "failed to decode character "+name)
	}

	return &char, nil
}

func (r *redisRepo) GetCreature(ctx context.Context, name string) (*entities.Creature, error) {
	if stage := r.staged(ctx); stage != nil {
		return stage.GetCreature(ctx, name)
	}

	data, err := r.client.Get(ctx, r.creatureKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("creature not found: %s", name).About(name)
		}
		return nil, r.wrapf(err, "failed to get creature %s", name)
	}

	var creature entities.Creature
	if err := json.Unmarshal(data, &creature); err != nil {
		return nil, r.wrapWithCode(err, dnderr.CodeInternal, "failed to decode creature "+name)
	}

	return &creature, nil
}

func (r *redisRepo) CreateCharacter(ctx context.Context, char *entities.Character) error {
	if stage := r.staged(ctx); stage != nil {
		return stage.CreateCharacter(ctx, char)
	}

	if err := validateCharacter(char); err != nil {
		return err
	}

	data, err := json.Marshal(char)
	if err != nil {
		return r.wrapWithCode(err, dnderr.CodeInternal, "failed to encode character")
	}

	created, err := r.client.SetNX(ctx, r.characterKey(char.Name), string(data), 0).Result()
	if err != nil {
		return r.wrapf(err, "failed to create character %s", char.Name)
	}
	if !created {
		return dnderr.AlreadyExistsf("character %s already exists", char.Name).About(char.Name)
	}

	if err := r.client.SAdd(ctx, r.charactersKey(), char.Name).Err(); err != nil {
		return r.wrapf(err, "failed to index character %s", char.Name)
	}

	return nil
}

func (r *redisRepo) CreateCreature(ctx context.Context, creature *entities.Creature) error {
	if stage := r.staged(ctx); stage != nil {
		return stage.CreateCreature(ctx, creature)
	}

	if err := validateCreature(creature); err != nil {
		return err
	}

	data, err := json.Marshal(creature)
	if err != nil {
		return r.wrapWithCode(err, dnderr.CodeInternal, "failed to encode creature")
	}

	created, err := r.client.SetNX(ctx, r.creatureKey(creature.Name), string(data), 0).Result()
	if err != nil {
		return r.wrapf(err, "failed to create creature %s", creature.Name)
	}
	if !created {
		return dnderr.AlreadyExistsf("creature %s already exists", creature.Name).About(creature.Name)
	}

	if err := r.client.SAdd(ctx, r.creaturesKey(), creature.Name).Err(); err != nil {
		return r.wrapf(err, "failed to index creature %s", creature.Name)
	}

	return nil
}

func (r *redisRepo) SetCharacterField(ctx context.Context, name string, field entities.Field, value int) error {
	if stage := r.staged(ctx); stage != nil {
		return stage.SetCharacterField(ctx, name, field, value)
	}

	if err := validateField(field, value); err != nil {
		return err
	}

	char, err := r.GetCharacter(ctx, name)
	if err != nil {
		return err
	}
	applyCharacterField(char, field, value)

	data, err := json.Marshal(char)
	if err != nil {
		return r.wrapWithCode(err, dnderr.CodeInternal, "failed to encode character")
	}

	if err := r.client.Set(ctx, r.characterKey(name), string(data), 0).Err(); err != nil {
		return r.wrapf(err, "failed to set %s of character %s", field, name)
	}

	return nil
}

func (r *redisRepo) SetCreatureField(ctx context.Context, name string, field entities.Field, value int) error {
	if stage := r.staged(ctx); stage != nil {
		return stage.SetCreatureField(ctx, name, field, value)
	}

	if err := validateField(field, value); err != nil {
		return err
	}

	creature, err := r.GetCreature(ctx, name)
	if err != nil {
		return err
	}
	applyCreatureField(creature, field, value)

	data, err := json.Marshal(creature)
	if err != nil {
		return r.wrapWithCode(err, dnderr.CodeInternal, "failed to encode creature")
	}

	if err := r.client.Set(ctx, r.creatureKey(name), string(data), 0).Err(); err != nil {
		return r.wrapf(err, "failed to set %s of creature %s", field, name)
	}

	return nil
}

func (r *redisRepo) RemoveCreature(ctx context.Context, name string) error {
	if stage := r.staged(ctx); stage != nil {
		return stage.RemoveCreature(ctx, name)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.creatureKey(name))
	pipe.SRem(ctx, r.creaturesKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return r.wrapf(err, "failed to remove creature %s", name)
	}

	if del.Val() == 0 {
		return dnderr.NotFoundf("creature not found: %s", name).About(name)
	}

	return nil
}

func (r *redisRepo) getTeamField(ctx context.Context, field string) (int, error) {
	value, err := r.client.HGet(ctx, r.teamKey(), field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, r.wrapf(err, "failed to get team %s", field)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, r.wrapWithCode(err, dnderr.CodeInternal, "corrupt team "+field)
	}

	return n, nil
}

func (r *redisRepo) setTeamField(ctx context.Context, field string, value int) error {
	if err := validateCounter(field, value); err != nil {
		return err
	}

	if err := r.client.HSet(ctx, r.teamKey(), field, value).Err(); err != nil {
		return r.wrapf(err, "failed to set team %s", field)
	}

	return nil
}

func (r *redisRepo) GetTeamCurrency(ctx context.Context) (int, error) {
	if stage := r.staged(ctx); stage != nil {
		return stage.GetTeamCurrency(ctx)
	}

	return r.getTeamField(ctx, teamCurrencyField)
}

func (r *redisRepo) SetTeamCurrency(ctx context.Context, currency int) error {
	if stage := r.staged(ctx); stage != nil {
		return stage.SetTeamCurrency(ctx, currency)
	}

	return r.setTeamField(ctx, teamCurrencyField, currency)
}

func (r *redisRepo) GetKillCount(ctx context.Context) (int, error) {
	if stage := r.staged(ctx); stage != nil {
		return stage.GetKillCount(ctx)
	}

	return r.getTeamField(ctx, teamKillsField)
}

func (r *redisRepo) SetKillCount(ctx context.Context, kills int) error {
	if stage := r.staged(ctx); stage != nil {
		return stage.SetKillCount(ctx, kills)
	}

	return r.setTeamField(ctx, teamKillsField, kills)
}

// sortedMembers reads an index set in name order
func (r *redisRepo) sortedMembers(ctx context.Context, key string) ([]string, error) {
	names, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, r.wrapf(err, "failed to read index %s", key)
	}
	sort.Strings(names)
	return names, nil
}

func (r *redisRepo) ListCharacters(ctx context.Context) ([]*entities.Character, error) {
	if stage := r.staged(ctx); stage != nil {
		return stage.ListCharacters(ctx)
	}

	names, err := r.sortedMembers(ctx, r.charactersKey())
	if err != nil {
		return nil, err
	}

	result := make([]*entities.Character, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, name := range names {
		g.Go(func() error {
			char, err := r.GetCharacter(gctx, name)
			if err != nil {
				return err
			}
			result[i] = char
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *redisRepo) ListCreatures(ctx context.Context) ([]*entities.Creature, error) {
	if stage := r.staged(ctx); stage != nil {
		return stage.ListCreatures(ctx)
	}

	names, err := r.sortedMembers(ctx, r.creaturesKey())
	if err != nil {
		return nil, err
	}

	result := make([]*entities.Creature, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, name := range names {
		g.Go(func() error {
			creature, err := r.GetCreature(gctx, name)
			if err != nil {
				return err
			}
			result[i] = creature
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *redisRepo) Reset(ctx context.Context) error {
	if stage := r.staged(ctx); stage != nil {
		return stage.Reset(ctx)
	}

	characters, err := r.sortedMembers(ctx, r.charactersKey())
	if err != nil {
		return err
	}
	creatures, err := r.sortedMembers(ctx, r.creaturesKey())
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(characters)+len(creatures)+3)
	for _, name := range characters {
		keys = append(keys, r.characterKey(name))
	}
	for _, name := range creatures {
		keys = append(keys, r.creatureKey(name))
	}
	keys = append(keys, r.charactersKey(), r.creaturesKey(), r.teamKey())

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return r.wrap(err, "failed to reset game")
	}

	return nil
}

// redisStage holds the game as it was when the lock was taken and the copy
// the locked function works on
type redisStage struct {
	before *gameData
	repo   *InMemoryRepository
}

// staged returns the working copy when ctx is inside this store's game lock
func (r *redisRepo) staged(ctx context.Context) *InMemoryRepository {
	if stage, ok := stagedFrom(ctx, r).(*redisStage); ok {
		return stage.repo
	}
	return nil
}

// loadGame reads the whole game into memory
func (r *redisRepo) loadGame(ctx context.Context) (*gameData, error) {
	chars, err := r.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	creatures, err := r.ListCreatures(ctx)
	if err != nil {
		return nil, err
	}
	team, err := r.client.HGetAll(ctx, r.teamKey()).Result()
	if err != nil {
		return nil, r.wrap(err, "failed to get team")
	}

	data := newGameData()
	for _, char := range chars {
		data.characters[char.Name] = char
	}
	for _, creature := range creatures {
		data.creatures[creature.Name] = creature
	}
	for field, dst := range map[string]*int{teamCurrencyField: &data.team.Currency, teamKillsField: &data.team.KillCount} {
		value, ok := team[field]
		if !ok {
			continue
		}
		if *dst, err = strconv.Atoi(value); err != nil {
			return nil, r.wrapWithCode(err, dnderr.CodeInternal, "corrupt team "+field)
		}
	}

	return data, nil
}

// flush writes the difference between two copies of the game in one
// MULTI/EXEC block
func (r *redisRepo) flush(ctx context.Context, before, after *gameData) error {
	pipe := r.client.TxPipeline()

	for _, name := range slices.Sorted(maps.Keys(after.characters)) {
		char := after.characters[name]
		old, existed := before.characters[name]
		if existed && *old == *char {
			continue
		}
		data, err := json.Marshal(char)
		if err != nil {
			return r.wrapWithCode(err, dnderr.CodeInternal, "failed to encode character")
		}
		pipe.Set(ctx, r.characterKey(name), string(data), 0)
		if !existed {
			pipe.SAdd(ctx, r.charactersKey(), name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(before.characters)) {
		if _, kept := after.characters[name]; !kept {
			pipe.Del(ctx, r.characterKey(name))
			pipe.SRem(ctx, r.charactersKey(), name)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(after.creatures)) {
		creature := after.creatures[name]
		old, existed := before.creatures[name]
		if existed && *old == *creature {
			continue
		}
		data, err := json.Marshal(creature)
		if err != nil {
			return r.wrapWithCode(err, dnderr.CodeInternal, "failed to encode creature")
		}
		pipe.Set(ctx, r.creatureKey(name), string(data), 0)
		if !existed {
			pipe.SAdd(ctx, r.creaturesKey(), name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(before.creatures)) {
		if _, kept := after.creatures[name]; !kept {
			pipe.Del(ctx, r.creatureKey(name))
			pipe.SRem(ctx, r.creaturesKey(), name)
		}
	}

	if after.team != before.team {
		pipe.HSet(ctx, r.teamKey(),
			teamCurrencyField, after.team.Currency,
			teamKillsField, after.team.KillCount,
		)
	}

	if pipe.Len() == 0 {
		return nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return r.wrap(err, "failed to commit game")
	}
	return nil
}

// WithGameLock takes a lease on the game key with SET NX PX, polling until
// LockWait runs out, and releases it with a compare-and-delete script.
// Inside the lock the game is loaded once and fn works on a copy; the
// changes reach Redis in one transaction only when fn returns nil.
func (r *redisRepo) WithGameLock(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return dnderr.InvalidArgument("lock function cannot be nil")
	}

	token := r.uuidGenerator.New()
	key := r.lockKey()

	if err := r.acquire(ctx, key, token); err != nil {
		return err
	}
	defer func() {
		// release even when the caller's context is already cancelled
		_ = releaseScript.Run(context.WithoutCancel(ctx), r.client, []string{key}, token).Err()
	}()

	before, err := r.loadGame(ctx)
	if err != nil {
		return err
	}
	stage := &redisStage{before: before, repo: newInMemoryFrom(before.clone())}

	if err := fn(withStaged(ctx, r, stage)); err != nil {
		return err
	}

	return r.flush(ctx, stage.before, stage.repo.state)
}

func (r *redisRepo) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(r.lockWait)
	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.lockTTL).Result()
		if err != nil {
			return r.wrap(err, "failed to acquire game lock")
		}
		if ok {
			return nil
		}

		if time.Now().After(deadline) {
			return dnderr.Conflictf("game %s is busy", r.gameID).ForGame(r.gameID)
		}

		select {
		case <-ctx.Done():
			return r.wrap(ctx.Err(), "waiting for game lock")
		case <-ticker.C:
		}
	}
}
