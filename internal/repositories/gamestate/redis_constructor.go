package gamestate

import (
	"github.com/KirkDiggler/arena-bot/internal/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedis creates a Redis-backed game store with default lock settings
func NewRedis(client redis.UniversalClient, gameID string) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:        client,
		GameID:        gameID,
		UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
	})
}
