package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store names accepted by ARENA_STORE
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Discord   DiscordConfig
	Store     StoreConfig
	Redis     RedisConfig
	SQLite    SQLiteConfig
	Telemetry TelemetryConfig

	// GameID scopes every stored record, so one backend can host many games
	GameID   string `env:"GAME_ID" envDefault:"default"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// StoreConfig selects the game state backend
type StoreConfig struct {
	// Kind defaults to memory for the bot and sqlite for the CLI
	Kind     string        `env:"ARENA_STORE"`
	LockWait time.Duration `env:"ARENA_LOCK_WAIT" envDefault:"5s"`
}

// RedisConfig holds Redis-specific configuration. URL wins over Addr.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// SQLiteConfig holds the database file location
type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" envDefault:"arena.db"`
}

// TelemetryConfig controls OTLP trace export
type TelemetryConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"arena-bot"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return parse(env.Options{}, StoreMemory)
}

// LoadFrom loads configuration from the given variables instead of the process environment
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars}, StoreMemory)
}

// LoadCLI loads configuration for a process that runs one command and exits.
// The game has to outlive the process, so the store defaults to sqlite and
// memory is refused.
func LoadCLI() (*Config, error) {
	return loadCLI(env.Options{})
}

// LoadCLIFrom is LoadCLI over the given variables
func LoadCLIFrom(vars map[string]string) (*Config, error) {
	return loadCLI(env.Options{Environment: vars})
}

func loadCLI(opts env.Options) (*Config, error) {
	cfg, err := parse(opts, StoreSQLite)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Kind == StoreMemory {
		return nil, fmt.Errorf("ARENA_STORE=memory loses the game when the command exits, use sqlite or redis")
	}
	return cfg, nil
}

// LoadBot loads configuration and requires Discord credentials
func LoadBot() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateDiscord(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(opts env.Options, defaultStore string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Store.Kind = strings.ToLower(strings.TrimSpace(cfg.Store.Kind))
	if cfg.Store.Kind == "" {
		cfg.Store.Kind = defaultStore
	}
	switch cfg.Store.Kind {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		return nil, fmt.Errorf("ARENA_STORE must be one of memory, redis, sqlite, got %q", cfg.Store.Kind)
	}

	if strings.TrimSpace(cfg.GameID) == "" {
		return nil, fmt.Errorf("GAME_ID cannot be empty")
	}

	return cfg, nil
}

// ValidateDiscord checks the fields the bot cannot start without
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	return nil
}
