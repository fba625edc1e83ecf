package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/arena-bot/internal/app"
	"github.com/KirkDiggler/arena-bot/internal/config"
	"github.com/KirkDiggler/arena-bot/internal/handlers/discord"
	"github.com/KirkDiggler/arena-bot/internal/telemetry"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.LoadBot()
	if err != nil {
		log := app.NewLogger(os.Stderr, "info")
		log.Fatal().Err(err).Msg("failed to load config")
	}

	log := app.NewLogger(os.Stderr, cfg.LogLevel)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up telemetry")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("failed to flush traces")
			}
		}()
	}

	store, err := app.OpenStore(ctx, cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open game store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close game store")
		}
	}()

	serviceProvider := app.NewProvider(cfg, store.Repository, &log, app.ProviderOptions{})

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord session")
	}

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
		Logger:          &log,
	})
	dg.AddHandler(discord.RecoverMiddleware(&log, discord.CommandName, handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		log.Error().Err(err).Msg("failed to open Discord connection")
		return
	}
	defer func() {
		if err := dg.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close Discord connection")
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		log.Error().Err(err).Msg("failed to register commands")
		return
	}
	if cfg.Discord.GuildID == "" {
		log.Info().Msg("registered global commands (may take up to 1 hour to propagate)")
	}

	log.Info().Str("game_id", cfg.GameID).Str("store", cfg.Store.Kind).Msg("arena bot is running, press CTRL-C to exit")
	<-ctx.Done()
	log.Info().Msg("shutting down")
}
