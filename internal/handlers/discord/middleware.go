package discord

import (
	"fmt"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// RecoverMiddleware wraps handler functions to recover from panics
func RecoverMiddleware(log *zerolog.Logger, handlerName string, handler func(*discordgo.Session, *discordgo.InteractionCreate)) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("handler", handlerName).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")

				respondWithError(s, i, fmt.Sprintf("An unexpected error occurred: %v", r))
			}
		}()

		handler(s, i)
	}
}

// respondWithError attempts to send an error message to the user
func respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	content := fmt.Sprintf("❌ %s", message)

	// Try different response methods based on interaction state
	responses := []func() error{
		// Try responding if not yet responded
		func() error {
			return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			})
		},
		// Try followup if already responded
		func() error {
			_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			})
			return err
		},
	}

	for _, respond := range responses {
		if err := respond(); err == nil {
			return
		}
	}
}
