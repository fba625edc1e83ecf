package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/services"
	characterService "github.com/KirkDiggler/arena-bot/internal/services/character"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// CommandName is the root slash command
const CommandName = "arena"

const commandTimeout = 10 * time.Second

// Handler handles all Discord interactions
type Handler struct {
	services *services.Provider
	log      zerolog.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
	Logger          *zerolog.Logger
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.ServiceProvider == nil {
		panic("service provider is required")
	}

	h := &Handler{
		services: cfg.ServiceProvider,
		log:      zerolog.Nop(),
	}
	if cfg.Logger != nil {
		h.log = cfg.Logger.With().Str("component", "discord").Logger()
	}

	return h
}

// Commands returns the slash command definitions
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	varietyChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(entities.Varieties()))
	for _, v := range entities.Varieties() {
		varietyChoices = append(varietyChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  strings.ToUpper(v.String()[:1]) + v.String()[1:],
			Value: v.String(),
		})
	}

	stringOption := func(name, description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: description,
			Required:    true,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Fight creatures in the arena",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "create",
					Description: "Create a new character for the team",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						stringOption("name", "Character name"),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "variety",
							Description: "Character variety",
							Required:    true,
							Choices:     varietyChoices,
						},
					},
				},
				{
					Name:        "spawn",
					Description: "Spawn a new creature",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "attack",
					Description: "Attack a creature with a character",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						stringOption("character", "Attacking character"),
						stringOption("creature", "Creature to attack"),
					},
				},
				{
					Name:        "spell",
					Description: "Cast the character's spell",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						stringOption("character", "Casting character"),
						stringOption("target", "Character or creature to target"),
					},
				},
				{
					Name:        "evolve",
					Description: "Spend 4 coins on a chance to grow a character",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						stringOption("character", "Character to evolve"),
					},
				},
				{
					Name:        "info",
					Description: "Show a character or creature",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						stringOption("name", "Character or creature name"),
					},
				},
				{
					Name:        "team",
					Description: "Show the team's money and kills",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "list",
					Description: "List characters and creatures",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "reset",
					Description: "Start the arena over",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	for _, cmd := range h.Commands() {
		_, err := s.ApplicationCommandCreate(appID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		h.log.Info().Str("command", cmd.Name).Str("guild_id", guildID).Msg("registered command")
	}

	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != CommandName {
		return
	}

	cmd, err := ParseCommand(data)
	if err != nil {
		respondWithError(s, i, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	log := h.log.With().Str("subcommand", cmd.Name).Str("user", interactionUser(i)).Logger()

	resp, err := h.Execute(ctx, cmd)
	if err != nil {
		log.Error().Err(err).Str("code", string(dnderr.GetCode(err))).Fields(dnderr.GetMeta(err)).Msg("command failed")
		respondWithError(s, i, failureMessage(err))
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: resp,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to respond to interaction")
	}
}

// Execute runs a parsed command against the rules services and builds the reply
func (h *Handler) Execute(ctx context.Context, cmd *Command) (*discordgo.InteractionResponseData, error) {
	switch cmd.Name {
	case "create":
		variety, err := entities.ParseVariety(cmd.Options["variety"])
		if err != nil {
			// the rules report an unknown variety themselves
			variety = entities.VarietyUnknown
		}
		out, err := h.services.CharacterService.CreateCharacter(ctx, &characterService.CreateCharacterInput{
			Name:    cmd.Options["name"],
			Variety: variety,
		})
		if err != nil {
			if dnderr.IsInvalidArgument(err) {
				return rejectedResponse(err.Error()), nil
			}
			return nil, err
		}
		return outcomeResponse("🧙 New Character", out.Outcome), nil

	case "spawn":
		out, err := h.services.CreatureService.Spawn(ctx)
		if err != nil {
			return nil, err
		}
		return outcomeResponse("👹 A Creature Appears", out.Outcome), nil

	case "attack":
		outcome, err := h.services.CombatService.Attack(ctx, cmd.Options["character"], cmd.Options["creature"])
		if err != nil {
			return nil, err
		}
		return outcomeResponse("⚔️ Attack", outcome), nil

	case "spell":
		outcome, err := h.services.CombatService.LaunchSpell(ctx, cmd.Options["character"], cmd.Options["target"])
		if err != nil {
			return nil, err
		}
		return outcomeResponse("✨ Spell", outcome), nil

	case "evolve":
		outcome, err := h.services.CombatService.Evolve(ctx, cmd.Options["character"])
		if err != nil {
			return nil, err
		}
		return outcomeResponse("🧬 Evolution", outcome), nil

	case "info":
		return h.info(ctx, cmd.Options["name"])

	case "team":
		team, err := h.services.TeamService.Status(ctx)
		if err != nil {
			return nil, err
		}
		return embedResponse(teamEmbed(team)), nil

	case "list":
		chars, err := h.services.CharacterService.ListCharacters(ctx)
		if err != nil {
			return nil, err
		}
		creatures, err := h.services.CreatureService.ListCreatures(ctx)
		if err != nil {
			return nil, err
		}
		return embedResponse(rosterEmbed(chars, creatures)), nil

	case "reset":
		outcome, err := h.services.TeamService.Reset(ctx)
		if err != nil {
			return nil, err
		}
		return outcomeResponse("🧹 Reset", outcome), nil

	default:
		return rejectedResponse(fmt.Sprintf("Unknown command %q", cmd.Name)), nil
	}
}

// info looks the name up among characters first, then creatures
func (h *Handler) info(ctx context.Context, name string) (*discordgo.InteractionResponseData, error) {
	char, err := h.services.CharacterService.GetCharacter(ctx, name)
	if err == nil {
		return embedResponse(characterEmbed(char)), nil
	}
	if !dnderr.IsNotFound(err) {
		return nil, err
	}

	creature, err := h.services.CreatureService.GetCreature(ctx, name)
	if err == nil {
		return embedResponse(creatureEmbed(creature)), nil
	}
	if !dnderr.IsNotFound(err) {
		return nil, err
	}

	return rejectedResponse(fmt.Sprintf("Nobody named %s is in the arena", name)), nil
}

// failureMessage tells the player whether trying again can help
func failureMessage(err error) string {
	if dnderr.IsRetryable(err) {
		return "The arena is busy, try again in a moment"
	}
	return "Something went wrong in the arena"
}

func interactionUser(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
