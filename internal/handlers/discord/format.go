package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	"github.com/bwmarrin/discordgo"
)

const (
	colorSuccess  = 0x2ecc71 // Green
	colorInfo     = 0x3498db // Blue
	colorCreature = 0xe67e22 // Orange
)

// outcomeResponse narrates a committed outcome publicly and explains a
// refusal to the caller only
func outcomeResponse(title string, outcome *entities.Outcome) *discordgo.InteractionResponseData {
	if !outcome.Success {
		return rejectedResponse(outcome.Reason.Message())
	}

	lines := make([]string, 0, len(outcome.Events))
	for _, e := range outcome.Events {
		lines = append(lines, e.Message())
	}

	return embedResponse(&discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(lines, "\n"),
		Color:       colorSuccess,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Action " + outcome.ActionID,
		},
	})
}

func rejectedResponse(message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func embedResponse(embed *discordgo.MessageEmbed) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
}

func characterEmbed(c *entities.Character) *discordgo.MessageEmbed {
	status := "Alive"
	if !c.IsAlive() {
		status = "💀 Dead"
	}

	return &discordgo.MessageEmbed{
		Title: c.Name,
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Variety", Value: c.Variety.String(), Inline: true},
			{Name: "Reach", Value: c.Reach.String(), Inline: true},
			{Name: "Status", Value: status, Inline: true},
			{Name: "❤️ Life", Value: fmt.Sprintf("%d", c.Life), Inline: true},
			{Name: "💪 Strength", Value: fmt.Sprintf("%d", c.Strength), Inline: true},
		},
	}
}

func creatureEmbed(c *entities.Creature) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: c.Name,
		Color: colorCreature,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reach", Value: c.Reach.String(), Inline: true},
			{Name: "❤️ Life", Value: fmt.Sprintf("%d", c.Life), Inline: true},
			{Name: "💪 Strength", Value: fmt.Sprintf("%d", c.Strength), Inline: true},
		},
	}
}

func teamEmbed(team *entities.Team) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🏆 Team",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Money", Value: fmt.Sprintf("%d", team.Currency), Inline: true},
			{Name: "☠️ Kills", Value: fmt.Sprintf("%d", team.KillCount), Inline: true},
		},
	}
}

func rosterEmbed(chars []*entities.Character, creatures []*entities.Creature) *discordgo.MessageEmbed {
	var team strings.Builder
	for _, c := range chars {
		team.WriteString(fmt.Sprintf("**%s** (%s) ❤️ %d 💪 %d\n", c.Name, c.Variety, c.Life, c.Strength))
	}
	if team.Len() == 0 {
		team.WriteString("No characters yet. Use `/arena create`")
	}

	var foes strings.Builder
	for _, c := range creatures {
		foes.WriteString(fmt.Sprintf("**%s** (%s reach) ❤️ %d 💪 %d\n", c.Name, c.Reach, c.Life, c.Strength))
	}
	if foes.Len() == 0 {
		foes.WriteString("The arena is empty. Use `/arena spawn`")
	}

	return &discordgo.MessageEmbed{
		Title: "📜 Arena",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Characters", Value: team.String()},
			{Name: "Creatures", Value: foes.String()},
		},
	}
}
