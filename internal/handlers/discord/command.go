package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Command is a parsed /arena subcommand with its string options
type Command struct {
	Name    string
	Options map[string]string
}

// ParseCommand extracts the subcommand and its options from slash command data
func ParseCommand(data discordgo.ApplicationCommandInteractionData) (*Command, error) {
	if len(data.Options) == 0 {
		return nil, fmt.Errorf("missing subcommand")
	}

	sub := data.Options[0]
	if sub.Type != discordgo.ApplicationCommandOptionSubCommand {
		return nil, fmt.Errorf("unexpected option %s", sub.Name)
	}

	cmd := &Command{
		Name:    sub.Name,
		Options: make(map[string]string, len(sub.Options)),
	}
	for _, opt := range sub.Options {
		if opt.Type != discordgo.ApplicationCommandOptionString {
			return nil, fmt.Errorf("option %s must be text", opt.Name)
		}
		cmd.Options[opt.Name] = strings.TrimSpace(opt.StringValue())
	}

	return cmd, nil
}
