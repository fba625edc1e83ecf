package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
)

func (c *cli) info(cmd *cobra.Command, args []string) error {
	name := args[0]

	char, err := c.provider.CharacterService.GetCharacter(cmd.Context(), name)
	if err == nil {
		fmt.Fprintf(c.out, "%s is a %s with %d life and %d strength (%s reach)\n",
			char.Name, char.Variety, char.Life, char.Strength, char.Reach)
		return nil
	}
	if !dnderr.IsNotFound(err) {
		return err
	}

	creature, err := c.provider.CreatureService.GetCreature(cmd.Context(), name)
	if err == nil {
		fmt.Fprintf(c.out, "%s is a creature with %d life and %d strength (%s reach)\n",
			creature.Name, creature.Life, creature.Strength, creature.Reach)
		return nil
	}
	if !dnderr.IsNotFound(err) {
		return err
	}

	return fmt.Errorf("nobody named %s is in the arena", name)
}

func (c *cli) team(cmd *cobra.Command, args []string) error {
	team, err := c.provider.TeamService.Status(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Money: %d\nKills: %d\n", team.Currency, team.KillCount)
	return nil
}

func (c *cli) list(cmd *cobra.Command, args []string) error {
	chars, err := c.provider.CharacterService.ListCharacters(cmd.Context())
	if err != nil {
		return err
	}
	creatures, err := c.provider.CreatureService.ListCreatures(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Characters (%d)\n", len(chars))
	for _, ch := range chars {
		fmt.Fprintf(c.out, "  %-16s %-12s life %-4d strength %-4d %s\n", ch.Name, ch.Variety, ch.Life, ch.Strength, ch.Reach)
	}
	fmt.Fprintf(c.out, "Creatures (%d)\n", len(creatures))
	for _, cr := range creatures {
		fmt.Fprintf(c.out, "  %-16s life %-4d strength %-4d %s\n", cr.Name, cr.Life, cr.Strength, cr.Reach)
	}
	return nil
}
