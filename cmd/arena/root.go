package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/arena-bot/internal/app"
	"github.com/KirkDiggler/arena-bot/internal/config"
	"github.com/KirkDiggler/arena-bot/internal/entities"
	"github.com/KirkDiggler/arena-bot/internal/services"
	characterService "github.com/KirkDiggler/arena-bot/internal/services/character"
	"github.com/KirkDiggler/arena-bot/internal/telemetry"
)

const traceFlushTimeout = 5 * time.Second

// rejectedError reports an action the game rules refused
type rejectedError struct {
	reason entities.Reason
}

func (e *rejectedError) Error() string {
	return "refused: " + e.reason.Message()
}

type cli struct {
	out     io.Writer
	errOut  io.Writer
	load    func() (*config.Config, error)
	seed    int64
	verbose bool

	store        *app.Store
	provider     *services.Provider
	flushTracing func(context.Context) error
}

// run executes the CLI with args and closes the store whatever the outcome
func run(ctx context.Context, args []string, out, errOut io.Writer, load func() (*config.Config, error)) error {
	c := &cli{out: out, errOut: errOut, load: load}

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if closeErr := c.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "arena",
		Short:             "Play the arena from the command line",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
	}
	root.PersistentFlags().Int64Var(&c.seed, "seed", 0, "seed the dice for a reproducible game")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at the configured LOG_LEVEL instead of warn")

	root.AddCommand(
		&cobra.Command{
			Use:     "create [name] [variety]",
			Short:   "Create a character (dwarf, elf, healer, wizard, necromancer)",
			Example: "arena create Gimli dwarf",
			Args:    cobra.ExactArgs(2),
			RunE:    c.create,
		},
		&cobra.Command{
			Use:   "spawn",
			Short: "Spawn a creature",
			Args:  cobra.NoArgs,
			RunE:  c.spawn,
		},
		&cobra.Command{
			Use:     "attack [character] [creature]",
			Short:   "Attack a creature",
			Example: "arena attack Gimli Python#123",
			Args:    cobra.ExactArgs(2),
			RunE:    c.attack,
		},
		&cobra.Command{
			Use:   "spell [caster] [target]",
			Short: "Cast the caster's spell on a character or creature",
			Args:  cobra.ExactArgs(2),
			RunE:  c.spell,
		},
		&cobra.Command{
			Use:   "evolve [character]",
			Short: "Spend 4 coins on a chance to grow a character",
			Args:  cobra.ExactArgs(1),
			RunE:  c.evolve,
		},
		&cobra.Command{
			Use:   "info [name]",
			Short: "Show a character or creature",
			Args:  cobra.ExactArgs(1),
			RunE:  c.info,
		},
		&cobra.Command{
			Use:   "team",
			Short: "Show the team's money and kills",
			Args:  cobra.NoArgs,
			RunE:  c.team,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List characters and creatures",
			Args:  cobra.NoArgs,
			RunE:  c.list,
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Start the arena over",
			Args:  cobra.NoArgs,
			RunE:  c.reset,
		},
	)

	return root
}

func (c *cli) open(cmd *cobra.Command, args []string) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}

	level := "warn"
	if c.verbose {
		level = cfg.LogLevel
	}
	log := app.NewLogger(c.errOut, level)

	if cfg.Telemetry.Enabled {
		c.flushTracing, err = telemetry.Setup(cmd.Context(), cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("set up telemetry: %w", err)
		}
	}

	c.store, err = app.OpenStore(cmd.Context(), cfg, &log)
	if err != nil {
		return err
	}
	c.provider = app.NewProvider(cfg, c.store.Repository, &log, app.ProviderOptions{Seed: c.seed})
	return nil
}

func (c *cli) close() error {
	var err error
	if c.store != nil {
		err = c.store.Close()
		c.store = nil
	}

	if c.flushTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
		defer cancel()
		if flushErr := c.flushTracing(ctx); flushErr != nil && err == nil {
			err = fmt.Errorf("flush traces: %w", flushErr)
		}
		c.flushTracing = nil
	}

	return err
}

// narrate prints a committed outcome's events, one per line
func (c *cli) narrate(outcome *entities.Outcome) error {
	if !outcome.Success {
		return &rejectedError{reason: outcome.Reason}
	}
	for _, e := range outcome.Events {
		fmt.Fprintln(c.out, e.Message())
	}
	return nil
}

func (c *cli) create(cmd *cobra.Command, args []string) error {
	variety, err := entities.ParseVariety(args[1])
	if err != nil {
		variety = entities.VarietyUnknown
	}

	out, err := c.provider.CharacterService.CreateCharacter(cmd.Context(), &characterService.CreateCharacterInput{
		Name:    args[0],
		Variety: variety,
	})
	if err != nil {
		return err
	}
	return c.narrate(out.Outcome)
}

func (c *cli) spawn(cmd *cobra.Command, args []string) error {
	out, err := c.provider.CreatureService.Spawn(cmd.Context())
	if err != nil {
		return err
	}
	return c.narrate(out.Outcome)
}

func (c *cli) attack(cmd *cobra.Command, args []string) error {
	outcome, err := c.provider.CombatService.Attack(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return c.narrate(outcome)
}

func (c *cli) spell(cmd *cobra.Command, args []string) error {
	outcome, err := c.provider.CombatService.LaunchSpell(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return c.narrate(outcome)
}

func (c *cli) evolve(cmd *cobra.Command, args []string) error {
	outcome, err := c.provider.CombatService.Evolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return c.narrate(outcome)
}

func (c *cli) reset(cmd *cobra.Command, args []string) error {
	outcome, err := c.provider.TeamService.Reset(cmd.Context())
	if err != nil {
		return err
	}
	return c.narrate(outcome)
}
