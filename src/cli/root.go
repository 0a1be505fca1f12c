// Package cli wires the syntax library, the batch checker and the
// configuration file into the propositions command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eriklarko/propositions/src/config"
	"github.com/eriklarko/propositions/src/environment"
	"github.com/eriklarko/propositions/src/syntax"
	"github.com/eriklarko/propositions/src/tui"
)

// commands annotated with configOptional run with defaults when the config
// file does not exist, even if its path was given explicitly
const configOptional = "config-optional"

type app struct {
	// flags
	configPath   string
	extended     bool
	notationName string
	verbose      bool
	interactive  bool

	// set up before any command runs
	config   *config.Config
	grammar  *syntax.Grammar
	notation syntax.Notation
}

// NewRootCommand builds the propositions command tree. Every call returns a
// fresh tree, so tests can run commands independently.
//
// Example usage:
//
//	root := cli.NewRootCommand()
//	root.SetArgs([]string{"polish", "((p->q)&~r)"})
//	err := root.Execute() // prints &->pq~r
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "propositions",
		Short: "Parse, print and rewrite propositional logic formulas",
		Long: `propositions validates propositional formulas written in fully parenthesized
infix notation or in Polish notation, prints them in canonical form and
rewrites them by substituting variables or operators.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath, "path to the configuration file")
	flags.BoolVar(&a.extended, "extended", false, "also accept <->, -&, -| and + as binary operators")
	flags.StringVar(&a.notationName, "notation", "", "notation formulas are read in, infix or polish (default from the config file)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.BoolVar(&a.interactive, "interactive", false, "force prompts on or off regardless of the terminal")

	root.AddCommand(
		a.parseCommand(),
		a.polishCommand(),
		a.fromPolishCommand(),
		a.checkCommand(),
		a.substituteVariablesCommand(),
		a.substituteOperatorsCommand(),
		a.randomCommand(),
		a.replCommand(),
		a.initCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if cmd.Flags().Changed("interactive") {
		environment.ForceSetIsInteractive(a.interactive)
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	if a.extended {
		cfg.Grammar = syntax.Extended.Name()
	}
	if a.notationName != "" {
		cfg.Notation = a.notationName
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.config = cfg
	if a.grammar, err = cfg.GrammarTable(); err != nil {
		return err
	}
	if a.notation, err = cfg.InputNotation(); err != nil {
		return err
	}

	slog.Debug("configuration loaded",
		"path", cfg.Path,
		"grammar", cfg.Grammar,
		"notation", cfg.Notation,
		"workers", cfg.Workers,
	)
	return nil
}

// loadConfig reads the config file. A missing file is only an error when its
// path was given explicitly to a command that needs it.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(a.configPath)
	if err == nil {
		return cfg, nil
	}

	optional := !cmd.Flags().Changed("config") || cmd.Annotations[configOptional] == "true"
	if os.IsNotExist(err) && optional {
		slog.Debug("no config file found, using defaults", "path", a.configPath)
		cfg = config.Default()
		cfg.Path = a.configPath
		return cfg, nil
	}
	return nil, fmt.Errorf("failed to load config: %w", err)
}

func (a *app) newTUI(cmd *cobra.Command) *tui.TUI {
	return tui.NewWithIO(cmd.InOrStdin(), cmd.OutOrStdout(), environment.IsInteractive())
}

// parseInput parses a formula given on the command line in the configured
// notation.
func (a *app) parseInput(text string) (*syntax.Formula, error) {
	f, err := a.grammar.ParseAs(a.notation, text)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a formula: %w", text, err)
	}
	return f, nil
}
