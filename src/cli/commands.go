package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eriklarko/propositions/src/checker"
	"github.com/eriklarko/propositions/src/config"
	"github.com/eriklarko/propositions/src/randformula"
	"github.com/eriklarko/propositions/src/syntax"
)

func (a *app) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <formula>",
		Short: "Validate a formula and describe it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.parseInput(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "formula:   %s\n", f)
			fmt.Fprintf(out, "polish:    %s\n", f.Polish())
			fmt.Fprintf(out, "kind:      %s\n", f.Kind())
			fmt.Fprintf(out, "variables: %s\n", strings.Join(f.Variables(), ", "))
			fmt.Fprintf(out, "operators: %s\n", strings.Join(f.Operators(), ", "))
			fmt.Fprintf(out, "depth:     %d\n", f.Depth())
			return nil
		},
	}
}

func (a *app) polishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "polish <formula>",
		Short: "Convert a formula in standard notation to Polish notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.grammar.Parse(args[0])
			if err != nil {
				return fmt.Errorf("'%s' is not a formula: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Polish())
			return nil
		},
	}
}

func (a *app) fromPolishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "from-polish <text>",
		Short: "Convert a formula in Polish notation to standard notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.grammar.ParsePolish(args[0])
			if err != nil {
				return fmt.Errorf("'%s' is not a formula: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), f)
			return nil
		},
	}
}

func (a *app) checkCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check that every line of a file is a formula",
		Long: `Check parses every line of a file, or of stdin when the file is "-".
Blank lines and lines starting with # are skipped. The command fails if any
line is not a formula.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown format '%s', expected 'text' or 'yaml'", format)
			}

			var input io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer file.Close()
				input = file
			}

			fc := checker.New(a.grammar, a.notation, a.config.Workers)
			report, err := fc.CheckReader(cmd.Context(), input)
			if err != nil {
				return err
			}

			if format == "yaml" {
				err = report.WriteYAML(cmd.OutOrStdout())
			} else {
				err = report.WriteText(cmd.OutOrStdout())
			}
			if err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if report.HasInvalidFormulas() {
				return fmt.Errorf("%d of %d lines are not formulas", len(report.Invalid), report.Total())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format, text or yaml")
	return cmd
}

func (a *app) substituteVariablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subst-vars <formula> <map.csv>",
		Short: "Replace variables by formulas",
		Long: `Replaces every occurrence of the variables listed in the map file by the
formula next to it. The map file holds one key,formula record per line with
formulas in standard notation. Relative paths are looked up in the
substitutions directory of the config file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.substitute(cmd, args[0], args[1], (*syntax.Formula).SubstituteVariables)
		},
	}
}

func (a *app) substituteOperatorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subst-ops <formula> <map.csv>",
		Short: "Rewrite operators and constants using templates",
		Long: `Rewrites every occurrence of the operators and constants listed in the map
file using the template next to it. In a template p stands for the first
operand and q for the second.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.substitute(cmd, args[0], args[1], (*syntax.Formula).SubstituteOperators)
		},
	}
}

type substitution func(f *syntax.Formula, substitutions map[string]*syntax.Formula) (*syntax.Formula, error)

func (a *app) substitute(cmd *cobra.Command, text, mapFile string, apply substitution) error {
	f, err := a.parseInput(text)
	if err != nil {
		return err
	}

	path := a.config.SubstitutionPath(mapFile)
	substitutions, err := config.ReadSubstitutionMap(path, a.grammar)
	if err != nil {
		return err
	}
	slog.Debug("read substitution map", "path", path, "entries", len(substitutions))

	result, err := apply(f, substitutions)
	if err != nil {
		return fmt.Errorf("failed to substitute using %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Format(a.notation))
	return nil
}

func (a *app) randomCommand() *cobra.Command {
	var (
		count     int
		depth     int
		seed      int64
		variables []string
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random formulas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}
			if invalid := lo.Reject(variables, func(v string, _ int) bool { return syntax.IsVariable(v) }); len(invalid) > 0 {
				return fmt.Errorf("invalid variable names %v, expected names like p, q7 or x12", invalid)
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			slog.Debug("generating random formulas", "count", count, "depth", depth, "seed", seed)

			gen := randformula.New(a.grammar, seed).WithMaxDepth(depth)
			if len(variables) > 0 {
				gen.WithVariables(variables...)
			}
			for _, f := range gen.Formulas(count) {
				fmt.Fprintln(cmd.OutOrStdout(), f.Format(a.notation))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "number of formulas to print")
	cmd.Flags().IntVar(&depth, "depth", 4, "maximum depth of the formulas")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the random generator (default random)")
	cmd.Flags().StringSliceVar(&variables, "variables", nil, "variable names to use")
	return cmd
}

func (a *app) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read formulas line by line and print them in both notations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui := a.newTUI(cmd)
			if ui.IsInteractive() {
				ui.Printf("Reading %s formulas (%s grammar), type quit to stop.\n", a.notation, a.grammar.Name())
			}

			return ui.Loop("formula> ", func(line string) error {
				f, err := a.parseInput(line)
				if err != nil {
					return err
				}
				ui.Printf("%s\t%s\n", f, f.Polish())
				return nil
			})
		},
	}
}

func (a *app) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the current configuration to the config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{configOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.config.Path
			if _, err := os.Stat(path); err == nil && !force {
				ui := a.newTUI(cmd)
				if !ui.IsInteractive() || !ui.AskForever("%s already exists, overwrite it? [y/N] ", path) {
					return fmt.Errorf("config file %s already exists, use --force to overwrite it", path)
				}
			}

			if err := a.config.Write(); err != nil {
				return err
			}
			slog.Info("wrote config file", "path", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
