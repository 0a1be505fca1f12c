package checker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/eriklarko/propositions/src/config"
	"github.com/eriklarko/propositions/src/syntax"
)

const maxLineLength = 16 * 1024 * 1024

// FormulaChecker parses batches of formulas with a fixed grammar and notation.
type FormulaChecker struct {
	grammar  *syntax.Grammar
	notation syntax.Notation
	workers  int
}

// New creates a checker parsing formulas written in the given notation.
// At most `workers` lines are parsed at the same time.
func New(grammar *syntax.Grammar, notation syntax.Notation, workers int) *FormulaChecker {
	return &FormulaChecker{
		grammar:  grammar,
		notation: notation,
		workers:  max(workers, 1),
	}
}

func NewFromConfig(cfg *config.Config) (*FormulaChecker, error) {
	grammar, err := cfg.GrammarTable()
	if err != nil {
		return nil, err
	}
	notation, err := cfg.InputNotation()
	if err != nil {
		return nil, err
	}
	return New(grammar, notation, cfg.Workers), nil
}

// CheckFormula parses a single formula.
func (fc *FormulaChecker) CheckFormula(text string) (*syntax.Formula, error) {
	formula, err := fc.grammar.ParseAs(fc.notation, text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", text, err)
	}
	return formula, nil
}

type line struct {
	number int
	text   string
}

type outcome struct {
	formula *syntax.Formula
	err     error
}

// Check parses every line and reports which ones are formulas. Blank lines
// and lines starting with # are skipped. Entries in the report keep the order
// of the input. An error is only returned if ctx is done before all lines
// were checked.
func (fc *FormulaChecker) Check(ctx context.Context, lines []string) (*Report, error) {
	var inputs []line
	for i, text := range lines {
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		inputs = append(inputs, line{number: i + 1, text: text})
	}

	outcomes := make([]outcome, len(inputs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(fc.workers)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			formula, err := fc.CheckFormula(in.text)
			outcomes[i] = outcome{formula: formula, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("checking formulas was interrupted: %w", err)
	}

	report := &Report{}
	for i, in := range inputs {
		o := outcomes[i]
		if o.err != nil {
			slog.Debug("invalid formula", "line", in.number, "input", in.text, "error", o.err)
		}
		report.RecordDecision(in.number, in.text, o.formula, o.err)
	}

	slog.Info("checked formulas",
		"grammar", fc.grammar.Name(),
		"notation", fc.notation,
		"valid", len(report.Valid),
		"invalid", len(report.Invalid),
	)
	return report, nil
}

// CheckReader is like Check but reads the lines from r.
func (fc *FormulaChecker) CheckReader(ctx context.Context, r io.Reader) (*Report, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read formulas: %w", err)
	}

	return fc.Check(ctx, lines)
}
