package checker

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/eriklarko/propositions/src/syntax"
)

// Entry is the outcome for a single input line.
type Entry struct {
	Line      int      `yaml:"line"`
	Input     string   `yaml:"input"`
	Canonical string   `yaml:"canonical,omitempty"`
	Polish    string   `yaml:"polish,omitempty"`
	Variables []string `yaml:"variables,omitempty,flow"`
	Error     string   `yaml:"error,omitempty"`
}

// Report collects the outcome of checking a batch of lines.
type Report struct {
	Valid   []Entry `yaml:"valid"`
	Invalid []Entry `yaml:"invalid"`
}

func (r *Report) RecordDecision(line int, input string, formula *syntax.Formula, err error) {
	if err != nil {
		r.RecordInvalid(line, input, err)
	} else {
		r.RecordValid(line, input, formula)
	}
}

// RecordValid records that a line holds a formula
func (r *Report) RecordValid(line int, input string, formula *syntax.Formula) {
	r.Valid = append(r.Valid, Entry{
		Line:      line,
		Input:     input,
		Canonical: formula.String(),
		Polish:    formula.Polish(),
		Variables: formula.Variables(),
	})
}

// RecordInvalid records that a line could not be parsed
func (r *Report) RecordInvalid(line int, input string, err error) {
	r.Invalid = append(r.Invalid, Entry{
		Line:  line,
		Input: input,
		Error: err.Error(),
	})
}

func (r *Report) HasInvalidFormulas() bool {
	return len(r.Invalid) > 0
}

func (r *Report) Total() int {
	return len(r.Valid) + len(r.Invalid)
}

// WriteText writes a human readable summary, one line per checked input
// line in input order.
func (r *Report) WriteText(w io.Writer) error {
	type outcome struct {
		Entry
		valid bool
	}
	outcomes := append(
		lo.Map(r.Valid, func(e Entry, _ int) outcome { return outcome{Entry: e, valid: true} }),
		lo.Map(r.Invalid, func(e Entry, _ int) outcome { return outcome{Entry: e} })...,
	)
	slices.SortStableFunc(outcomes, func(a, b outcome) int {
		return cmp.Compare(a.Line, b.Line)
	})

	var b strings.Builder
	for _, o := range outcomes {
		if o.valid {
			fmt.Fprintf(&b, "ok      %d: %s\n", o.Line, o.Canonical)
		} else {
			fmt.Fprintf(&b, "invalid %d: %s (%s)\n", o.Line, o.Input, o.Error)
		}
	}
	fmt.Fprintf(&b, "%d valid, %d invalid\n", len(r.Valid), len(r.Invalid))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML writes the full report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return encoder.Close()
}
