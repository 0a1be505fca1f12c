package randformula

import (
	"log/slog"
	"math/rand"

	"github.com/samber/lo"

	"github.com/eriklarko/propositions/src/syntax"
)

const defaultMaxDepth = 4

var defaultVariables = []string{"p", "q", "r", "s", "x1", "x12"}

// Generator produces random formulas from a seeded source.
type Generator struct {
	rng       *rand.Rand
	grammar   *syntax.Grammar
	maxDepth  int
	variables []string
}

// New creates a Generator producing formulas of the given grammar. The same
// seed always yields the same sequence of formulas.
//
// Usage:
//
//	gen := randformula.New(syntax.Standard, 42).WithMaxDepth(3)
//	for i := 0; i < 10; i++ {
//		fmt.Println(gen.Formula())
//	}
func New(grammar *syntax.Grammar, seed int64) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewSource(seed)),
		grammar:   grammar,
		maxDepth:  defaultMaxDepth,
		variables: defaultVariables,
	}
}

// WithMaxDepth bounds the depth of generated formulas. Negative values are
// treated as 0, i.e. only atoms.
func (g *Generator) WithMaxDepth(depth int) *Generator {
	g.maxDepth = max(depth, 0)
	return g
}

// WithVariables sets the variable names atoms are drawn from. Names that are
// not valid variable names are ignored; if none remain the defaults are
// kept.
func (g *Generator) WithVariables(names ...string) *Generator {
	valid, invalid := lo.FilterReject(names, func(name string, _ int) bool {
		return syntax.IsVariable(name)
	})
	if len(invalid) > 0 {
		slog.Debug("ignoring invalid variable names", "names", invalid)
	}
	if len(valid) > 0 {
		g.variables = valid
	} else {
		slog.Debug("no valid variable names given, keeping the defaults", "variables", g.variables)
	}
	return g
}

// Formula returns a new random formula no deeper than the maximum depth.
func (g *Generator) Formula() *syntax.Formula {
	return g.generate(g.maxDepth)
}

// Formulas returns n random formulas.
func (g *Generator) Formulas(n int) []*syntax.Formula {
	formulas := make([]*syntax.Formula, 0, n)
	for i := 0; i < n; i++ {
		formulas = append(formulas, g.Formula())
	}
	return formulas
}

func (g *Generator) generate(depth int) *syntax.Formula {
	// stop early now and then so that shallow formulas are common too
	if depth == 0 || g.rng.Intn(4) == 0 {
		return g.atom()
	}

	if g.rng.Intn(3) == 0 {
		return g.grammar.MustNew(syntax.Not, g.generate(depth-1))
	}

	operators := g.grammar.Operators()
	op := operators[g.rng.Intn(len(operators))]
	return g.grammar.MustNew(op, g.generate(depth-1), g.generate(depth-1))
}

func (g *Generator) atom() *syntax.Formula {
	if g.rng.Intn(5) == 0 {
		if g.rng.Intn(2) == 0 {
			return g.grammar.MustNew(syntax.True)
		}
		return g.grammar.MustNew(syntax.False)
	}
	return g.grammar.MustNew(g.variables[g.rng.Intn(len(g.variables))])
}
