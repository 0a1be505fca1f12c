// Package syntax implements the syntax of propositional logic: an immutable
// formula tree, parsers for the standard (infix) and Polish notations, the
// canonical printer and substitution of variables and operators.
//
// The standard notation fully parenthesizes every binary application, so
// every tree has exactly one textual form. Equality of formulas is equality
// of that form.
package syntax

import (
	"fmt"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
)

// Kind tells constants, variables, unary and binary nodes apart.
type Kind int

const (
	Constant Kind = iota
	Variable
	Unary
	Binary
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Variable:
		return "variable"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Formula is an immutable propositional formula in tree form. The zero value
// is not usable; formulas are created with New, Grammar.New or one of the
// parsers.
type Formula struct {
	root   string
	first  *Formula
	second *Formula

	grammar *Grammar

	// lazily computed, the tree never changes after construction
	str       func() string
	polish    func() string
	variables func() []string
	operators func() []string
}

// New creates a formula under the Standard grammar. See Grammar.New.
func New(root string, operands ...*Formula) (*Formula, error) {
	return Standard.New(root, operands...)
}

// MustNew is like New but panics on error.
func MustNew(root string, operands ...*Formula) *Formula {
	return Standard.MustNew(root, operands...)
}

// New creates a formula from its root symbol and operands. Constants and
// variables take no operands, ~ takes one and binary operators of g take two.
// Operands may only use binary operators g accepts, so that the result can
// be parsed back with g.
//
// Example usage:
//
//	p := syntax.MustNew("p")
//	q := syntax.MustNew("q")
//	f, err := syntax.Standard.New("->", p, syntax.MustNew("~", q))
//	if err != nil {
//		log.Fatalf("failed to build formula: %v", err)
//	}
//	fmt.Println(f) // Output: (p->~q)
func (g *Grammar) New(root string, operands ...*Formula) (*Formula, error) {
	if slices.Contains(operands, nil) {
		return nil, NewConstructionError(root, len(operands), "nil operand")
	}

	var want int
	switch {
	case IsConstant(root) || IsVariable(root):
		want = 0
	case IsUnary(root):
		want = 1
	case g.IsBinary(root):
		want = 2
	default:
		return nil, NewConstructionError(root, len(operands), "unknown symbol in grammar "+g.name)
	}
	if len(operands) != want {
		return nil, NewConstructionError(root, len(operands), "wrong number of operands")
	}
	for _, operand := range operands {
		if unsupported := g.unsupportedOperators(operand); len(unsupported) > 0 {
			return nil, NewConstructionError(root, len(operands),
				fmt.Sprintf("operand %s uses operators %v not in grammar %s", operand, unsupported, g.name))
		}
	}

	var first, second *Formula
	if want > 0 {
		first = operands[0]
	}
	if want > 1 {
		second = operands[1]
	}
	return newFormula(g, root, first, second), nil
}

// MustNew is like New but panics on error.
func (g *Grammar) MustNew(root string, operands ...*Formula) *Formula {
	f, err := g.New(root, operands...)
	if err != nil {
		panic(err)
	}
	return f
}

// newFormula assembles a node without validating it. Callers guarantee the
// arity matches the root.
func newFormula(g *Grammar, root string, first, second *Formula) *Formula {
	f := &Formula{
		root:    root,
		first:   first,
		second:  second,
		grammar: g,
	}
	f.str = sync.OnceValue(f.computeString)
	f.polish = sync.OnceValue(f.computePolish)
	f.variables = sync.OnceValue(f.computeVariables)
	f.operators = sync.OnceValue(f.computeOperators)
	return f
}

// Root returns the constant, variable name or operator at the root.
func (f *Formula) Root() string {
	return f.root
}

// First returns the first operand of a unary or binary formula, nil
// otherwise.
func (f *Formula) First() *Formula {
	return f.first
}

// Second returns the second operand of a binary formula, nil otherwise.
func (f *Formula) Second() *Formula {
	return f.second
}

// Grammar returns the grammar the formula was built under.
func (f *Formula) Grammar() *Grammar {
	return f.grammar
}

// Kind returns which of the four node kinds f is, derived from its root.
func (f *Formula) Kind() Kind {
	switch {
	case f.second != nil:
		return Binary
	case f.first != nil:
		return Unary
	case IsConstant(f.root):
		return Constant
	default:
		return Variable
	}
}

// String returns the canonical standard notation of the formula.
func (f *Formula) String() string {
	return f.str()
}

func (f *Formula) computeString() string {
	switch f.Kind() {
	case Unary:
		return f.root + f.first.String()
	case Binary:
		return "(" + f.first.String() + f.root + f.second.String() + ")"
	default:
		return f.root
	}
}

// Polish returns the formula in Polish (prefix) notation.
func (f *Formula) Polish() string {
	return f.polish()
}

func (f *Formula) computePolish() string {
	switch f.Kind() {
	case Unary:
		return f.root + f.first.Polish()
	case Binary:
		return f.root + f.first.Polish() + f.second.Polish()
	default:
		return f.root
	}
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (f *Formula) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Variables returns the sorted set of variable names in the formula.
func (f *Formula) Variables() []string {
	return slices.Clone(f.variables())
}

func (f *Formula) computeVariables() []string {
	switch f.Kind() {
	case Constant:
		return nil
	case Variable:
		return []string{f.root}
	case Unary:
		return f.first.variables()
	default:
		return sortedUnion(f.first.variables(), f.second.variables())
	}
}

// Operators returns the sorted set of constants and operators in the
// formula.
func (f *Formula) Operators() []string {
	return slices.Clone(f.operators())
}

func (f *Formula) computeOperators() []string {
	switch f.Kind() {
	case Variable:
		return nil
	case Constant:
		return []string{f.root}
	case Unary:
		return sortedUnion([]string{f.root}, f.first.operators())
	default:
		return sortedUnion([]string{f.root}, f.first.operators(), f.second.operators())
	}
}

func sortedUnion(sets ...[]string) []string {
	union := lo.Union(sets...)
	slices.Sort(union)
	return union
}

// Depth returns the height of the tree; atoms have depth 0.
func (f *Formula) Depth() int {
	switch f.Kind() {
	case Unary:
		return 1 + f.first.Depth()
	case Binary:
		return 1 + max(f.first.Depth(), f.second.Depth())
	default:
		return 0
	}
}

// Size returns the number of nodes in the tree.
func (f *Formula) Size() int {
	switch f.Kind() {
	case Unary:
		return 1 + f.first.Size()
	case Binary:
		return 1 + f.first.Size() + f.second.Size()
	default:
		return 1
	}
}

// Equal reports whether f and other have the same canonical form. Two nil
// formulas are equal.
func (f *Formula) Equal(other *Formula) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f == other || f.String() == other.String()
}

// Hash returns a hash of the canonical form, consistent with Equal.
func (f *Formula) Hash() uint64 {
	return xxhash.Sum64String(f.String())
}
