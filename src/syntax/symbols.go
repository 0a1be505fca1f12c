package syntax

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Atomic symbols of the language.
const (
	True  = "T"
	False = "F"
	Not   = "~"
)

// Binary operator symbols. Only And, Or and Implies belong to the Standard
// grammar; the rest are enabled by Extended.
const (
	And     = "&"
	Or      = "|"
	Implies = "->"
	Iff     = "<->"
	Nand    = "-&"
	Nor     = "-|"
	Xor     = "+"
)

// knownOperators is every binary operator symbol the tokenizers recognize,
// whether or not the grammar in use accepts it.
var knownOperators = []string{And, Or, Implies, Iff, Nand, Nor, Xor}

// IsVariable reports whether s is a variable name: a letter in p..z followed
// by zero or more decimal digits.
func IsVariable(s string) bool {
	if s == "" || !isVariableStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsConstant reports whether s is T or F.
func IsConstant(s string) bool {
	return s == True || s == False
}

// IsUnary reports whether s is the negation operator.
func IsUnary(s string) bool {
	return s == Not
}

// IsBinary reports whether s is a binary operator of the Standard grammar.
// Use Grammar.IsBinary for other operator tables.
func IsBinary(s string) bool {
	return Standard.IsBinary(s)
}

func isVariableStart(c byte) bool {
	return c >= 'p' && c <= 'z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Grammar is the table of binary operators accepted by construction and by
// both parsers. It is immutable and safe for concurrent use.
type Grammar struct {
	name string

	// accepted operators, longest first
	operators []string
	// operators scanned for when tokenizing, longest first. Always a superset
	// of operators so that a known but disabled operator is reported as such
	// instead of as garbage.
	candidates []string
}

var (
	// Standard accepts &, | and ->.
	Standard = MustNewGrammar("standard", And, Or, Implies)
	// Extended additionally accepts <->, -&, -| and +.
	Extended = MustNewGrammar("extended", knownOperators...)
)

// NewGrammar creates a grammar accepting the given binary operator symbols.
// Operators may not be empty, and may not contain letters, digits,
// parentheses or the negation symbol, since those would make the textual
// notations ambiguous. For the same reason an operator may not be a proper
// prefix of another operator, known ones such as -> included.
//
// Example usage:
//
//	g, err := syntax.NewGrammar("minimal", syntax.And, syntax.Or)
//	if err != nil {
//		log.Fatalf("failed to create grammar: %v", err)
//	}
//	f, err := g.Parse("(p&~q)")
func NewGrammar(name string, operators ...string) (*Grammar, error) {
	if len(operators) == 0 {
		return nil, fmt.Errorf("grammar '%s' has no binary operators", name)
	}
	for _, op := range operators {
		if err := validateOperatorSymbol(op); err != nil {
			return nil, fmt.Errorf("invalid operator for grammar '%s': %w", name, err)
		}
	}
	if dups := lo.FindDuplicates(operators); len(dups) > 0 {
		return nil, fmt.Errorf("grammar '%s' lists operators more than once: %v", name, dups)
	}

	candidates := longestFirst(lo.Union(operators, knownOperators))
	for _, op := range operators {
		longer, found := lo.Find(candidates, func(c string) bool {
			return c != op && strings.HasPrefix(c, op)
		})
		if found {
			return nil, fmt.Errorf("operator '%s' of grammar '%s' is a prefix of '%s'", op, name, longer)
		}
	}

	return &Grammar{
		name:       name,
		operators:  longestFirst(operators),
		candidates: candidates,
	}, nil
}

// MustNewGrammar is like NewGrammar but panics on error.
func MustNewGrammar(name string, operators ...string) *Grammar {
	g, err := NewGrammar(name, operators...)
	if err != nil {
		panic(err)
	}
	return g
}

func validateOperatorSymbol(op string) error {
	if op == "" {
		return fmt.Errorf("empty operator")
	}
	if strings.ContainsAny(op, "()~ \t\n") {
		return fmt.Errorf("operator '%s' contains a reserved character", op)
	}
	for i := 0; i < len(op); i++ {
		c := op[i]
		if isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return fmt.Errorf("operator '%s' contains a letter or digit", op)
		}
	}
	return nil
}

func longestFirst(operators []string) []string {
	sorted := slices.Clone(operators)
	slices.SortStableFunc(sorted, func(a, b string) int {
		// longer first, then lexical so the order is deterministic
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return sorted
}

// Name returns the name the grammar was created with.
func (g *Grammar) Name() string {
	return g.name
}

// Operators returns the accepted binary operators, longest first.
func (g *Grammar) Operators() []string {
	return slices.Clone(g.operators)
}

// IsBinary reports whether s is a binary operator accepted by g.
func (g *Grammar) IsBinary(s string) bool {
	return slices.Contains(g.operators, s)
}

// unsupportedOperators returns the binary operators used in f that g does not
// accept.
func (g *Grammar) unsupportedOperators(f *Formula) []string {
	return lo.Filter(f.operators(), func(op string, _ int) bool {
		return !IsConstant(op) && !IsUnary(op) && !g.IsBinary(op)
	})
}

// matchOperator returns the longest operator candidate that text starts with.
// The match may be an operator g does not accept; callers check IsBinary.
func (g *Grammar) matchOperator(text string) (string, bool) {
	return lo.Find(g.candidates, func(op string) bool {
		return strings.HasPrefix(text, op)
	})
}

func (g *Grammar) String() string {
	return g.name
}
