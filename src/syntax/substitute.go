package syntax

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Placeholders used by operator templates for the first and second operand.
const (
	FirstPlaceholder  = "p"
	SecondPlaceholder = "q"
)

// SubstituteVariables returns a formula where every occurrence of a variable
// that is a key of substitutions is replaced by the mapped formula. Only
// variables of f are replaced; the inserted formulas are not substituted
// again.
//
// Example usage:
//
//	f := syntax.MustParse("((p->p)|r)")
//	g, err := f.SubstituteVariables(map[string]*syntax.Formula{
//		"p": syntax.MustParse("(q&r)"),
//		"r": syntax.MustParse("p"),
//	})
//	fmt.Println(g) // Output: (((q&r)->(q&r))|p)
//
// Every key must be a variable name and every value a non-nil formula using
// only operators of f's grammar, otherwise a *SubstitutionError is returned.
func (f *Formula) SubstituteVariables(substitutions map[string]*Formula) (*Formula, error) {
	for key, replacement := range substitutions {
		if !IsVariable(key) {
			return nil, NewSubstitutionError(ErrInvalidKey, key, "not a variable name")
		}
		if replacement == nil {
			return nil, NewSubstitutionError(ErrInvalidTemplate, key, "nil replacement")
		}
		if unsupported := f.grammar.unsupportedOperators(replacement); len(unsupported) > 0 {
			return nil, NewSubstitutionError(ErrInvalidTemplate, key, unsupportedReason(replacement, unsupported, f.grammar))
		}
	}
	return f.substituteVariables(substitutions), nil
}

// MustSubstituteVariables is like SubstituteVariables but panics on error.
func (f *Formula) MustSubstituteVariables(substitutions map[string]*Formula) *Formula {
	result, err := f.SubstituteVariables(substitutions)
	if err != nil {
		panic(err)
	}
	return result
}

func (f *Formula) substituteVariables(substitutions map[string]*Formula) *Formula {
	switch f.Kind() {
	case Variable:
		if replacement, ok := substitutions[f.root]; ok {
			return replacement
		}
		return f
	case Constant:
		return f
	case Unary:
		return f.withOperands(f.first.substituteVariables(substitutions), nil)
	default:
		return f.withOperands(
			f.first.substituteVariables(substitutions),
			f.second.substituteVariables(substitutions),
		)
	}
}

// SubstituteOperators returns a formula where every constant or operator of f
// that is a key of substitutions is replaced by the mapped template, with p
// standing for the (already substituted) first operand and q for the second.
// The tree is rewritten bottom-up and every node of f is visited once, so
// operators introduced by a template are never expanded again.
//
// Example usage:
//
//	f := syntax.MustParse("((x&y)&~z)")
//	g, err := f.SubstituteOperators(map[string]*syntax.Formula{
//		"&": syntax.MustParse("~(~p|~q)"),
//	})
//	fmt.Println(g) // Output: ~(~~(~x|~y)|~~z)
//
// Keys must be constants, ~ or binary operators of f's grammar. Templates may
// only use the variables p and q; a template for ~ may only use p, and a
// template for a constant neither. Templates may only use operators of f's
// grammar. Violations return a *SubstitutionError.
func (f *Formula) SubstituteOperators(substitutions map[string]*Formula) (*Formula, error) {
	for key, template := range substitutions {
		if err := f.grammar.validateOperatorSubstitution(key, template); err != nil {
			return nil, err
		}
	}
	return f.substituteOperators(substitutions), nil
}

// MustSubstituteOperators is like SubstituteOperators but panics on error.
func (f *Formula) MustSubstituteOperators(substitutions map[string]*Formula) *Formula {
	result, err := f.SubstituteOperators(substitutions)
	if err != nil {
		panic(err)
	}
	return result
}

func (g *Grammar) validateOperatorSubstitution(key string, template *Formula) error {
	var allowed []string
	switch {
	case IsConstant(key):
		allowed = nil
	case IsUnary(key):
		allowed = []string{FirstPlaceholder}
	case g.IsBinary(key):
		allowed = []string{FirstPlaceholder, SecondPlaceholder}
	default:
		return NewSubstitutionError(ErrInvalidKey, key, "not a constant or operator of grammar "+g.name)
	}

	if template == nil {
		return NewSubstitutionError(ErrInvalidTemplate, key, "nil template")
	}
	if unsupported := g.unsupportedOperators(template); len(unsupported) > 0 {
		return NewSubstitutionError(ErrInvalidTemplate, key, unsupportedReason(template, unsupported, g))
	}
	if extra := lo.Without(template.variables(), allowed...); len(extra) > 0 {
		return NewSubstitutionError(ErrInvalidTemplate, key, "template "+template.String()+" uses variables outside "+placeholderList(allowed))
	}
	return nil
}

func unsupportedReason(f *Formula, unsupported []string, g *Grammar) string {
	return fmt.Sprintf("%s uses operators %v not in grammar %s", f, unsupported, g.name)
}

func placeholderList(allowed []string) string {
	return "{" + strings.Join(allowed, ", ") + "}"
}

func (f *Formula) substituteOperators(substitutions map[string]*Formula) *Formula {
	var first, second *Formula
	if f.first != nil {
		first = f.first.substituteOperators(substitutions)
	}
	if f.second != nil {
		second = f.second.substituteOperators(substitutions)
	}

	template, ok := substitutions[f.root]
	if !ok || f.Kind() == Variable {
		return f.withOperands(first, second)
	}

	bindings := make(map[string]*Formula, 2)
	if first != nil {
		bindings[FirstPlaceholder] = first
	}
	if second != nil {
		bindings[SecondPlaceholder] = second
	}
	return template.substituteVariables(bindings)
}

// withOperands returns f if the operands are unchanged, otherwise a new node
// with the same root and the given operands.
func (f *Formula) withOperands(first, second *Formula) *Formula {
	if first == f.first && second == f.second {
		return f
	}
	return newFormula(f.grammar, f.root, first, second)
}
