package syntax

import (
	"unicode/utf8"

	"github.com/samber/lo"
)

type token struct {
	text     string
	position int
}

// element is a reduced subformula waiting on the stack, remembering where
// its text started so that leftovers can be reported precisely.
type element struct {
	formula  *Formula
	position int
}

// ParsePolish parses text in Polish notation under the Standard grammar. See
// Grammar.ParsePolish.
func ParsePolish(text string) (*Formula, error) {
	return Standard.ParsePolish(text)
}

// Tokenize splits text in Polish notation into its symbols under the
// Standard grammar. See Grammar.Tokenize.
func Tokenize(text string) ([]string, error) {
	return Standard.Tokenize(text)
}

// Tokenize splits text in Polish notation into constants, variable names and
// operators. Variable names take all trailing digits, and multi-character
// operators are matched longest first. Any other character fails with
// ErrInvalidSymbol.
func (g *Grammar) Tokenize(text string) ([]string, error) {
	tokens, err := g.tokenize(text)
	if err != nil {
		return nil, err
	}
	return lo.Map(tokens, func(t token, _ int) string {
		return t.text
	}), nil
}

func (g *Grammar) tokenize(text string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case IsConstant(text[i:i+1]) || IsUnary(text[i:i+1]):
			tokens = append(tokens, token{text: text[i : i+1], position: i})
			i++
		case isVariableStart(c):
			end := i + 1
			for end < len(text) && isDigit(text[end]) {
				end++
			}
			tokens = append(tokens, token{text: text[i:end], position: i})
			i = end
		default:
			op, ok := g.matchOperator(text[i:])
			if !ok {
				r, _ := utf8.DecodeRuneInString(text[i:])
				return nil, NewPolishError(ErrInvalidSymbol, string(r), i)
			}
			if !g.IsBinary(op) {
				return nil, NewPolishError(ErrInvalidSymbol, op, i)
			}
			tokens = append(tokens, token{text: op, position: i})
			i += len(op)
		}
	}
	return tokens, nil
}

// ParsePolish parses text in Polish notation, where every operator precedes
// its operands and no parentheses are used, e.g. "&p~q" for (p&~q).
//
// The tokens are reduced right to left on a stack: atoms are pushed, an
// operator pops its operands (the first pop is the first operand) and pushes
// the combined formula. Exactly one formula must remain at the end.
func (g *Grammar) ParsePolish(text string) (*Formula, error) {
	tokens, err := g.tokenize(text)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, NewPolishError(ErrEmptyInput, "", 0)
	}

	stack := make([]element, 0, len(tokens))
	pop := func() *Formula {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top.formula
	}

	for _, tok := range lo.Reverse(tokens) {
		switch {
		case IsConstant(tok.text) || IsVariable(tok.text):
			stack = append(stack, element{
				formula:  newFormula(g, tok.text, nil, nil),
				position: tok.position,
			})
		case IsUnary(tok.text):
			if len(stack) < 1 {
				return nil, NewPolishError(ErrMissingOperand, tok.text, tok.position)
			}
			operand := pop()
			stack = append(stack, element{
				formula:  newFormula(g, tok.text, operand, nil),
				position: tok.position,
			})
		default:
			if len(stack) < 2 {
				return nil, NewPolishError(ErrMissingOperand, tok.text, tok.position)
			}
			first := pop()
			second := pop()
			stack = append(stack, element{
				formula:  newFormula(g, tok.text, first, second),
				position: tok.position,
			})
		}
	}

	if len(stack) != 1 {
		// the top of the stack is the leftmost formula; the one beneath it
		// starts the first unconsumed part of the input
		extra := stack[len(stack)-2]
		return nil, NewPolishError(ErrExtraOperands, text[extra.position:], extra.position)
	}
	return stack[0].formula, nil
}
