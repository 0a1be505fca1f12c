package syntax

// Diagnostics reported by the infix parser.
const (
	diagEndOfInput    = "end of input"
	diagMissingOp     = "missing operator"
	diagInvalidOp     = "invalid operator"
	diagUnclosed      = "unclosed parenthesis"
	diagInvalidPrefix = "invalid prefix"
	diagTrailingInput = "unexpected trailing input"
)

type parser struct {
	grammar *Grammar
	text    string
	pos     int
}

// ParsePrefix parses the longest prefix of text that is a formula in standard
// notation under the Standard grammar. See Grammar.ParsePrefix.
func ParsePrefix(text string) (*Formula, string, error) {
	return Standard.ParsePrefix(text)
}

// IsFormula reports whether text is a formula in standard notation under the
// Standard grammar.
func IsFormula(text string) bool {
	return Standard.IsFormula(text)
}

// Parse parses text in standard notation under the Standard grammar.
func Parse(text string) (*Formula, error) {
	return Standard.Parse(text)
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Formula {
	return Standard.MustParse(text)
}

// ParsePrefix parses the longest prefix of text that is a formula in standard
// notation and returns it together with the unparsed rest of text. A variable
// name is always consumed whole, so "q7&p" yields q7 and "&p".
//
// If no prefix of text is a formula, the formula is nil and the error is a
// *ParseError holding a human readable diagnostic.
func (g *Grammar) ParsePrefix(text string) (*Formula, string, error) {
	p := &parser{grammar: g, text: text}
	f, err := p.parseFormula()
	if err != nil {
		return nil, "", err
	}
	return f, text[p.pos:], nil
}

// IsFormula reports whether the whole of text is a formula in standard
// notation.
func (g *Grammar) IsFormula(text string) bool {
	f, rest, err := g.ParsePrefix(text)
	return err == nil && f != nil && rest == ""
}

// Parse parses text in standard notation. It fails with a *ParseError
// exactly when IsFormula(text) is false.
func (g *Grammar) Parse(text string) (*Formula, error) {
	f, rest, err := g.ParsePrefix(text)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, NewParseError(diagTrailingInput, len(text)-len(rest))
	}
	return f, nil
}

// MustParse is like Parse but panics on error.
func (g *Grammar) MustParse(text string) *Formula {
	f, err := g.Parse(text)
	if err != nil {
		panic(err)
	}
	return f
}

// parseFormula dispatches on the next character. Errors from nested calls
// are returned as they are so the innermost diagnostic survives.
func (p *parser) parseFormula() (*Formula, error) {
	if p.pos >= len(p.text) {
		return nil, NewParseError(diagEndOfInput, p.pos)
	}

	c := p.text[p.pos]
	switch {
	case IsConstant(string(c)):
		p.pos++
		return newFormula(p.grammar, string(c), nil, nil), nil
	case c == '(':
		return p.parseBinary()
	case IsUnary(string(c)):
		p.pos++
		operand, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return newFormula(p.grammar, Not, operand, nil), nil
	case isVariableStart(c):
		return p.parseVariable(), nil
	default:
		return nil, NewParseError(diagInvalidPrefix, p.pos)
	}
}

func (p *parser) parseBinary() (*Formula, error) {
	p.pos++ // (

	first, err := p.parseFormula()
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.text) {
		return nil, NewParseError(diagMissingOp, p.pos)
	}
	op, ok := p.grammar.matchOperator(p.text[p.pos:])
	if !ok || !p.grammar.IsBinary(op) {
		return nil, NewParseError(diagInvalidOp, p.pos)
	}
	p.pos += len(op)

	second, err := p.parseFormula()
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.text) || p.text[p.pos] != ')' {
		return nil, NewParseError(diagUnclosed, p.pos)
	}
	p.pos++

	return newFormula(p.grammar, op, first, second), nil
}

// parseVariable consumes a variable letter and all digits following it.
func (p *parser) parseVariable() *Formula {
	end := p.pos + 1
	for end < len(p.text) && isDigit(p.text[end]) {
		end++
	}
	name := p.text[p.pos:end]
	p.pos = end
	return newFormula(p.grammar, name, nil, nil)
}
