package syntax

import "fmt"

// Notation names one of the two textual forms of a formula.
type Notation string

const (
	Infix  Notation = "infix"
	Polish Notation = "polish"
)

// ParseNotation converts a notation name as used in configuration files and
// flags.
func ParseNotation(name string) (Notation, error) {
	switch Notation(name) {
	case Infix, Polish:
		return Notation(name), nil
	default:
		return "", fmt.Errorf("unknown notation '%s', expected '%s' or '%s'", name, Infix, Polish)
	}
}

// ParseAs parses text written in the given notation.
func (g *Grammar) ParseAs(n Notation, text string) (*Formula, error) {
	switch n {
	case Infix:
		return g.Parse(text)
	case Polish:
		return g.ParsePolish(text)
	default:
		return nil, fmt.Errorf("unknown notation '%s'", n)
	}
}

// Format renders f in the given notation. Unknown notations fall back to the
// standard one.
func (f *Formula) Format(n Notation) string {
	if n == Polish {
		return f.Polish()
	}
	return f.String()
}
