package syntax

import (
	"errors"
	"fmt"
)

// Causes reported by PolishError and SubstitutionError. Match them with
// errors.Is.
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrInvalidSymbol  = errors.New("invalid symbol")
	ErrMissingOperand = errors.New("missing operand")
	ErrExtraOperands  = errors.New("extra operands")

	ErrInvalidKey      = errors.New("invalid substitution key")
	ErrInvalidTemplate = errors.New("invalid substitution template")
)

// ConstructionError is returned when a root symbol is combined with the wrong
// number of operands, or the root is not a symbol of the grammar at all. It
// always indicates a bug in the caller.
type ConstructionError struct {
	Root     string
	Operands int
	Reason   string
}

// NewConstructionError creates a new ConstructionError.
func NewConstructionError(root string, operands int, reason string) error {
	return &ConstructionError{Root: root, Operands: operands, Reason: reason}
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot build formula with root '%s' and %d operand(s): %s", e.Root, e.Operands, e.Reason)
}

// ParseError describes why the infix parser rejected its input. Diagnostic is
// the human readable reason, Offset the byte offset into the input where the
// problem was detected.
type ParseError struct {
	Diagnostic string
	Offset     int
}

// NewParseError creates a new ParseError.
func NewParseError(diagnostic string, offset int) error {
	return &ParseError{Diagnostic: diagnostic, Offset: offset}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Diagnostic, e.Offset)
}

// PolishError describes why the Polish notation parser rejected its input.
// Err is one of ErrEmptyInput, ErrInvalidSymbol, ErrMissingOperand or
// ErrExtraOperands.
type PolishError struct {
	Err      error
	Token    string
	Position int
}

// NewPolishError creates a new PolishError.
func NewPolishError(cause error, token string, position int) error {
	return &PolishError{Err: cause, Token: token, Position: position}
}

func (e *PolishError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v at position %d", e.Err, e.Position)
	}
	return fmt.Sprintf("%v '%s' at position %d", e.Err, e.Token, e.Position)
}

func (e *PolishError) Unwrap() error {
	return e.Err
}

// SubstitutionError is returned when a substitution map violates the
// preconditions of SubstituteVariables or SubstituteOperators. No rewriting
// has happened when it is returned.
type SubstitutionError struct {
	Err    error
	Key    string
	Reason string
}

// NewSubstitutionError creates a new SubstitutionError.
func NewSubstitutionError(cause error, key, reason string) error {
	return &SubstitutionError{Err: cause, Key: key, Reason: reason}
}

func (e *SubstitutionError) Error() string {
	return fmt.Sprintf("%v '%s': %s", e.Err, e.Key, e.Reason)
}

func (e *SubstitutionError) Unwrap() error {
	return e.Err
}
