package environment

import (
	"os"

	"github.com/mattn/go-isatty"
)

var interactiveOverride *bool

// ForceSetIsInteractive overrides the interactive check. The CLI uses it for
// --interactive and tests use it to simulate a terminal.
func ForceSetIsInteractive(value bool) {
	interactiveOverride = &value
}

// ResetIsInteractive removes an override set with ForceSetIsInteractive.
func ResetIsInteractive() {
	interactiveOverride = nil
}

// IsTerminal returns true if f is connected to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive returns true if the code is run by a user with an interactive shell, false otherwise
func IsInteractive() bool {
	if interactiveOverride != nil {
		return *interactiveOverride
	}
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}
