package tui

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eriklarko/propositions/src/environment"
)

type TUI struct {
	input       io.Reader
	output      io.Writer
	interactive bool
}

func New() *TUI {
	return &TUI{
		input:       os.Stdin,
		output:      os.Stdout,
		interactive: environment.IsInteractive(),
	}
}

// NewWithIO creates a TUI reading from input and writing to output. Prompts
// are only printed when interactive is true.
func NewWithIO(input io.Reader, output io.Writer, interactive bool) *TUI {
	return &TUI{
		input:       input,
		output:      output,
		interactive: interactive,
	}
}

// IsInteractive reports whether prompts are printed.
func (t *TUI) IsInteractive() bool {
	return t.interactive
}

func (t *TUI) Printf(format string, a ...any) {
	fmt.Fprintf(t.output, format, a...)
}

// Loop calls handle with every non-blank input line until the input ends or
// the user types "quit" or "exit". Errors returned by handle are printed and
// the loop continues.
//
// Example usage:
//
//	t := tui.New()
//	err := t.Loop("formula> ", func(line string) error {
//		f, err := syntax.Parse(line)
//		...
//	})
func (t *TUI) Loop(prompt string, handle func(line string) error) error {
	scanner := bufio.NewScanner(t.input)
	for {
		if t.interactive {
			fmt.Fprint(t.output, prompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		if err := handle(line); err != nil {
			slog.Debug("failed to handle input", "input", line, "error", err)
			fmt.Fprintf(t.output, "error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read user input: %w", err)
	}
	if t.interactive {
		fmt.Fprintln(t.output)
	}
	return nil
}

// AskForever repeats question until the user answers yes or no. An empty
// answer or the end of the input counts as no.
func (t *TUI) AskForever(question string, a ...any) bool {
	reader := bufio.NewReader(t.input)
	for {
		fmt.Fprintf(t.output, question, a...)
		response, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			slog.Error("failed to read user input", "error", err)
			return false
		}

		switch strings.ToLower(strings.TrimSpace(response)) {
		case "y", "yes":
			return true
		case "n", "no", "":
			return false
		}
		if err == io.EOF {
			return false
		}
	}
}
