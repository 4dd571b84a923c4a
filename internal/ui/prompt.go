package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter answers yes/no questions raised by core logic. The core
// packages decide *what* to ask; the Prompter decides *how*. Strict
// (CI) sessions install Deny so every ambiguous path fails closed.
type Prompter interface {
	Confirm(question string, def bool) bool
}

// TerminalPrompter reads y/n answers from an input stream.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminalPrompter returns a prompter bound to stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stdout}
}

// Confirm prompts the user for a yes/no response. Empty input yields
// the default; unreadable input counts as a decline.
func (p *TerminalPrompter) Confirm(question string, def bool) bool {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	fmt.Fprintf(p.Out, "%s %s: ", question, suffix)

	reader := bufio.NewReader(p.In)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	case "":
		return def
	default:
		return false
	}
}

// Deny is the non-interactive prompter: every question is answered
// "no", so recovery paths that need consent fail closed.
type Deny struct{}

func (Deny) Confirm(string, bool) bool { return false }
