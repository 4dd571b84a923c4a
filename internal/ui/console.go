// Package ui owns everything that reaches the terminal: styled status
// output and interactive confirmation prompts. Core packages never
// print or read stdin directly; they take a Console and a Prompter so
// tests can capture output and script answers.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Console renders user-facing status lines to a single writer.
type Console struct {
	w io.Writer
}

// NewConsole returns a console writing to w, or stdout when w is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Writer exposes the underlying writer for raw output (captured
// subprocess stdout is printed verbatim, not styled).
func (c *Console) Writer() io.Writer { return c.w }

// Rule prints a horizontal rule with a centered title, used to mark
// session boundaries.
func (c *Console) Rule(title string) {
	line := strings.Repeat("─", 12)
	fmt.Fprintln(c.w, ruleStyle.Render(line+" "+title+" "+line))
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.w, successStyle.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.w, warnStyle.Render("Warning: ")+fmt.Sprintf(format, args...))
}

func (c *Console) Error(format string, args ...any) {
	fmt.Fprintln(c.w, errorStyle.Render("Error: ")+fmt.Sprintf(format, args...))
}

func (c *Console) Hint(format string, args ...any) {
	fmt.Fprintln(c.w, hintStyle.Render("Hint: ")+fmt.Sprintf(format, args...))
}
