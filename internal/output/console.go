package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console writes operator-facing messages with terminal styling. Styles
// degrade to plain text when w is not a terminal.
type Console struct {
	w       io.Writer
	success lipgloss.Style
	label   lipgloss.Style
	link    lipgloss.Style
	warn    lipgloss.Style
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:       w,
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		label:   r.NewStyle().Bold(true),
		link:    r.NewStyle().Underline(true).Foreground(lipgloss.Color("12")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Success prints a success line preceded by a blank line.
func (c *Console) Success(message string) {
	fmt.Fprintf(c.w, "\n%s\n", c.success.Render("✔ "+message))
}

// Link prints a labelled URL.
func (c *Console) Link(label, url string) {
	fmt.Fprintf(c.w, "%s\n  %s\n", c.label.Render("\U0001F517 "+label), c.link.Render(url))
}

// Warn prints a warning line.
func (c *Console) Warn(message string) {
	fmt.Fprintln(c.w, c.warn.Render("⚠ "+message))
}
