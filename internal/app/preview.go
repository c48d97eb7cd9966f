package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Krish962/regex-text-versioning/internal/engine"
	"github.com/Krish962/regex-text-versioning/internal/engine/match"
)

// styles for the match listing.
type styles struct {
	index lipgloss.Style
	line  lipgloss.Style
	warn  lipgloss.Style
}

func newStyles() styles {
	return styles{
		index: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		line:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// renderMatches lists matches as "[i] Line N: ...context...", one per
// line, in occurrence order.
func (a *App) renderMatches(matches []engine.Match) string {
	text := a.session.Current()
	width := a.contextWidth()

	var b strings.Builder
	for i, m := range matches {
		b.WriteString(fmt.Sprintf("%s %s ...%s...\n",
			a.styles.index.Render(fmt.Sprintf("[%d]", i+1)),
			a.styles.line.Render(fmt.Sprintf("Line %d:", match.LineNumber(text, m.Start))),
			match.Context(text, m, width)))
	}
	return b.String()
}

// contextWidth is the configured preview window, shrunk when the
// terminal is narrower than two windows plus the listing overhead.
func (a *App) contextWidth() int {
	width := a.config().ContextWidth

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return width
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return width
	}

	available := (cols - 20) / 2
	if available < 10 {
		available = 10
	}
	if available < width {
		return available
	}
	return width
}
