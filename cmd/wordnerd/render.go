package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"wordnerd/internal/feedback"
)

const timeRound = 10 * time.Millisecond

// Tile palette, dark-terminal friendly.
var (
	correctStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#538D4E")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).Padding(0, 1)
	presentStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#B59F3B")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).Padding(0, 1)
	absentStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3A3A3C")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336"))
)

// renderFeedback draws one guess as a row of colored tiles.
func renderFeedback(recs []feedback.Record) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteByte(' ')
		}
		letter := strings.ToUpper(string(r.Char))
		switch r.Outcome {
		case feedback.Correct:
			b.WriteString(correctStyle.Render(letter))
		case feedback.Present:
			b.WriteString(presentStyle.Render(letter))
		default:
			b.WriteString(absentStyle.Render(letter))
		}
	}
	return b.String()
}
