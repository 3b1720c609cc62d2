package components

import (
	"github.com/theirongolddev/costdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is the message shown on the right of the status bar.
type Status struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar with key hints on the left
// and the latest status message on the right.
func RenderStatusBar(width int, hints string, status Status) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background).
		Width(width)

	left := " " + hints
	right := ""
	if status.Text != "" {
		color := t.TextMuted
		if status.Error {
			color = t.Over
		}
		right = lipgloss.NewStyle().Foreground(color).Background(t.Background).Render(status.Text + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	spacer := lipgloss.NewStyle().Background(t.Background).Width(padding).Render("")

	return style.Render(left + spacer + right)
}
