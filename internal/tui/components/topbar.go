package components

import (
	"github.com/theirongolddev/costdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// AppTitle is shown on the left of the top bar on every route.
const AppTitle = "AWS Cost Dashboard"

// TopBar is the state the shell hands to RenderTopBar on each frame.
type TopBar struct {
	// ShowSearch is true only on the accounts route.
	ShowSearch bool
	// Search is the rendered search input.
	Search  string
	Focused bool
}

// RenderTopBar renders the title and, on the accounts route, the search field.
func RenderTopBar(bar TopBar, width int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true).
		Padding(0, 1)

	left := titleStyle.Render(AppTitle)
	if !bar.ShowSearch {
		return lipgloss.NewStyle().Width(width).Background(t.Background).Render(left)
	}

	border := t.Border
	if bar.Focused {
		border = t.BorderAccent
	}
	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(border).
		Padding(0, 1)
	right := searchStyle.Render(bar.Search)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Background(t.Background).Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}
