package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/costdash/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	widths := LayoutRow(101, 4)
	require.Len(t, widths, 4)
	assert.Equal(t, []int{26, 25, 25, 25}, widths)
	assert.Nil(t, LayoutRow(10, 0))
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	require.Less(t, shortLines, tallLines)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	require.Len(t, lines, tallLines)

	for i := shortLines; i < len(lines); i++ {
		assert.Contains(t, lines[i], "\x1b[", "line %d is unstyled", i)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Total Accounts", Value: "3"},
		{Label: "Total Quoted Cost", Value: "$1,200.00", Color: theme.Active.Over},
	}, 80)

	for i, line := range strings.Split(row, "\n") {
		assert.Equal(t, 80, lipgloss.Width(line), "line %d", i)
	}
	assert.Contains(t, row, "Total Quoted Cost")
	assert.Contains(t, row, "$1,200.00")
}

func TestRenderTopBarSearchOnlyWhenShown(t *testing.T) {
	plain := RenderTopBar(TopBar{}, 60)
	assert.Contains(t, plain, AppTitle)
	assert.NotContains(t, plain, "needle")

	withSearch := RenderTopBar(TopBar{ShowSearch: true, Search: "needle"}, 60)
	assert.Contains(t, withSearch, AppTitle)
	assert.Contains(t, withSearch, "needle")
}

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar(50, "[q]uit", Status{Text: "boom", Error: true})
	assert.Equal(t, 50, lipgloss.Width(bar))
	assert.Contains(t, bar, "[q]uit")
	assert.Contains(t, bar, "boom")
}
