package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Account Name", "Quoted Cost", "Contracts"},
		Rows: [][]string{
			{"Acme", "$100.00", "1"},
			{"Globex Corporation", "$1,250.00", "12"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6) // top, header, sep, 2 rows, bottom

	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		assert.Equalf(t, want, lipgloss.Width(line), "line %d width", i)
	}
	assert.Contains(t, out, "Globex Corporation")
}

func TestRenderTableEmptyRow(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"ID", "Cost"},
		Empty:   "No contracts found",
	})

	assert.Contains(t, out, "No contracts found")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		assert.Equalf(t, want, lipgloss.Width(line), "line %d width", i)
	}
}

func TestRenderTableNoColumns(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderHorizontalBar(t *testing.T) {
	assert.Equal(t, "", RenderHorizontalBar(5, 0, 10))
	assert.Equal(t, "█████", RenderHorizontalBar(5, 10, 10))
	assert.Equal(t, "██████████", RenderHorizontalBar(20, 10, 10))
}
