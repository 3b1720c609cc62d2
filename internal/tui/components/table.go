package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/costdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one table cell. Color overrides the row text color when set.
type Cell struct {
	Text  string
	Color lipgloss.Color
}

// Column describes a table column. The Flex column absorbs spare width;
// without one the first column does.
type Column struct {
	Title string
	Right bool
	Flex  bool
}

// Table is a selectable data table.
type Table struct {
	Columns []Column
	Rows    [][]Cell
	// Cursor is the highlighted row, or -1 for none.
	Cursor int
	// Empty is shown as a single row when Rows is empty.
	Empty string
	// Height limits the visible data rows; 0 shows all.
	Height int
}

// RenderTable renders t into exactly width columns.
func RenderTable(tbl Table, width int) string {
	t := theme.Active
	n := len(tbl.Columns)
	if n == 0 {
		return ""
	}

	widths := make([]int, n)
	for i, c := range tbl.Columns {
		widths[i] = lipgloss.Width(c.Title)
	}
	for _, row := range tbl.Rows {
		for i := 0; i < n && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i].Text))
		}
	}

	flex := 0
	for i, c := range tbl.Columns {
		if c.Flex {
			flex = i
			break
		}
	}

	// 2 spaces between columns, 1 leading space.
	used := 1 + 2*(n-1)
	for i, w := range widths {
		if i != flex {
			used += w
		}
	}
	widths[flex] = max(4, width-used)

	base := lipgloss.NewStyle().Background(t.Surface)
	headerStyle := base.Foreground(t.Accent).Bold(true)
	ruleStyle := base.Foreground(t.Border)
	mutedStyle := base.Foreground(t.TextMuted)

	line := func(cells []Cell, style lipgloss.Style, selected bool) string {
		if selected {
			style = style.Background(t.SurfaceHover)
		}
		var b strings.Builder
		b.WriteString(style.Render(" "))
		for i := 0; i < n; i++ {
			cell := Cell{}
			if i < len(cells) {
				cell = cells[i]
			}
			text := fit(cell.Text, widths[i], tbl.Columns[i].Right)
			cs := style
			if cell.Color != "" {
				cs = cs.Foreground(cell.Color)
			}
			b.WriteString(cs.Render(text))
			if i < n-1 {
				b.WriteString(style.Render("  "))
			}
		}
		return b.String()
	}

	headers := make([]Cell, n)
	for i, c := range tbl.Columns {
		headers[i] = Cell{Text: c.Title}
	}

	var lines []string
	lines = append(lines, line(headers, headerStyle, false))
	lines = append(lines, ruleStyle.Render(strings.Repeat("─", width)))

	if len(tbl.Rows) == 0 {
		lines = append(lines, mutedStyle.Render(fit(" "+tbl.Empty, width, false)))
		return strings.Join(lines, "\n")
	}

	rowStyle := base.Foreground(t.TextPrimary)
	start, end := window(len(tbl.Rows), tbl.Cursor, tbl.Height)
	for i := start; i < end; i++ {
		lines = append(lines, line(tbl.Rows[i], rowStyle, i == tbl.Cursor))
	}
	if end-start < len(tbl.Rows) {
		more := mutedStyle.Render(fit(" "+rowRange(start, end, len(tbl.Rows)), width, false))
		lines = append(lines, more)
	}
	return strings.Join(lines, "\n")
}

// window returns the [start, end) slice of rows to show so the cursor stays visible.
func window(total, cursor, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, start + height
}

func rowRange(start, end, total int) string {
	return fmt.Sprintf("rows %d-%d of %d", start+1, end, total)
}

// fit truncates or pads s to exactly w display columns.
func fit(s string, w int, right bool) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) > w {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	gap := strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
	if right {
		return gap + s
	}
	return s + gap
}
