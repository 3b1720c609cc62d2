package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/costdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ChartPoint is one month in a cost chart.
type ChartPoint struct {
	Label  string
	Actual float64
	Quoted float64
}

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a one-line sparkline of actual cost.
func Sparkline(points []ChartPoint) string {
	if len(points) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, p.Actual)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, p := range points {
		idx := int(p.Actual / peak * float64(len(blocks)-1))
		idx = max(1, min(idx, len(blocks)-1))
		style := lipgloss.NewStyle().Foreground(theme.BudgetColor(p.Actual > p.Quoted)).Background(t.Surface)
		buf.WriteString(style.Render(string(blocks[idx])))
	}
	return buf.String()
}

// CostChart renders monthly actual cost as vertical bars. Bars above the
// month's quote use the over-budget color, the rest the under-budget color.
// The quote level is marked with a dim tick on each column it crosses.
func CostChart(points []ChartPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(points)
	}

	t := theme.Active

	maxVal := 0.0
	for _, p := range points {
		maxVal = math.Max(maxVal, math.Max(p.Actual, p.Quoted))
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(2, height/2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(1, int(math.Round(ceiling/tickStep)))
	rowsPerTick := max(2, height/numIntervals)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(5, width-yLabelW-1)
	points = sampleToFit(points, chartW)
	n := len(points)

	gap := 1
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else {
		gap = 0
	}
	barW = max(1, min(barW, 6))
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	quoteStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, p := range points {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			barStyle := lipgloss.NewStyle().Foreground(theme.BudgetColor(p.Actual > p.Quoted)).Background(t.Surface)
			quoteRow := p.Quoted > rowBottom && p.Quoted <= rowTop
			switch {
			case p.Actual >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case p.Actual > rowBottom:
				idx := int((p.Actual - rowBottom) / (rowTop - rowBottom) * 8)
				idx = max(1, min(idx, 8))
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			case quoteRow:
				b.WriteString(quoteStyle.Render(strings.Repeat("╌", barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if labels := axisLabels(points, barW, gap, chartW); labels != "" {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(labels))
	}

	return b.String()
}

// sampleToFit drops points evenly so every bar is at least one cell wide.
func sampleToFit(points []ChartPoint, chartW int) []ChartPoint {
	n := len(points)
	maxN := max(2, (chartW+1)/2)
	if n <= maxN {
		return points
	}
	sampled := make([]ChartPoint, maxN)
	for i := range sampled {
		sampled[i] = points[i*(n-1)/(maxN-1)]
	}
	return sampled
}

// axisLabels lays out point labels under their bars within limit columns,
// skipping any that would touch the previous one.
func axisLabels(points []ChartPoint, barW, gap, limit int) string {
	if limit <= 0 {
		return ""
	}
	buf := []byte(strings.Repeat(" ", limit))
	lastEnd := -1
	place := func(i int) {
		lbl := points[i].Label
		pos := i * (barW + gap)
		if pos+len(lbl) > limit {
			pos = limit - len(lbl)
		}
		if pos < 0 || pos <= lastEnd {
			return
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
	}
	for i := range points {
		place(i)
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimUnit(v/1e6) + "M"
	case v >= 1e3:
		return trimUnit(v/1e3) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimUnit(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
