package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChartTickStep(t *testing.T) {
	assert.Equal(t, 1.0, chartTickStep(0))
	assert.Equal(t, 20.0, chartTickStep(100))
	assert.Equal(t, 500.0, chartTickStep(2000))
}

func TestFormatChartLabel(t *testing.T) {
	cases := map[float64]string{
		0.5:     "0.50",
		42:      "42",
		2000:    "2k",
		2500:    "2.5k",
		3000000: "3M",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatChartLabel(in), "formatChartLabel(%v)", in)
	}
}

func TestCostChartLabelsAndAxis(t *testing.T) {
	points := []ChartPoint{
		{Label: "2024-01", Actual: 120, Quoted: 100},
		{Label: "2024-02", Actual: 80, Quoted: 100},
		{Label: "2024-03", Actual: 90, Quoted: 100},
	}
	out := CostChart(points, 60, 8)

	assert.Contains(t, out, "└")
	assert.Contains(t, out, "2024-01")
	assert.NotContains(t, out, "2024-02", "adjacent label would touch the first")
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "█")
}

func TestCostChartFallsBackToSparkline(t *testing.T) {
	points := []ChartPoint{{Actual: 1}, {Actual: 2}, {Actual: 4}}
	out := CostChart(points, 10, 2)
	assert.False(t, strings.Contains(out, "└"))
	assert.Contains(t, out, "█")
}

func TestSampleToFit(t *testing.T) {
	points := make([]ChartPoint, 40)
	for i := range points {
		points[i].Actual = float64(i)
	}
	got := sampleToFit(points, 21)
	assert.Len(t, got, 11)
	assert.Equal(t, 0.0, got[0].Actual)
	assert.Equal(t, 39.0, got[len(got)-1].Actual)
}
