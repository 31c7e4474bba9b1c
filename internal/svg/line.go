package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"profilo/internal/core"
)

const (
	plotWidth    = 600
	plotHeight   = 250
	marginTop    = 20
	marginRight  = 20
	marginBottom = 30
	marginLeft   = 50
)

// LineChart renders the month-indexed progression series as a line chart.
// The y domain is rounded up to the next multiple of 500 so the axis lands
// on even kilo-unit marks. An empty series yields the empty-state document.
func LineChart(series []core.MonthBucket) template.HTML {
	if len(series) == 0 {
		return emptyState("No experience recorded yet")
	}

	yMax := 0.0
	for _, b := range series {
		if b.Value > yMax {
			yMax = b.Value
		}
	}
	yMax = math.Ceil(yMax/500) * 500
	if yMax == 0 {
		yMax = 500
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg class="chart chart-line" width="%d" height="%d" viewBox="0 0 %d %d">`,
		plotWidth+marginLeft+marginRight, plotHeight+marginTop+marginBottom,
		plotWidth+marginLeft+marginRight, plotHeight+marginTop+marginBottom)
	fmt.Fprintf(&sb, `<g transform="translate(%d,%d)">`, marginLeft, marginTop)

	// Plot line.
	sb.WriteString(`<path fill="none" stroke="white" stroke-width="2" d="`)
	for i, b := range series {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, xPos(i, len(series)), yPos(b.Value, yMax))
	}
	sb.WriteString(`"/>`)

	// X axis: one tick per month bucket.
	for i, b := range series {
		fmt.Fprintf(&sb, `<text class="axis" x="%.1f" y="%d" text-anchor="middle">%s</text>`,
			xPos(i, len(series)), plotHeight+20, template.HTMLEscapeString(b.Label))
	}

	// Y axis: five even ticks from 0 to yMax.
	for i := 0; i <= 5; i++ {
		v := yMax * float64(i) / 5
		fmt.Fprintf(&sb, `<text class="axis" x="-8" y="%.1f" text-anchor="end">%.0f</text>`,
			yPos(v, yMax)+4, v)
	}

	fmt.Fprintf(&sb, `<text class="axis-title" x="20" y="0">XP (kB)</text>`)
	sb.WriteString(`</g></svg>`)
	return template.HTML(sb.String())
}

// xPos spreads n points over the plot width with a half-step inset on both
// sides, matching a point scale with padding.
func xPos(i, n int) float64 {
	if n == 1 {
		return plotWidth / 2
	}
	step := float64(plotWidth) / float64(n)
	return step/2 + float64(i)*step
}

func yPos(v, yMax float64) float64 {
	return plotHeight - v/yMax*plotHeight
}

func emptyState(msg string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<svg class="chart chart-empty" width="300" height="100"><text x="150" y="55" text-anchor="middle">%s</text></svg>`,
		template.HTMLEscapeString(msg)))
}
