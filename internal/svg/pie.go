package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"profilo/internal/core"
)

const (
	pieRadius  = 75.0
	pieCenterX = 150
	pieCenterY = 150
	pieSize    = 300
)

// PieChart renders the breakdown slices as a proportional-arc chart. Each
// slice is a circle whose stroke-dasharray covers its share of the
// circumference, rotated to start where the previous slice ended; the first
// slice starts at twelve o'clock (-90 degrees). Hover info is carried as a
// <title> element per arc. An empty slice list yields the empty-state
// document.
func PieChart(slices []core.BreakdownSlice) template.HTML {
	if len(slices) == 0 {
		return emptyState("No projects to break down")
	}

	circumference := 2 * math.Pi * pieRadius

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg class="chart chart-pie" width="%d" height="%d" viewBox="0 0 %d %d">`,
		pieSize, pieSize, pieSize, pieSize)

	start := -90.0
	for i, s := range slices {
		arc := s.Percentage / 100 * circumference
		fmt.Fprintf(&sb,
			`<circle class="arc" r="%.0f" cx="%d" cy="%d" fill="transparent" stroke="%s" stroke-width="150" stroke-dasharray="%.2f %.2f" transform="rotate(%.2f %d %d)">`,
			pieRadius, pieCenterX, pieCenterY, SliceColor(i),
			arc, circumference, start, pieCenterX, pieCenterY)
		fmt.Fprintf(&sb, `<title>%s - %.1fkB (%.2f%%)</title></circle>`,
			template.HTMLEscapeString(s.SourceName), float64(s.Amount)/1000, s.Percentage)
		start += s.Percentage * 3.6
	}

	sb.WriteString(`</svg>`)
	return template.HTML(sb.String())
}
