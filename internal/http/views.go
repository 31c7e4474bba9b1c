package http

import (
	"fmt"
	"html/template"

	"profilo/internal/core"
	"profilo/internal/svg"
)

type loginView struct {
	Error string
}

type errorView struct {
	Status  string
	Message string
}

type legendEntry struct {
	Name    string
	Color   string
	Percent string
}

type dashboardView struct {
	Login         string
	Greeting      string
	Level         string
	TotalXP       string
	AuditDone     string
	AuditReceived string
	AuditRatio    string
	LineChart     template.HTML
	PieChart      template.HTML
	Legend        []legendEntry
}

func newDashboardView(d core.Dashboard) dashboardView {
	legend := make([]legendEntry, 0, len(d.Breakdown))
	for i, slice := range d.Breakdown {
		legend = append(legend, legendEntry{
			Name:    slice.SourceName,
			Color:   svg.SliceColor(i),
			Percent: fmt.Sprintf("%.2f%%", slice.Percentage),
		})
	}

	return dashboardView{
		Login:         d.Login,
		Greeting:      fmt.Sprintf("Welcome back, %s", d.Login),
		Level:         fmt.Sprintf("%d", d.Metrics.Level),
		TotalXP:       core.FormatMB(d.Metrics.TotalXPMB),
		AuditDone:     core.FormatMB(d.Metrics.AuditDoneMB),
		AuditReceived: core.FormatMB(d.Metrics.AuditReceivedMB),
		AuditRatio:    d.Metrics.FormatRatio(),
		LineChart:     svg.LineChart(d.Progression),
		PieChart:      svg.PieChart(d.Breakdown),
		Legend:        legend,
	}
}
