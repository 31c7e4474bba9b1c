package core

import "fmt"

const bytesPerMB = 1_000_000

// Summarize derives the headline metrics from the classified buckets and the
// two lifetime audit counters. Level is max-wins over the level bucket; the
// audit ratio is left unknown instead of dividing by a zero received total.
func Summarize(c Classified, totalUp, totalDown int64) Metrics {
	m := Metrics{
		AuditDoneMB:     float64(totalUp) / bytesPerMB,
		AuditReceivedMB: float64(totalDown) / bytesPerMB,
	}
	for _, tx := range c.Experience {
		m.TotalXP += tx.Amount
	}
	m.TotalXPMB = float64(m.TotalXP) / bytesPerMB
	for _, tx := range c.Levels {
		if tx.Amount > m.Level {
			m.Level = tx.Amount
		}
	}
	if totalDown != 0 {
		m.AuditRatio = float64(totalUp) / float64(totalDown)
		m.RatioKnown = true
	}
	return m
}

// FormatMB renders a megabyte value with the fixed display precision.
func FormatMB(mb float64) string {
	return fmt.Sprintf("%.2f MB", mb)
}

// FormatRatio renders the audit ratio at one decimal, or the N/A sentinel
// when the ratio is unknown.
func (m Metrics) FormatRatio() string {
	if !m.RatioKnown {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", m.AuditRatio)
}
