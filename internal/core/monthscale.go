package core

import "time"

// monthLabelLayout renders e.g. "Mar 24", the axis label format shared by
// the scale, the accumulator and the chart renderer.
const monthLabelLayout = "Jan 06"

// MonthLabel formats the calendar month of t as a chart axis label.
func MonthLabel(t time.Time) string {
	return t.Format(monthLabelLayout)
}

// MonthScale returns zero-valued buckets for every calendar month from the
// month of start through the month of now, inclusive. Both bounds are pinned
// to the 15th so that stepping by whole months never skids across
// month-length boundaries. If start and now fall in the same month the scale
// still contains that single bucket.
func MonthScale(start, now time.Time) []MonthBucket {
	cur := time.Date(start.Year(), start.Month(), 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month()+1, 15, 0, 0, 0, 0, time.UTC)

	var scale []MonthBucket
	for cur.Before(end) {
		scale = append(scale, MonthBucket{Label: MonthLabel(cur)})
		cur = cur.AddDate(0, 1, 0)
	}
	return scale
}
