package core

import "time"

// Progression folds experience records into a month-indexed cumulative
// series in kilo experience points. The scale is created lazily from the
// first record's month and spans through the month of now. Within a month,
// later records supersede earlier ones: each write stores the running total
// at that point, so only the last transaction's snapshot survives. After the
// fold, months without activity are forward-filled from their predecessor,
// making the series gap-free and non-decreasing.
//
// An empty record list yields a nil series; renderers treat that as the
// empty state.
func Progression(experience []Transaction, now time.Time) []MonthBucket {
	var scale []MonthBucket
	var total int64

	for _, tx := range experience {
		total += tx.Amount
		if scale == nil {
			scale = MonthScale(tx.CreatedAt, now)
		}
		label := MonthLabel(tx.CreatedAt)
		for i := range scale {
			if scale[i].Label == label {
				scale[i].Value = float64(total) / 1000
			}
		}
	}

	forwardFill(scale)
	return scale
}

// forwardFill copies the previous bucket's value into any zero-valued bucket
// past the first. Values already filled earlier in the walk propagate.
func forwardFill(series []MonthBucket) {
	for i := 1; i < len(series); i++ {
		if series[i].Value == 0 {
			series[i].Value = series[i-1].Value
		}
	}
}
