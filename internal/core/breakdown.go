package core

// Breakdown computes each subject's share of the experience total. Records
// are visited in chronological order; non-positive amounts are skipped, and
// only the first record per subject name produces a slice — later records
// for an already-seen subject neither update nor re-rank it. The slice order
// is the admission order, which presentation uses for stable color
// assignment.
//
// A positive record against a zero total is a defined failure (ErrZeroTotal)
// rather than a division by zero; with no admissible records the result is
// simply empty.
func Breakdown(experience []Transaction, total int64) ([]BreakdownSlice, error) {
	var slices []BreakdownSlice
	seen := make(map[string]struct{}, len(experience))

	for _, tx := range experience {
		if tx.Amount <= 0 {
			continue
		}
		if _, dup := seen[tx.Object.Name]; dup {
			continue
		}
		if total == 0 {
			return nil, ErrZeroTotal
		}
		seen[tx.Object.Name] = struct{}{}
		slices = append(slices, BreakdownSlice{
			SourceName: tx.Object.Name,
			Amount:     tx.Amount,
			Percentage: float64(tx.Amount) / float64(total) * 100,
		})
	}
	return slices, nil
}
