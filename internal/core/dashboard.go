// Package core implements the transaction aggregation pipeline: it turns a
// chronologically ordered transaction history into cumulative experience
// totals, a monotonic per-month progression series, a level value and a
// deduplicated per-subject breakdown. Everything in this package is pure and
// synchronous; one call to BuildDashboard is one aggregation pass over an
// in-memory snapshot.
package core

import "time"

// BuildDashboard runs the full pipeline over one fetched account snapshot.
// It fails fast with ErrMalformedAccount when the snapshot lacks a login or
// a transactions list (a missing list, not an empty one). An account with no
// qualifying experience records yields empty series and zero metrics, which
// is a legitimate result, not an error.
func BuildDashboard(acc Account, rules Rules, now time.Time) (Dashboard, error) {
	if acc.Login == "" || acc.Transactions == nil {
		return Dashboard{}, ErrMalformedAccount
	}

	classified := Classify(acc.Transactions, rules)
	metrics := Summarize(classified, acc.TotalUp, acc.TotalDown)

	breakdown, err := Breakdown(classified.Experience, metrics.TotalXP)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Login:       acc.Login,
		Metrics:     metrics,
		Progression: Progression(classified.Experience, now),
		Breakdown:   breakdown,
	}, nil
}
