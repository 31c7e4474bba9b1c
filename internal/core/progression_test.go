package core

import (
	"testing"
	"time"
)

func xpAt(amount int64, year int, month time.Month, day int) Transaction {
	return tx(int64(year*100+day), "xp", "/johvi/div-01/p", amount,
		time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

func TestProgressionCumulativeWithForwardFill(t *testing.T) {
	// Second March record supersedes the first cumulative snapshot; April
	// has no activity and forward-fills from March.
	experience := []Transaction{
		xpAt(500_000, 2024, time.March, 5),
		xpAt(300_000, 2024, time.March, 20),
		xpAt(1_200_000, 2024, time.May, 2),
	}
	now := time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC)

	series := Progression(experience, now)

	want := []MonthBucket{
		{Label: "Mar 24", Value: 800},
		{Label: "Apr 24", Value: 800},
		{Label: "May 24", Value: 2000},
	}
	if len(series) != len(want) {
		t.Fatalf("expected %d buckets, got %d (%v)", len(want), len(series), series)
	}
	for i := range want {
		if series[i] != want[i] {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want[i], series[i])
		}
	}
}

func TestProgressionNonDecreasing(t *testing.T) {
	experience := []Transaction{
		xpAt(50_000, 2023, time.November, 3),
		xpAt(10_000, 2024, time.January, 9),
		xpAt(700_000, 2024, time.April, 1),
	}
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	series := Progression(experience, now)

	if len(series) != 8 {
		t.Fatalf("expected 8 buckets Nov 23..Jun 24, got %d", len(series))
	}
	for i := 1; i < len(series); i++ {
		if series[i].Value < series[i-1].Value {
			t.Fatalf("series decreases at %d: %v -> %v", i, series[i-1], series[i])
		}
	}
}

func TestProgressionEmpty(t *testing.T) {
	series := Progression(nil, time.Now())
	if len(series) != 0 {
		t.Fatalf("expected empty series, got %v", series)
	}
}
