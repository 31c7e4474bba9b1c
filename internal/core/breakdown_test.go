package core

import (
	"errors"
	"testing"
	"time"
)

func xpFor(name string, amount int64, day int) Transaction {
	return Transaction{
		ID:        int64(day),
		CreatedAt: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Type:      "xp",
		Amount:    amount,
		Path:      "/johvi/div-01/" + name,
		Object:    Subject{Name: name, Type: "project"},
	}
}

func TestBreakdownFirstOccurrenceWins(t *testing.T) {
	experience := []Transaction{
		xpFor("piscine-go", 100_000, 1),
		xpFor("piscine-go", 50_000, 2),
	}

	slices, err := Breakdown(experience, 150_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slices) != 1 {
		t.Fatalf("expected one slice, got %d", len(slices))
	}
	if slices[0].SourceName != "piscine-go" || slices[0].Amount != 100_000 {
		t.Fatalf("expected first occurrence to win, got %+v", slices[0])
	}
}

func TestBreakdownSkipsNonPositive(t *testing.T) {
	experience := []Transaction{
		xpFor("refund", -5000, 1),
		xpFor("zero", 0, 2),
		xpFor("real", 5000, 3),
	}

	slices, err := Breakdown(experience, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slices) != 1 || slices[0].SourceName != "real" {
		t.Fatalf("expected only the positive record, got %+v", slices)
	}
	if slices[0].Percentage != 100 {
		t.Fatalf("expected 100%%, got %v", slices[0].Percentage)
	}
}

func TestBreakdownAdmissionOrderAndShares(t *testing.T) {
	experience := []Transaction{
		xpFor("first", 25_000, 1),
		xpFor("second", 75_000, 2),
	}

	slices, err := Breakdown(experience, 100_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slices[0].SourceName != "first" || slices[1].SourceName != "second" {
		t.Fatalf("admission order lost: %+v", slices)
	}
	if slices[0].Percentage != 25 || slices[1].Percentage != 75 {
		t.Fatalf("unexpected shares: %+v", slices)
	}

	var sum int64
	for _, s := range slices {
		sum += s.Amount
	}
	if sum > 100_000 {
		t.Fatalf("slice amounts exceed the grand total: %d", sum)
	}
}

func TestBreakdownZeroTotal(t *testing.T) {
	_, err := Breakdown([]Transaction{xpFor("p", 100, 1)}, 0)
	if !errors.Is(err, ErrZeroTotal) {
		t.Fatalf("expected ErrZeroTotal, got %v", err)
	}
}

func TestBreakdownEmpty(t *testing.T) {
	slices, err := Breakdown(nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slices) != 0 {
		t.Fatalf("expected no slices, got %v", slices)
	}
}
