package core

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func sampleAccount() Account {
	mar := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	may := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	return Account{
		Login:     "alice",
		TotalUp:   1_000_000,
		TotalDown: 500_000,
		Transactions: []Transaction{
			{ID: 1, CreatedAt: mar, Type: "xp", Amount: 800_000, Path: "/johvi/div-01/go-reloaded", Object: Subject{Name: "go-reloaded"}},
			{ID: 2, CreatedAt: mar, Type: "level", Amount: 2, Path: "/johvi/div-01/go-reloaded"},
			{ID: 3, CreatedAt: may, Type: "xp", Amount: 1_200_000, Path: "/johvi/div-01/ascii-art", Object: Subject{Name: "ascii-art"}},
			{ID: 4, CreatedAt: may, Type: "up", Amount: 300_000, Path: "/johvi/div-01/ascii-art"},
		},
	}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	d, err := BuildDashboard(sampleAccount(), DefaultRules(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Login != "alice" {
		t.Fatalf("expected login alice, got %q", d.Login)
	}
	if d.Metrics.Level != 2 || d.Metrics.TotalXP != 2_000_000 {
		t.Fatalf("unexpected metrics: %+v", d.Metrics)
	}
	if len(d.Progression) != 3 {
		t.Fatalf("expected Mar-May progression, got %v", d.Progression)
	}
	if len(d.Breakdown) != 2 {
		t.Fatalf("expected two breakdown slices, got %v", d.Breakdown)
	}
}

func TestBuildDashboardIdempotent(t *testing.T) {
	now := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	acc := sampleAccount()

	first, err := BuildDashboard(acc, DefaultRules(), now)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	second, err := BuildDashboard(acc, DefaultRules(), now)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two passes over the same snapshot differ:\n%+v\n%+v", first, second)
	}
}

func TestBuildDashboardMalformed(t *testing.T) {
	cases := []struct {
		name string
		acc  Account
	}{
		{"missing login", Account{Transactions: []Transaction{}}},
		{"missing transactions", Account{Login: "alice"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildDashboard(tc.acc, DefaultRules(), time.Now())
			if !errors.Is(err, ErrMalformedAccount) {
				t.Fatalf("expected ErrMalformedAccount, got %v", err)
			}
		})
	}
}

func TestBuildDashboardNoExperience(t *testing.T) {
	acc := Account{Login: "bob", Transactions: []Transaction{}}

	d, err := BuildDashboard(acc, DefaultRules(), time.Now())
	if err != nil {
		t.Fatalf("empty classification must not fail: %v", err)
	}
	if len(d.Progression) != 0 || len(d.Breakdown) != 0 {
		t.Fatalf("expected empty series, got %+v", d)
	}
}
