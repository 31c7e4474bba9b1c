package memory

import (
	"context"
	"testing"
	"time"

	"profilo/internal/core"
)

func TestWriterAppend(t *testing.T) {
	w := NewWriter()
	fetched := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)
	m := core.Metrics{Level: 7, TotalXPMB: 2.5, RatioKnown: true, AuditRatio: 1.2}

	if err := w.AppendSummary(context.Background(), "alice", m, fetched); err != nil {
		t.Fatalf("append: %v", err)
	}

	rows := w.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].Login != "alice" || rows[0].Metrics.Level != 7 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestWriterRowsIsCopy(t *testing.T) {
	w := NewWriter()
	_ = w.AppendSummary(context.Background(), "alice", core.Metrics{}, time.Now())

	rows := w.Rows()
	rows[0].Login = "mallory"

	if w.Rows()[0].Login != "alice" {
		t.Fatalf("Rows must return a copy")
	}
}
