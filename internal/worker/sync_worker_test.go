package worker

import (
	"context"
	"testing"
	"time"

	"profilo/internal/amqp"
	"profilo/internal/core"
	"profilo/internal/sheets/memory"
	"profilo/internal/storage"
)

func storedSnapshot(t *testing.T, store storage.Store) storage.Snapshot {
	t.Helper()
	snap := storage.Snapshot{
		Login: "alice",
		Token: "tok",
		Account: core.Account{
			Login:     "alice",
			TotalUp:   3_000_000,
			TotalDown: 2_000_000,
			Transactions: []core.Transaction{
				{
					ID:        1,
					CreatedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
					Type:      "xp",
					Amount:    800_000,
					Path:      "/johvi/div-01/go-reloaded",
					Object:    core.Subject{Name: "go-reloaded"},
				},
				{
					ID:        2,
					CreatedAt: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
					Type:      "level",
					Amount:    5,
					Path:      "/johvi/div-01/go-reloaded",
				},
			},
		},
		FetchedAt: time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC),
	}
	if err := store.Put(context.Background(), snap); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
	return snap
}

func TestHandleSyncMessage(t *testing.T) {
	store := storage.NewMemoryStore()
	writer := memory.NewWriter()
	snap := storedSnapshot(t, store)

	w := NewSyncWorker(store, writer, core.DefaultRules())
	msg := amqp.NewSnapshotSyncMessage(snap.Login, snap.FetchedAt)

	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rows := writer.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected one exported row, got %d", len(rows))
	}
	row := rows[0]
	if row.Login != "alice" || row.Metrics.Level != 5 || row.Metrics.TotalXP != 800_000 {
		t.Fatalf("unexpected exported metrics: %+v", row)
	}
	if !row.Metrics.RatioKnown || row.Metrics.AuditRatio != 1.5 {
		t.Fatalf("unexpected ratio: %+v", row.Metrics)
	}
	if !row.FetchedAt.Equal(snap.FetchedAt) {
		t.Fatalf("fetch time not carried through: %v", row.FetchedAt)
	}
}

func TestHandleSyncMessageMissingSnapshot(t *testing.T) {
	w := NewSyncWorker(storage.NewMemoryStore(), memory.NewWriter(), core.DefaultRules())
	msg := amqp.NewSnapshotSyncMessage("ghost", time.Now())

	if err := w.HandleSyncMessage(context.Background(), msg); err == nil {
		t.Fatalf("expected error for missing snapshot")
	}
}
