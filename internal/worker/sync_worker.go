// Package worker contains the background processors: the export worker that
// turns stored snapshots into spreadsheet rows, and the refresh worker that
// keeps snapshots current while their platform tokens last.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"profilo/internal/amqp"
	"profilo/internal/core"
	"profilo/internal/sheets"
	"profilo/internal/storage"
)

// SyncWorker exports metrics summaries for freshly stored snapshots.
type SyncWorker struct {
	store  storage.Store
	writer sheets.MetricsWriter
	rules  core.Rules
}

func NewSyncWorker(store storage.Store, writer sheets.MetricsWriter, rules core.Rules) *SyncWorker {
	return &SyncWorker{
		store:  store,
		writer: writer,
		rules:  rules,
	}
}

// HandleSyncMessage reloads the announced snapshot, re-derives the metrics
// summary and appends it to the export target. Derived state is never read
// from the message; the stored snapshot is the single source.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SnapshotSyncMessage) error {
	slog.InfoContext(ctx, "Processing snapshot sync message", "login", msg.Login)

	snap, err := w.store.Get(ctx, msg.Login)
	if err != nil {
		return fmt.Errorf("get snapshot from storage: %w", err)
	}

	classified := core.Classify(snap.Account.Transactions, w.rules)
	metrics := core.Summarize(classified, snap.Account.TotalUp, snap.Account.TotalDown)

	if err := w.writer.AppendSummary(ctx, snap.Login, metrics, snap.FetchedAt); err != nil {
		return fmt.Errorf("append metrics summary: %w", err)
	}
	return nil
}
