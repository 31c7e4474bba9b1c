package worker

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"profilo/internal/intra"
	"profilo/internal/services"
	"profilo/internal/storage"
)

// RefreshWorker periodically re-fetches stored snapshots whose platform
// token is still usable. Expired sessions are left alone until the user
// signs in again.
type RefreshWorker struct {
	store       storage.Store
	service     *services.ProfileService
	tokenMargin time.Duration
	concurrency int
	now         func() time.Time
}

func NewRefreshWorker(store storage.Store, service *services.ProfileService, tokenMargin time.Duration) *RefreshWorker {
	return &RefreshWorker{
		store:       store,
		service:     service,
		tokenMargin: tokenMargin,
		concurrency: 4,
		now:         time.Now,
	}
}

// Run refreshes on every tick of interval until ctx is done.
func (w *RefreshWorker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RefreshAll(ctx); err != nil {
				slog.ErrorContext(ctx, "Refresh pass failed", "error", err)
			}
		}
	}
}

// RefreshAll walks the stored snapshots once, re-fetching the usable ones
// with bounded concurrency. Per-login failures are logged and do not stop
// the pass.
func (w *RefreshWorker) RefreshAll(ctx context.Context) error {
	snaps, err := w.store.List(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	refreshed := 0
	for _, snap := range snaps {
		if !intra.TokenUsable(snap.Token, w.now(), w.tokenMargin) {
			slog.InfoContext(ctx, "Skipping expired session", "login", snap.Login)
			continue
		}
		refreshed++
		g.Go(func() error {
			if _, err := w.service.Refresh(ctx, snap.Token); err != nil {
				slog.ErrorContext(ctx, "Snapshot refresh failed",
					"login", snap.Login, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Refresh pass complete",
		"eligible", refreshed, "total", len(snaps))
	return nil
}
