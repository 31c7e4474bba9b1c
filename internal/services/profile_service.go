// Package services orchestrates the fetch-aggregate-persist flow between
// the platform client, the core pipeline, the snapshot store and the sync
// queue.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"profilo/internal/core"
	"profilo/internal/storage"
)

// Platform is the remote 01-edu API surface the service needs.
type Platform interface {
	SignIn(ctx context.Context, login, password string) (string, error)
	FetchAccount(ctx context.Context, token string) (core.Account, error)
}

// SyncPublisher announces a freshly stored snapshot to the export worker.
type SyncPublisher interface {
	PublishSnapshotSync(ctx context.Context, login string, fetchedAt time.Time) error
}

type ProfileService struct {
	platform  Platform
	store     storage.Store
	publisher SyncPublisher
	rules     core.Rules
	now       func() time.Time
}

// NewProfileService wires the service. publisher may be nil when no AMQP
// broker is configured; the sheet export is then simply skipped.
func NewProfileService(platform Platform, store storage.Store, publisher SyncPublisher, rules core.Rules) *ProfileService {
	return &ProfileService{
		platform:  platform,
		store:     store,
		publisher: publisher,
		rules:     rules,
		now:       time.Now,
	}
}

// Login authenticates against the platform, fetches and aggregates the
// profile, and returns the dashboard together with the platform token for
// the session.
func (s *ProfileService) Login(ctx context.Context, login, password string) (core.Dashboard, string, error) {
	token, err := s.platform.SignIn(ctx, login, password)
	if err != nil {
		return core.Dashboard{}, "", fmt.Errorf("sign in: %w", err)
	}

	dashboard, err := s.fetchAndAggregate(ctx, token)
	if err != nil {
		return core.Dashboard{}, "", err
	}
	return dashboard, token, nil
}

// Refresh re-fetches and re-aggregates using an existing token.
func (s *ProfileService) Refresh(ctx context.Context, token string) (core.Dashboard, error) {
	return s.fetchAndAggregate(ctx, token)
}

func (s *ProfileService) fetchAndAggregate(ctx context.Context, token string) (core.Dashboard, error) {
	acc, err := s.platform.FetchAccount(ctx, token)
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("fetch account: %w", err)
	}

	dashboard, err := core.BuildDashboard(acc, s.rules, s.now())
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("aggregate account: %w", err)
	}

	fetchedAt := s.now()
	snap := storage.Snapshot{
		Login:     acc.Login,
		Token:     token,
		Account:   acc,
		FetchedAt: fetchedAt,
	}
	if err := s.store.Put(ctx, snap); err != nil {
		// The dashboard is already derived; losing the snapshot only
		// degrades offline re-render and export.
		slog.ErrorContext(ctx, "Failed to store snapshot",
			"login", acc.Login, "error", err)
		return dashboard, nil
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSnapshotSync(ctx, acc.Login, fetchedAt); err != nil {
			slog.ErrorContext(ctx, "Failed to publish sync message",
				"login", acc.Login, "error", err)
		}
	}
	return dashboard, nil
}

// FromSnapshot re-runs the pipeline over the stored snapshot for a login,
// without touching the network.
func (s *ProfileService) FromSnapshot(ctx context.Context, login string) (core.Dashboard, error) {
	snap, err := s.store.Get(ctx, login)
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("load snapshot: %w", err)
	}
	dashboard, err := core.BuildDashboard(snap.Account, s.rules, s.now())
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("aggregate snapshot: %w", err)
	}
	return dashboard, nil
}
