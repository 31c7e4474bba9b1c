// Package storage persists the last fetched account snapshot per login so
// dashboards can re-render and workers can re-derive metrics without holding
// credentials. Only the raw snapshot is stored; derived series are always
// recomputed from it.
package storage

import (
	"context"
	"errors"
	"time"

	"profilo/internal/core"
)

// ErrNotFound reports a login with no stored snapshot.
var ErrNotFound = errors.New("storage: snapshot not found")

// Snapshot is one login's fetched account plus the platform token used to
// fetch it. The token lets the refresh worker re-fetch while it is valid.
type Snapshot struct {
	Login     string
	Token     string
	Account   core.Account
	FetchedAt time.Time
}

// Store is the snapshot persistence port. Put replaces any previous
// snapshot for the same login.
type Store interface {
	Put(ctx context.Context, snap Snapshot) error
	Get(ctx context.Context, login string) (Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
	Close() error
}
