// Package backend selects and constructs the snapshot store configured
// for the process.
package backend

import (
	"fmt"

	"profilo/internal/config"
	"profilo/internal/storage"
)

// Type identifies a snapshot store implementation.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

func (t Type) String() string { return string(t) }

// IsValid reports whether the type names a known backend.
func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite:
		return true
	default:
		return false
	}
}

// Types returns every valid backend type.
func Types() []Type {
	return []Type{Memory, SQLite}
}

// Result bundles the constructed store with its cleanup function.
// Cleanup may be nil.
type Result struct {
	Store   storage.Store
	Cleanup func() error
}

// Open builds the snapshot store named by the application config.
func Open(cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("backend: nil config")
	}

	t := Type(cfg.SnapshotBackend)
	switch t {
	case Memory:
		return &Result{Store: storage.NewMemoryStore()}, nil
	case SQLite:
		if cfg.SQLiteDBPath == "" {
			return nil, fmt.Errorf("backend: sqlite backend requires a database path")
		}
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("backend: open sqlite store: %w", err)
		}
		return &Result{Store: store, Cleanup: store.Close}, nil
	default:
		return nil, fmt.Errorf("backend: unknown backend type %q (valid: %v)", cfg.SnapshotBackend, Types())
	}
}
