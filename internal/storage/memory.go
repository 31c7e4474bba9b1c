package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps snapshots in process memory. Default backend for local
// runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]Snapshot)}
}

func (s *MemoryStore) Put(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.Login] = snap
	return nil
}

func (s *MemoryStore) Get(_ context.Context, login string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[login]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snaps := make([]Snapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Login < snaps[j].Login })
	return snaps, nil
}

func (s *MemoryStore) Close() error { return nil }
