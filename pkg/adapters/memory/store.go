// Package memory keeps session snapshots in process memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/tablefsm/pkg/domain"
)

// Store is a ports.SnapshotStore backed by a map. Snapshots are cloned on the
// way in and out, so callers never share raw JSON buffers with the store.
// Sessions live until deleted or the process exits.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{snapshots: make(map[string]*domain.Snapshot)}
}

// Save replaces the session's snapshot.
func (s *Store) Save(_ context.Context, sessionID string, snap *domain.Snapshot) error {
	snap = snap.Clone()

	s.mu.Lock()
	s.snapshots[sessionID] = snap
	s.mu.Unlock()
	return nil
}

// Load returns domain.ErrSessionNotFound for unknown sessions.
func (s *Store) Load(_ context.Context, sessionID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return snap.Clone(), nil
}

// Delete is a no-op for unknown sessions.
func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.snapshots, sessionID)
	s.mu.Unlock()
	return nil
}

// List returns session IDs sorted.
func (s *Store) List(context.Context) ([]string, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	slices.Sort(ids)
	return ids, nil
}
