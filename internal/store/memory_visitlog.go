package store

import (
	"context"
	"sync"

	"github.com/serroba/shortlink/internal/visitlog"
)

// VisitLogMemoryStore is an in-memory visitlog.Store for tests.
type VisitLogMemoryStore struct {
	mu      sync.Mutex
	entries []*visitlog.Entry
}

// NewVisitLogMemoryStore creates an empty in-memory visit log store.
func NewVisitLogMemoryStore() *VisitLogMemoryStore {
	return &VisitLogMemoryStore{}
}

func (s *VisitLogMemoryStore) SaveVisit(_ context.Context, entry *visitlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *entry
	s.entries = append(s.entries, &clone)

	return nil
}

// Entries returns a snapshot of all saved entries.
func (s *VisitLogMemoryStore) Entries() []*visitlog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*visitlog.Entry, len(s.entries))
	copy(out, s.entries)

	return out
}

// Compile-time check.
var _ visitlog.Store = (*VisitLogMemoryStore)(nil)
