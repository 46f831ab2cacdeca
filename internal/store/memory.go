package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/shortlink"
)

// MemoryStore is an in-memory shortlink.Repository for tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	byAlias map[shortlink.Alias]*shortlink.ShortURL
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byAlias: make(map[shortlink.Alias]*shortlink.ShortURL),
		now:     time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, shortURL *shortlink.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byAlias[shortURL.Alias]; ok {
		return shortlink.ErrAliasInUse
	}

	if shortURL.ID == "" {
		shortURL.ID = uuid.NewString()
	}

	clone := *shortURL
	m.byAlias[shortURL.Alias] = &clone

	return nil
}

func (m *MemoryStore) AliasExists(_ context.Context, alias shortlink.Alias) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byAlias[alias]

	return ok, nil
}

func (m *MemoryStore) Resolve(_ context.Context, alias shortlink.Alias) (*shortlink.Resolution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byAlias[alias]
	if !ok || record.Expired(m.now()) {
		return nil, shortlink.ErrNotFound
	}

	return &shortlink.Resolution{
		ID:      record.ID,
		LongURL: record.LongURL,
	}, nil
}

// Delete removes a record. Not part of shortlink.Repository; tests use it
// to exercise cache staleness after a store deletion.
func (m *MemoryStore) Delete(alias shortlink.Alias) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byAlias, alias)
}

// Compile-time check.
var _ shortlink.Repository = (*MemoryStore)(nil)
