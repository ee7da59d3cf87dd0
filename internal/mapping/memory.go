package mapping

import (
	"context"
	"slices"
	"sync"

	"github.com/spendmap/spendmap/internal/model"
)

// MemoryStore keeps mappings in memory. It is used by tests and by the
// "memory" backend for dry runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries []model.Mapping
	saves   int
}

// NewMemoryStore returns a MemoryStore seeded with entries.
func NewMemoryStore(entries []model.Mapping) *MemoryStore {
	return &MemoryStore{entries: slices.Clone(entries)}
}

// Location implements Store.
func (s *MemoryStore) Location() string { return "memory" }

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context) ([]model.Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries), nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, entries []model.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = slices.Clone(entries)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
