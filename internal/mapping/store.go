// Package mapping persists the Name→Category table that categorizes
// statement rows.
package mapping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spendmap/spendmap/internal/model"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown mapping store backend")

// Store loads and saves the complete mapping table. Save replaces the stored
// table; there is no locking, so concurrent writers race and the last one wins.
type Store interface {
	Load(ctx context.Context) ([]model.Mapping, error)
	Save(ctx context.Context, entries []model.Mapping) error
	Location() string
}

// Backend names a Store implementation.
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// IsValid reports whether b is a known backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendCSV, BackendSQLite, BackendMemory:
		return true
	}
	return false
}

// CleanupFunc releases resources held by a Store.
type CleanupFunc func() error

// Open creates the Store for backend at path.
func Open(backend Backend, path string) (Store, CleanupFunc, error) {
	noop := func() error { return nil }
	switch Backend(strings.ToLower(string(backend))) {
	case BackendCSV, "":
		return NewFileStore(path), noop, nil
	case BackendSQLite:
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendMemory:
		return NewMemoryStore(nil), noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// LoadTable loads a Store into a Table.
func LoadTable(ctx context.Context, s Store) (*Table, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading mappings from %s: %w", s.Location(), err)
	}
	return NewTable(entries), nil
}
