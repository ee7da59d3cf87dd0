package categorize

import (
	"context"
	"fmt"
	"strings"

	"github.com/spendmap/spendmap/internal/mapping"
	"github.com/spendmap/spendmap/internal/model"
)

// Session accumulates category assignments over one run and saves them to
// a mapping store on request.
type Session struct {
	table      *mapping.Table
	categories []string
	pending    []model.Mapping
}

// NewSession starts a session over a loaded table.
func NewSession(table *mapping.Table) *Session {
	return &Session{table: table, categories: table.Categories()}
}

// Load reads the store and starts a session.
func Load(ctx context.Context, store mapping.Store) (*Session, error) {
	tbl, err := mapping.LoadTable(ctx, store)
	if err != nil {
		return nil, err
	}
	return NewSession(tbl), nil
}

// Table returns the table loaded at the start of the session.
func (s *Session) Table() *mapping.Table {
	return s.table
}

// Categorize joins rows with the loaded table and then applies every
// assignment made so far in this session.
func (s *Session) Categorize(rows []model.Transaction) []model.Transaction {
	out := Apply(rows, s.table)
	byName := make(map[string]string, len(s.pending))
	for _, m := range s.pending {
		byName[m.Name] = m.Category
	}
	for i := range out {
		if cat, ok := byName[out[i].Name]; ok {
			out[i].Category = cat
		}
	}
	return out
}

// Override applies proposals to rows and records the resulting entries.
func (s *Session) Override(rows []model.Transaction, proposals map[string]string) []model.Transaction {
	res := Override(rows, proposals)
	for _, m := range res.Pending {
		s.record(m)
	}
	return res.Rows
}

// Assign records a mapping for any name, replacing an existing one on save.
func (s *Session) Assign(name, category string) error {
	category = strings.TrimSpace(category)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if category == "" {
		return fmt.Errorf("category for %q is required", name)
	}
	s.record(model.Mapping{Name: name, Category: category})
	return nil
}

func (s *Session) record(m model.Mapping) {
	s.pending = append(s.pending, m)
	for _, c := range s.categories {
		if c == m.Category {
			return
		}
	}
	s.categories = append(s.categories, m.Category)
}

// Pending returns the entries recorded since the last save.
func (s *Session) Pending() []model.Mapping {
	return s.pending
}

// Categories returns the known categories: loaded ones first, then those
// introduced in this session.
func (s *Session) Categories() []string {
	return s.categories
}

// Save appends the pending entries to the table, deduplicates by name with
// the newest entry winning and overwrites the store with the result.
// It returns the changes relative to the table before the save.
func (s *Session) Save(ctx context.Context, store mapping.Store) ([]model.MappingChange, error) {
	changes := s.table.Changes(s.pending)
	merged := s.table.Merge(s.pending)
	if err := store.Save(ctx, merged.Entries()); err != nil {
		return nil, fmt.Errorf("saving mappings to %s: %w", store.Location(), err)
	}
	s.table = merged
	s.pending = nil
	return changes, nil
}
