package mapping

import (
	"github.com/spendmap/spendmap/internal/model"
)

// Table is an in-memory Name→Category lookup with at most one entry per name.
type Table struct {
	entries []model.Mapping
	byName  map[string]string
}

// NewTable deduplicates entries and builds a Table.
func NewTable(entries []model.Mapping) *Table {
	deduped := Dedupe(entries)
	byName := make(map[string]string, len(deduped))
	for _, m := range deduped {
		byName[m.Name] = m.Category
	}
	return &Table{entries: deduped, byName: byName}
}

// Dedupe keeps the last entry written for every name, at the position of
// that last occurrence.
func Dedupe(entries []model.Mapping) []model.Mapping {
	last := make(map[string]int, len(entries))
	for i, m := range entries {
		last[m.Name] = i
	}
	out := make([]model.Mapping, 0, len(last))
	for i, m := range entries {
		if last[m.Name] == i {
			out = append(out, m)
		}
	}
	return out
}

// Entries returns the deduplicated entries in store order.
func (t *Table) Entries() []model.Mapping {
	return t.entries
}

// Len returns the number of names.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the category of name.
func (t *Table) Lookup(name string) (string, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// Categories returns the distinct categories in first-seen order.
func (t *Table) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, m := range t.entries {
		if !seen[m.Category] {
			seen[m.Category] = true
			cats = append(cats, m.Category)
		}
	}
	return cats
}

// CountByCategory returns how many names map to each category.
func (t *Table) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, m := range t.entries {
		counts[m.Category]++
	}
	return counts
}

// Merge returns a new Table with pending appended after the current entries.
func (t *Table) Merge(pending []model.Mapping) *Table {
	all := make([]model.Mapping, 0, len(t.entries)+len(pending))
	all = append(all, t.entries...)
	all = append(all, pending...)
	return NewTable(all)
}

// Changes describes what merging pending would do. Entries that do not alter
// the current category are omitted.
func (t *Table) Changes(pending []model.Mapping) []model.MappingChange {
	var changes []model.MappingChange
	for _, m := range Dedupe(pending) {
		prev, ok := t.byName[m.Name]
		if ok && prev == m.Category {
			continue
		}
		changes = append(changes, model.MappingChange{Name: m.Name, Previous: prev, Category: m.Category})
	}
	return changes
}
