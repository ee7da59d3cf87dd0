// Package categorize assigns categories to statement rows from the mapping
// table and from user-supplied proposals.
package categorize

import (
	"slices"
	"strings"

	"github.com/spendmap/spendmap/internal/mapping"
	"github.com/spendmap/spendmap/internal/model"
)

// Apply left-joins rows onto table by Name. Rows without a mapping get
// model.Uncategorized. The input slice is not modified.
func Apply(rows []model.Transaction, table *mapping.Table) []model.Transaction {
	out := slices.Clone(rows)
	for i := range out {
		if cat, ok := table.Lookup(out[i].Name); ok {
			out[i].Category = cat
		} else {
			out[i].Category = model.Uncategorized
		}
	}
	return out
}

// UncategorizedNames returns the distinct names still in model.Uncategorized,
// in the order they first appear.
func UncategorizedNames(rows []model.Transaction) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range rows {
		if r.Category != model.Uncategorized || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		names = append(names, r.Name)
	}
	return names
}

// OverrideResult is the outcome of Override.
type OverrideResult struct {
	Rows    []model.Transaction
	Pending []model.Mapping // one per overridden name, in proposal order
}

// Override applies proposed categories to uncategorized names. Proposals for
// names that are already categorized, or whose value is blank, are ignored.
func Override(rows []model.Transaction, proposals map[string]string) OverrideResult {
	out := slices.Clone(rows)
	var pending []model.Mapping
	for _, name := range UncategorizedNames(rows) {
		cat := strings.TrimSpace(proposals[name])
		if cat == "" {
			continue
		}
		for i := range out {
			if out[i].Name == name {
				out[i].Category = cat
			}
		}
		pending = append(pending, model.Mapping{Name: name, Category: cat})
	}
	return OverrideResult{Rows: out, Pending: pending}
}
