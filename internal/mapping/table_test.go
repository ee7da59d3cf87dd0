package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spendmap/spendmap/internal/model"
)

func TestDedupe_LastWriteWins(t *testing.T) {
	got := Dedupe([]model.Mapping{
		{Name: "A", Category: "Food"},
		{Name: "B", Category: "Rent"},
		{Name: "A", Category: "Travel"},
	})
	assert.Equal(t, []model.Mapping{
		{Name: "B", Category: "Rent"},
		{Name: "A", Category: "Travel"},
	}, got)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

func TestTable_Lookup(t *testing.T) {
	tbl := NewTable([]model.Mapping{{Name: "JohnDoe", Category: "Rent"}})

	cat, ok := tbl.Lookup("JohnDoe")
	assert.True(t, ok)
	assert.Equal(t, "Rent", cat)

	_, ok = tbl.Lookup("Unknown")
	assert.False(t, ok)
}

func TestTable_Categories(t *testing.T) {
	tbl := NewTable([]model.Mapping{
		{Name: "A", Category: "Food"},
		{Name: "B", Category: "Rent"},
		{Name: "C", Category: "Food"},
	})
	assert.Equal(t, []string{"Food", "Rent"}, tbl.Categories())
	assert.Equal(t, map[string]int{"Food": 2, "Rent": 1}, tbl.CountByCategory())
	assert.Equal(t, 3, tbl.Len())
}

func TestTable_Merge(t *testing.T) {
	tbl := NewTable([]model.Mapping{
		{Name: "A", Category: "Food"},
		{Name: "B", Category: "Rent"},
	})
	merged := tbl.Merge([]model.Mapping{
		{Name: "A", Category: "Groceries"},
		{Name: "C", Category: "Travel"},
	})

	assert.Equal(t, []model.Mapping{
		{Name: "B", Category: "Rent"},
		{Name: "A", Category: "Groceries"},
		{Name: "C", Category: "Travel"},
	}, merged.Entries())

	// The original table is untouched.
	cat, _ := tbl.Lookup("A")
	assert.Equal(t, "Food", cat)
}

func TestTable_Changes(t *testing.T) {
	tbl := NewTable([]model.Mapping{
		{Name: "A", Category: "Food"},
		{Name: "B", Category: "Rent"},
	})
	changes := tbl.Changes([]model.Mapping{
		{Name: "A", Category: "Groceries"},
		{Name: "B", Category: "Rent"},
		{Name: "C", Category: "Travel"},
	})
	assert.Equal(t, []model.MappingChange{
		{Name: "A", Previous: "Food", Category: "Groceries"},
		{Name: "C", Category: "Travel"},
	}, changes)
}
