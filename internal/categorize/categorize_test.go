package categorize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendmap/spendmap/internal/mapping"
	"github.com/spendmap/spendmap/internal/model"
)

func row(name, debit string) model.Transaction {
	return model.Transaction{Name: name, Debit: decimal.RequireFromString(debit)}
}

func TestApply(t *testing.T) {
	tbl := mapping.NewTable([]model.Mapping{{Name: "JohnDoe", Category: "Rent"}})
	rows := []model.Transaction{row("JohnDoe", "100"), row("Unknown", "5"), row("JohnDoe", "50")}

	got := Apply(rows, tbl)

	assert.Equal(t, "Rent", got[0].Category)
	assert.Equal(t, model.Uncategorized, got[1].Category)
	assert.Equal(t, "Rent", got[2].Category)
	assert.Empty(t, rows[0].Category, "input rows are not modified")
}

func TestApply_EmptyTable(t *testing.T) {
	got := Apply([]model.Transaction{row("A", "1")}, mapping.NewTable(nil))
	assert.Equal(t, model.Uncategorized, got[0].Category)
}

func TestUncategorizedNames(t *testing.T) {
	rows := []model.Transaction{
		{Name: "B", Category: model.Uncategorized},
		{Name: "A", Category: "Rent"},
		{Name: "C", Category: model.Uncategorized},
		{Name: "B", Category: model.Uncategorized},
	}
	assert.Equal(t, []string{"B", "C"}, UncategorizedNames(rows))
}

func TestOverride(t *testing.T) {
	rows := []model.Transaction{
		{Name: "FreshMart", Category: model.Uncategorized},
		{Name: "JohnDoe", Category: "Rent"},
		{Name: "FreshMart", Category: model.Uncategorized},
		{Name: "Cafe", Category: model.Uncategorized},
	}
	res := Override(rows, map[string]string{
		"FreshMart": " Groceries ",
		"JohnDoe":   "Family",
		"Cafe":      "   ",
	})

	assert.Equal(t, "Groceries", res.Rows[0].Category)
	assert.Equal(t, "Rent", res.Rows[1].Category, "categorized names are not overridden")
	assert.Equal(t, "Groceries", res.Rows[2].Category)
	assert.Equal(t, model.Uncategorized, res.Rows[3].Category, "blank proposals are skipped")
	assert.Equal(t, []model.Mapping{{Name: "FreshMart", Category: "Groceries"}}, res.Pending)
	assert.Equal(t, model.Uncategorized, rows[0].Category, "input rows are not modified")
}

func TestOverride_NoProposals(t *testing.T) {
	rows := []model.Transaction{{Name: "A", Category: model.Uncategorized}}
	res := Override(rows, nil)
	assert.Equal(t, rows, res.Rows)
	assert.Empty(t, res.Pending)
}

func TestSuggest(t *testing.T) {
	known := []string{"Groceries", "Rent", "Dining"}

	assert.Equal(t, "", Suggest("Rent", known), "exact match needs no suggestion")
	assert.Equal(t, "Rent", Suggest("rent", known))
	assert.Equal(t, "Groceries", Suggest("Grocries", known))
	assert.Equal(t, "", Suggest("", known))
	assert.Equal(t, "", Suggest("Travel", nil))
}

func TestSuggest_UnrelatedWordsAreNotSuggested(t *testing.T) {
	known := []string{"Groceries", "Rent"}

	for _, input := range []string{"Utilities", "Entertainment", "Medical", "Rental"} {
		assert.Equal(t, "", Suggest(input, known), "input %q", input)
	}
	assert.Equal(t, "Rent", Suggest("Rnt", known))
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("rent", "rent"))
	assert.Equal(t, 1, editDistance("grocries", "groceries"))
	assert.Equal(t, 2, editDistance("rnet", "rent"))
	assert.Equal(t, 4, editDistance("", "rent"))
}

func TestMergeScenario(t *testing.T) {
	// JohnDoe is mapped, Unknown is not.
	tbl := mapping.NewTable([]model.Mapping{{Name: "JohnDoe", Category: "Rent"}})
	got := Apply([]model.Transaction{row("JohnDoe", "1"), row("Unknown", "2")}, tbl)
	require.Len(t, got, 2)
	assert.Equal(t, "Rent", got[0].Category)
	assert.Equal(t, "Uncategorized", got[1].Category)
}
