// Package report aggregates categorized rows into spending views.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendmap/spendmap/internal/model"
)

// CategoryTotal is the summed debit of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategoryTotals sums Debit per category, largest first. Categories with
// equal totals keep the order in which they first appear.
func CategoryTotals(rows []model.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, r := range rows {
		i, ok := index[r.Category]
		if !ok {
			i = len(totals)
			index[r.Category] = i
			totals = append(totals, CategoryTotal{Category: r.Category})
		}
		totals[i].Total = totals[i].Total.Add(r.Debit)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals
}

// Total returns the summed debit of rows.
func Total(rows []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Debit)
	}
	return sum
}
