package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendmap/spendmap/internal/model"
)

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf truncates t to its calendar month.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// String formats m as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m is earlier than o.
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

type cell struct {
	month    Month
	category string
}

// Pivot is a Month × Category table of summed debits.
type Pivot struct {
	Months     []Month  // ascending
	Categories []string // alphabetical
	Skipped    int      // rows left out because their date did not parse
	cells      map[cell]decimal.Decimal
}

// Value returns the total for (m, category), zero when no row contributed.
func (p *Pivot) Value(m Month, category string) decimal.Decimal {
	if v, ok := p.cells[cell{m, category}]; ok {
		return v
	}
	return decimal.Zero
}

// MonthTotal returns the summed debit of m across categories.
func (p *Pivot) MonthTotal(m Month) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range p.Categories {
		sum = sum.Add(p.Value(m, c))
	}
	return sum
}

// MonthlyPivot sums Debit per calendar month and category. Rows whose date
// cannot be parsed with layouts are left out of this view only.
func MonthlyPivot(rows []model.Transaction, layouts []string) *Pivot {
	p := &Pivot{cells: make(map[cell]decimal.Decimal)}
	months := make(map[Month]bool)
	cats := make(map[string]bool)

	for _, r := range rows {
		t, ok := ParseDate(r.Date, layouts)
		if !ok {
			p.Skipped++
			continue
		}
		m := MonthOf(t)
		k := cell{m, r.Category}
		p.cells[k] = p.Value(m, r.Category).Add(r.Debit)
		months[m] = true
		cats[r.Category] = true
	}

	for m := range months {
		p.Months = append(p.Months, m)
	}
	sort.Slice(p.Months, func(i, j int) bool { return p.Months[i].Before(p.Months[j]) })
	for c := range cats {
		p.Categories = append(p.Categories, c)
	}
	sort.Strings(p.Categories)
	return p
}
