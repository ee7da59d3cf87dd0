// Package render prints the spending views to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/spendmap/spendmap/internal/model"
	"github.com/spendmap/spendmap/internal/report"
)

// barWidth is the length of the longest bar in the category chart.
const barWidth = 40

// Renderer writes views to w, with ANSI colours when Color is set.
type Renderer struct {
	w     io.Writer
	Color bool
}

// New returns a Renderer writing to w.
func New(w io.Writer, useColor bool) *Renderer {
	return &Renderer{w: w, Color: useColor}
}

func (r *Renderer) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// Heading prints a section title.
func (r *Renderer) Heading(title string) {
	fmt.Fprintf(r.w, "\n%s\n", r.paint(title, color.Bold, color.Underline))
}

// Transactions prints the categorized rows as Date, Name, Debit, Category.
func (r *Renderer) Transactions(rows []model.Transaction) {
	header := []string{"Date", "Name", "Debit", "Category"}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{row.Date, row.Name, money(row.Debit), row.Category}
	}
	widths := columnWidths(header, cells)

	right := []bool{false, false, true, false}

	fmt.Fprintln(r.w, r.paint(formatRow(header, widths, right), color.Bold))
	for i, c := range cells {
		line := formatRow(c, widths, right)
		if !rows[i].IsCategorized() {
			line = r.paint(line, color.FgYellow)
		}
		fmt.Fprintln(r.w, line)
	}
}

// CategoryTotals prints a horizontal bar per category, longest first.
func (r *Renderer) CategoryTotals(totals []report.CategoryTotal) {
	if len(totals) == 0 {
		fmt.Fprintln(r.w, "no spending")
		return
	}
	nameWidth, amountWidth := 0, 0
	largest := decimal.Zero
	for _, t := range totals {
		nameWidth = max(nameWidth, utf8.RuneCountInString(t.Category))
		amountWidth = max(amountWidth, len(money(t.Total)))
		if t.Total.GreaterThan(largest) {
			largest = t.Total
		}
	}
	for _, t := range totals {
		bar := strings.Repeat("█", barLength(t.Total, largest))
		fmt.Fprintf(r.w, "%s  %s  %s\n",
			pad(t.Category, nameWidth),
			padLeft(money(t.Total), amountWidth),
			r.paint(bar, color.FgCyan))
	}
}

// Monthly prints the month × category table with a total column.
func (r *Renderer) Monthly(p *report.Pivot) {
	if len(p.Months) == 0 {
		fmt.Fprintln(r.w, "no dated transactions")
		return
	}
	header := append([]string{"Month"}, p.Categories...)
	header = append(header, "Total")
	cells := make([][]string, len(p.Months))
	for i, m := range p.Months {
		row := []string{m.String()}
		for _, c := range p.Categories {
			row = append(row, money(p.Value(m, c)))
		}
		cells[i] = append(row, money(p.MonthTotal(m)))
	}
	widths := columnWidths(header, cells)
	right := make([]bool, len(header))
	for i := 1; i < len(right); i++ {
		right[i] = true
	}

	fmt.Fprintln(r.w, r.paint(formatRow(header, widths, right), color.Bold))
	for _, c := range cells {
		fmt.Fprintln(r.w, formatRow(c, widths, right))
	}
	if p.Skipped > 0 {
		fmt.Fprintln(r.w, r.paint(fmt.Sprintf("%d rows with unreadable dates not shown", p.Skipped), color.Faint))
	}
}

// Total prints the grand total line.
func (r *Renderer) Total(total decimal.Decimal, rows int) {
	fmt.Fprintf(r.w, "\n%s %s across %d transactions\n", r.paint("Total debit:", color.Bold), money(total), rows)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func barLength(v, largest decimal.Decimal) int {
	if !largest.IsPositive() || !v.IsPositive() {
		return 0
	}
	n := int(v.Mul(decimal.NewFromInt(barWidth)).Div(largest).Round(0).IntPart())
	if n == 0 {
		n = 1
	}
	return n
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(c))
		}
	}
	return widths
}

// formatRow pads every cell to its column width, right aligning the columns
// flagged in right.
func formatRow(cells []string, widths []int, right []bool) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if right[i] {
			parts[i] = padLeft(c, widths[i])
		} else {
			parts[i] = pad(c, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s)))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s))) + s
}
