package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendmap/spendmap/internal/model"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInconsistentRow is returned when a row has more cells than the header.
	ErrInconsistentRow = errors.New("row has more fields than header")
)

// Options controls how a statement is located and parsed.
type Options struct {
	HeaderTokens       []string
	DateColumn         string
	RemarksColumn      string
	DebitColumn        string
	MaxTrailingMissing int // a last row with more missing cells than this is dropped
}

// DefaultOptions returns the options for a typical UPI statement export.
func DefaultOptions() Options {
	return Options{
		HeaderTokens:       DefaultHeaderTokens,
		DateColumn:         "Date",
		RemarksColumn:      "Remarks",
		DebitColumn:        "Debit",
		MaxTrailingMissing: 2,
	}
}

// Statement is a parsed bank statement.
type Statement struct {
	Columns         []string
	Rows            []model.Transaction
	HeaderLine      int  // 0-based index of the header in the source lines
	DroppedTrailing bool // the footer row was discarded
}

// Parse reads the table starting at its header line. lineOffset is the index
// of lines[0] in the original file and is only used for row numbers.
func Parse(lines []string, lineOffset int, opts Options) (*Statement, error) {
	cr := csv.NewReader(joinLines(lines))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrHeaderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := normalizeColumns(header)

	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	dateCol, remarksCol, debitCol := -1, -1, -1
	for _, req := range []struct {
		name string
		dst  *int
	}{
		{opts.DateColumn, &dateCol},
		{opts.RemarksColumn, &remarksCol},
		{opts.DebitColumn, &debitCol},
	} {
		i, ok := idx[req.name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, req.name)
		}
		*req.dst = i
	}

	var records [][]string
	var lineNos []int
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading statement CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) > len(columns) {
			return nil, fmt.Errorf("line %d: %w (%d > %d)", lineOffset+line, ErrInconsistentRow, len(rec), len(columns))
		}
		records = append(records, padRecord(rec, len(columns)))
		lineNos = append(lineNos, lineOffset+line)
	}

	st := &Statement{Columns: columns, HeaderLine: lineOffset}
	if n := len(records); n > 0 && countMissing(records[n-1]) > opts.MaxTrailingMissing {
		records = records[:n-1]
		st.DroppedTrailing = true
	}

	for i, rec := range records {
		debit, err := ParseAmount(rec[debitCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing %s %q: %w", lineNos[i], opts.DebitColumn, rec[debitCol], err)
		}
		fields := make(map[string]string, len(columns))
		for j, c := range columns {
			fields[c] = rec[j]
		}
		st.Rows = append(st.Rows, model.Transaction{
			Line:       lineNos[i],
			Date:       rec[dateCol],
			Remarks:    rec[remarksCol],
			HasRemarks: rec[remarksCol] != "",
			Debit:      debit,
			Fields:     fields,
		})
	}
	return st, nil
}

// ParseAmount parses a statement amount. Empty cells are zero and thousands
// separators are ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func normalizeColumns(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		columns[i] = name
	}
	return columns
}

// padRecord trims cells and extends short rows with empty (missing) cells.
func padRecord(rec []string, width int) []string {
	out := make([]string, width)
	for i, v := range rec {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func countMissing(rec []string) int {
	n := 0
	for _, v := range rec {
		if v == "" {
			n++
		}
	}
	return n
}
