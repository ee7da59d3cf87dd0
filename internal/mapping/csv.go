package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spendmap/spendmap/internal/model"
)

// Header is the CSV header of the mapping store.
const Header = "Name,Category"

const (
	numFields   = 2
	colName     = 0
	colCategory = 1
)

// ReadMappings reads a mapping CSV. An empty input yields no entries.
func ReadMappings(r io.Reader) ([]model.Mapping, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mappings CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if got := strings.Join(records[0], ","); got != Header {
		return nil, fmt.Errorf("unexpected mappings header %q, want %q", got, Header)
	}

	var entries []model.Mapping
	for _, rec := range records[1:] {
		entries = append(entries, UnmarshalMapping(rec))
	}
	return entries, nil
}

// WriteMappings writes the header and every entry.
func WriteMappings(w io.Writer, entries []model.Mapping) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range entries {
		if err := cw.Write(MarshalMapping(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalMapping converts a Mapping to a CSV row.
func MarshalMapping(m model.Mapping) []string {
	row := make([]string, numFields)
	row[colName] = m.Name
	row[colCategory] = m.Category
	return row
}

// UnmarshalMapping converts a CSV row to a Mapping.
func UnmarshalMapping(record []string) model.Mapping {
	return model.Mapping{
		Name:     record[colName],
		Category: record[colCategory],
	}
}
