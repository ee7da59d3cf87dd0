// Package history keeps an append-only CSV log of mapping changes.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spendmap/spendmap/internal/model"
)

// Entry is one row in the history log.
type Entry struct {
	Timestamp  time.Time
	Name       string
	Previous   string
	Category   string
	CommitHash string
}

// Header is the CSV header for mapping-history.csv.
const Header = "timestamp,name,previous_category,category,commit_hash"

// Dir is the workspace subdirectory holding the history log.
const Dir = "logs"

const (
	numFields     = 5
	logFile       = "logs/mapping-history.csv"
	colTimestamp  = 0
	colName       = 1
	colPrevious   = 2
	colCategory   = 3
	colCommitHash = 4
)

// FromChanges builds entries for changes saved at ts.
func FromChanges(ts time.Time, changes []model.MappingChange, commitHash string) []Entry {
	entries := make([]Entry, len(changes))
	for i, c := range changes {
		entries[i] = Entry{
			Timestamp:  ts,
			Name:       c.Name,
			Previous:   c.Previous,
			Category:   c.Category,
			CommitHash: commitHash,
		}
	}
	return entries
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colName] = e.Name
	row[colPrevious] = e.Previous
	row[colCategory] = e.Category
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp:  ts,
		Name:       record[colName],
		Previous:   record[colPrevious],
		Category:   record[colCategory],
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <workspace>/logs/mapping-history.csv, creating the
// file and header if needed.
func Append(workspace string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	dir := filepath.Join(workspace, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(workspace, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <workspace>/logs/mapping-history.csv.
// Returns an empty slice if the file does not exist.
func Read(workspace string) ([]Entry, error) {
	path := filepath.Join(workspace, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
