// Package statement locates and parses the transaction table of a bank
// statement export.
package statement

import (
	"fmt"
	"io"
	"os"
)

// Read decodes a statement, finds its header and parses the table below it.
func Read(r io.Reader, opts Options) (*Statement, error) {
	lines, err := Decode(r)
	if err != nil {
		return nil, err
	}
	start, err := LocateHeader(lines, opts.HeaderTokens)
	if err != nil {
		return nil, err
	}
	return Parse(lines[start:], start, opts)
}

// ReadFile opens path and calls Read.
func ReadFile(path string, opts Options) (*Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	st, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading statement %s: %w", path, err)
	}
	return st, nil
}
