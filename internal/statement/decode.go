package statement

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEncoding is returned when the statement is not valid text.
var ErrEncoding = errors.New("statement is not valid UTF-8 text")

// Decode reads a statement and returns its lines. A UTF-8 BOM is dropped and
// UTF-16 input with a BOM is transcoded to UTF-8.
func Decode(r io.Reader) ([]string, error) {
	// Without a BOM the bytes pass through untouched so that invalid UTF-8
	// is reported instead of being replaced.
	dec := unicode.BOMOverride(transform.Nop)
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return nil, fmt.Errorf("decoding statement: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, ErrEncoding
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits text on LF or CRLF line endings. A lone CR is cell
// content and is kept. A trailing newline does not produce an empty final line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// joinLines is the inverse of SplitLines for the csv reader.
func joinLines(lines []string) io.Reader {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return &buf
}
