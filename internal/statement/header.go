package statement

import (
	"errors"
	"strings"
)

// ErrHeaderNotFound is returned when no line carries every header token.
var ErrHeaderNotFound = errors.New("header not found")

// DefaultHeaderTokens are the substrings that identify the table header.
var DefaultHeaderTokens = []string{"Date", "Remarks"}

// LocateHeader returns the index of the first line containing all tokens.
// Matching is by substring, so a data row that happens to contain every
// token before the real header will be taken as the header.
func LocateHeader(lines []string, tokens []string) (int, error) {
	if len(tokens) == 0 {
		tokens = DefaultHeaderTokens
	}
	for i, line := range lines {
		if containsAll(line, tokens) {
			return i, nil
		}
	}
	return -1, ErrHeaderNotFound
}

func containsAll(line string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(line, tok) {
			return false
		}
	}
	return true
}
