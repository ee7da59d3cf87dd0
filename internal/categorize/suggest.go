package categorize

import (
	"strings"

	"github.com/schollz/closestmatch"
)

// Suggest returns the known category input is most likely a misspelling of,
// or "" when input already matches one exactly or nothing is close. The
// closest candidate counts only when it is within a few edits of input.
func Suggest(input string, known []string) string {
	input = strings.TrimSpace(input)
	if input == "" || len(known) == 0 {
		return ""
	}
	for _, k := range known {
		if strings.EqualFold(k, input) {
			if k == input {
				return ""
			}
			return k
		}
	}
	cm := closestmatch.New(known, []int{2, 3})
	best := cm.Closest(input)
	if best == "" {
		return ""
	}
	if editDistance(strings.ToLower(input), strings.ToLower(best)) > maxEdits(input) {
		return ""
	}
	return best
}

// maxEdits allows one edit per four characters, at least one.
func maxEdits(s string) int {
	return max(1, len([]rune(s))/4)
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
