// Package names derives a counterparty name from a UPI remark.
package names

import (
	"strings"

	"github.com/spendmap/spendmap/internal/model"
)

// segment is the position of the counterparty in UPI/<ref>/<note>/<name>/<bank>.
const segment = 3

// Result is an extracted name together with how it was obtained.
type Result struct {
	Name   string
	Source model.NameSource
}

// Fallback reports whether the name is the placeholder for an unreadable remark.
func (r Result) Fallback() bool {
	return r.Source == model.NameFromFallback
}

// Extract returns the fourth slash-delimited field of remark, or the remark
// itself when it has fewer fields.
func Extract(remark string) Result {
	parts := strings.Split(remark, "/")
	if len(parts) > segment {
		return Result{Name: parts[segment], Source: model.NameFromSegment}
	}
	return Result{Name: remark, Source: model.NameFromRemark}
}

// FromTransaction extracts the name of a parsed row. A row without a remark
// gets model.UnknownName.
func FromTransaction(txn model.Transaction) Result {
	if !txn.HasRemarks {
		return Result{Name: model.UnknownName, Source: model.NameFromFallback}
	}
	return Extract(txn.Remarks)
}

// Annotate sets Name and NameSource on every row and returns how many rows
// fell back to model.UnknownName.
func Annotate(rows []model.Transaction) int {
	fallbacks := 0
	for i := range rows {
		res := FromTransaction(rows[i])
		rows[i].Name = res.Name
		rows[i].NameSource = res.Source
		if res.Fallback() {
			fallbacks++
		}
	}
	return fallbacks
}
