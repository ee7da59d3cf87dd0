package model

import (
	"github.com/shopspring/decimal"
)

// Uncategorized is the category of a row whose name has no mapping.
const Uncategorized = "Uncategorized"

// UnknownName is the name given to a row whose remark could not be read.
const UnknownName = "Unknown"

// Transaction represents one parsed statement row.
type Transaction struct {
	Line       int             // 1-based line in the statement file
	Date       string          // raw, parsed later by the aggregations
	Remarks    string
	HasRemarks bool            // false when the remarks cell was empty or absent
	Debit      decimal.Decimal // zero when the debit cell was empty
	Fields     map[string]string
	Name       string
	NameSource NameSource
	Category   string
}

// NameSource records how Name was derived from Remarks.
type NameSource string

const (
	NameFromSegment  NameSource = "segment"
	NameFromRemark   NameSource = "remark"
	NameFromFallback NameSource = "fallback"
)

// IsCategorized reports whether the row has a real category.
func (t Transaction) IsCategorized() bool {
	return t.Category != "" && t.Category != Uncategorized
}
