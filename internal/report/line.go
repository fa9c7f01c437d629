package report

import (
	"fmt"

	"github.com/papapumpkin/beacon/internal/tline"
)

// Kind is the category of a diagnostic item.
type Kind int

const (
	KindNone    Kind = iota // not inside any item
	KindWarning             // compiler warning
	KindError               // compiler error
	KindSum                 // build summary footer, excluded from reports
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	case KindSum:
		return "sum"
	}
	return "none"
}

// LineType tags a classified line. A title line opens a new item of the
// given kind; any other line continues the current one.
type LineType struct {
	Title bool
	Kind  Kind
}

// Continuation is the type of every non-title line.
var Continuation = LineType{}

// Title returns the line type of a title of the given kind.
func Title(k Kind) LineType {
	return LineType{Title: true, Kind: k}
}

// String renders the type as "title(<kind>)" or "continuation".
func (t LineType) String() string {
	if !t.Title {
		return "continuation"
	}
	return fmt.Sprintf("title(%s)", t.Kind)
}

// MarshalText renders the type as its String form.
func (t LineType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Line is one row of a report. ItemIdx is 0 for lines outside any item and
// counts items from 1 otherwise.
type Line struct {
	ItemIdx int         `json:"item_idx"`
	Type    LineType    `json:"line_type"`
	Content tline.TLine `json:"content"`
}
