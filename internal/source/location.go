package source

import "fmt"

// Location is a point in the program text. Locations are ordered by Index
// only; the row/column pairs exist for rendering.
type Location struct {
	Index         int32 // absolute rune offset
	Row           int32 // visual row, 1-based
	Column        int32 // visual column, 1-based
	LogicalRow    int32 // row after line continuations are folded
	LogicalColumn int32
}

// NoLocation marks synthesized tokens that have no position in the text.
var NoLocation = Location{Index: -1, Row: -1, Column: -1, LogicalRow: -1, LogicalColumn: -1}

// IsValid reports whether the location points into the text.
func (l Location) IsValid() bool { return l.Index >= 0 }

// Before reports whether l precedes other.
func (l Location) Before(other Location) bool { return l.Index < other.Index }

// Compare orders locations by Index.
func (l Location) Compare(other Location) int {
	switch {
	case l.Index < other.Index:
		return -1
	case l.Index > other.Index:
		return 1
	}
	return 0
}

// Offset returns the location moved n columns to the right on the same line.
func (l Location) Offset(n int32) Location {
	return Location{
		Index:         l.Index + n,
		Row:           l.Row,
		Column:        l.Column + n,
		LogicalRow:    l.LogicalRow,
		LogicalColumn: l.LogicalColumn + n,
	}
}

func (l Location) String() string {
	if !l.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", l.Row, l.Column)
}
