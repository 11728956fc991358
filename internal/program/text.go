package program

import (
	"strings"
	"unicode/utf8"

	"quasicode/internal/source"
)

// Text is the document a program was loaded from.
type Text struct {
	Path   string
	lines  []string
	starts []int32
}

func newText(path string, data []byte) *Text {
	raw := strings.Split(string(data), "\n")
	t := &Text{Path: path, lines: make([]string, len(raw)), starts: make([]int32, len(raw))}
	var offset int32
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		t.lines[i] = line
		t.starts[i] = offset
		offset += int32(utf8.RuneCountInString(line)) + 1
	}
	return t
}

// Name is the path the document was read from.
func (t *Text) Name() string {
	if t == nil {
		return ""
	}
	return t.Path
}

// Line returns the 1-based row of the document.
func (t *Text) Line(row int32) (string, bool) {
	if t == nil || row < 1 || int(row) > len(t.lines) {
		return "", false
	}
	return t.lines[row-1], true
}

// Location converts a 1-based row and rune column to a location.
func (t *Text) Location(row, col int) source.Location {
	if row < 1 || row > len(t.starts) || col < 1 {
		return source.NoLocation
	}
	r, c := int32(row), int32(col)
	return source.Location{
		Index:         t.starts[row-1] + c - 1,
		Row:           r,
		Column:        c,
		LogicalRow:    r,
		LogicalColumn: c,
	}
}
