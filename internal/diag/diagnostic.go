package diag

import (
	"quasicode/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single problem found in the analyzed program.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Start and End expose the problem range in the (message, start, end) shape
// downstream tools expect.
func (d Diagnostic) Start() source.Location { return d.Primary.Start }
func (d Diagnostic) End() source.Location   { return d.Primary.End }
