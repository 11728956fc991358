package diagfmt

import (
	"encoding/json"
	"io"

	"quasicode/internal/diag"
	"quasicode/internal/source"
)

// LocationJSON is a span in the program document.
type LocationJSON struct {
	File      string `json:"file"`
	Start     int32  `json:"start"`
	End       int32  `json:"end"`
	StartLine int32  `json:"start_line,omitempty"`
	StartCol  int32  `json:"start_col,omitempty"`
	EndLine   int32  `json:"end_line,omitempty"`
	EndCol    int32  `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	RunID       string           `json:"run_id,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
	Semantics   *SemanticsOutput `json:"semantics,omitempty"`
}

// makeLocation returns nil for synthesized spans.
func makeLocation(sp source.Span, path string, positions bool) *LocationJSON {
	if !sp.IsValid() {
		return nil
	}
	loc := &LocationJSON{File: path, Start: sp.Start.Index, End: sp.End.Index}
	if positions {
		loc.StartLine, loc.StartCol = sp.Start.Row, sp.Start.Column
		loc.EndLine, loc.EndCol = sp.End.Row, sp.End.Column
	}
	return loc
}

// BuildDiagnosticsOutput builds the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, src Source, opts JSONOpts) DiagnosticsOutput {
	path := FormatPath(src, opts.PathMode, opts.BaseDir)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Dropped:     bag.Dropped(),
	}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, path, opts.IncludePositions),
		}
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  n.Msg,
					Location: makeLocation(n.Span, path, opts.IncludePositions),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, src Source, opts JSONOpts) error {
	return EncodeJSON(w, BuildDiagnosticsOutput(bag, src, opts))
}

// EncodeJSON writes v indented.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
