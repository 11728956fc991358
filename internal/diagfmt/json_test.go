package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"quasicode/internal/diag"
	"quasicode/internal/source"
)

func TestJSONOutput(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaDuplicateSymbol, at(2, 10, 2), "dup").WithNote(at(3, 5, 5), "previous"))
	bag.Add(diag.NewError(diag.SemaBreakOutsideLoop, at(3, 1, 5), "break"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.NoSpan, "timings").WithNote(source.NoSpan, "{}"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, sample, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if out.Count != 3 || len(out.Diagnostics) != 3 {
		t.Fatalf("count %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "SEM3002" || first.Severity != "error" || first.Location == nil {
		t.Fatalf("first %+v", first)
	}
	if first.Location.File != "main.yaml" || first.Location.StartLine != 2 || first.Location.StartCol != 10 || first.Location.EndCol != 12 {
		t.Fatalf("location %+v", *first.Location)
	}
	if len(first.Notes) != 0 {
		t.Fatalf("notes included without IncludeNotes")
	}
	timings := out.Diagnostics[2]
	if timings.Location != nil || len(timings.Notes) != 1 || timings.Notes[0].Message != "{}" {
		t.Fatalf("timings %+v", timings)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaDuplicateSymbol, at(2, 10, 2), "dup").WithNote(at(3, 5, 5), "previous"))
	bag.Add(diag.NewError(diag.SemaBreakOutsideLoop, at(3, 1, 5), "break"))

	out := BuildDiagnosticsOutput(bag, sample, JSONOpts{Max: 1, IncludeNotes: true})
	if out.Count != 1 {
		t.Fatalf("Max not applied: %d", out.Count)
	}
	notes := out.Diagnostics[0].Notes
	if len(notes) != 1 || notes[0].Location == nil || notes[0].Location.StartLine != 0 {
		t.Fatalf("notes %+v", notes)
	}
}
