package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"quasicode/internal/diag"
	"quasicode/internal/source"
)

type testSource struct {
	name  string
	lines []string
}

func (s testSource) Name() string { return s.name }

func (s testSource) Line(row int32) (string, bool) {
	if row < 1 || int(row) > len(s.lines) {
		return "", false
	}
	return s.lines[row-1], true
}

func at(row, col, width int32) source.Span {
	start := source.Location{Index: col - 1, Row: row, Column: col, LogicalRow: row, LogicalColumn: col}
	return source.Span{Start: start, End: start.Offset(width)}
}

var sample = testSource{
	name:  "main.yaml",
	lines: []string{"program:", "  - set: 变量", "    value: 1"},
}

func TestPrettyUnderlinesWideRunes(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaDuplicateSymbol, at(2, 10, 2), "Invalid redeclaration of 变量").
		WithNote(at(3, 5, 5), "previous declaration"))

	var buf bytes.Buffer
	Pretty(&buf, bag, sample, PrettyOpts{Context: 1})
	out := buf.String()

	for _, want := range []string{
		"main.yaml:2:10: ERROR SEM3002: Invalid redeclaration of 变量\n",
		"1 | program:\n",
		"2 |   - set: 变量\n",
		"  | " + strings.Repeat(" ", 9) + "^~~~\n",
		"  = note: previous declaration\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "-->") {
		t.Fatalf("note excerpt shown without ShowNotes:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("color escape without Color:\n%s", out)
	}
}

func TestPrettyNotesAndColor(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaDuplicateSymbol, at(2, 10, 2), "dup").
		WithNote(at(3, 5, 5), "previous declaration"))

	var buf bytes.Buffer
	Pretty(&buf, bag, sample, PrettyOpts{Color: true, ShowNotes: true})
	out := buf.String()
	if !strings.Contains(out, "--> main.yaml:3:5") {
		t.Fatalf("note location missing:\n%s", out)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected color escapes:\n%s", out)
	}
}

func TestPrettyWithoutSpan(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.NoSpan, "timings (analysis): total 1.00 ms").
		WithNote(source.NoSpan, `{"kind":"analysis"}`))
	bag.Add(diag.NewError(diag.SemaError, at(1, 1, 1), "dropped"))

	var buf bytes.Buffer
	Pretty(&buf, bag, sample, PrettyOpts{})
	want := "main.yaml: INFO OBS6001: timings (analysis): total 1.00 ms\n... 1 more diagnostics not shown\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestShort(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaBreakOutsideLoop, at(2, 5, 5), "Can't use 'break' outside of loop"))
	var buf bytes.Buffer
	Short(&buf, bag, sample, PathModeAuto)
	want := "main.yaml:2:5: error SEM3005 Can't use 'break' outside of loop\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPathModes(t *testing.T) {
	src := testSource{name: "/home/user/project/src/very/deeply/nested/program.yaml"}
	cases := []struct {
		mode PathMode
		base string
		want string
	}{
		{PathModeBasename, "", "program.yaml"},
		{PathModeRelative, "/home/user/project", "src/very/deeply/nested/program.yaml"},
		{PathModeRelative, "/elsewhere", "/home/user/project/src/very/deeply/nested/program.yaml"},
		{PathModeAuto, "", "program.yaml"},
		{PathModeAbsolute, "", "/home/user/project/src/very/deeply/nested/program.yaml"},
	}
	for _, tc := range cases {
		if got := FormatPath(src, tc.mode, tc.base); got != tc.want {
			t.Fatalf("mode %d base %q: got %q, want %q", tc.mode, tc.base, got, tc.want)
		}
	}
	if got := FormatPath(nil, PathModeAuto, ""); got != "<input>" {
		t.Fatalf("nil source: %q", got)
	}
}
