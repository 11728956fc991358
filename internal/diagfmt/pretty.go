package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quasicode/internal/diag"
	"quasicode/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes each diagnostic as
//
//	<path>:<row>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined ^~~~ and the notes.
func Pretty(w io.Writer, bag *diag.Bag, src Source, opts PrettyOpts) {
	p := newPalette(opts.Color)
	path := FormatPath(src, opts.PathMode, opts.BaseDir)
	for _, d := range bag.Items() {
		sev := p.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(path, d.Primary),
			sev.Sprint(strings.ToUpper(d.Severity.String())),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		excerpt(w, src, d.Primary, opts.Context, p)
		for _, n := range d.Notes {
			if d.Code == diag.ObsTimings {
				continue
			}
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("= note:"), n.Msg)
			if opts.ShowNotes && n.Span.IsValid() {
				fmt.Fprintf(w, "    --> %s\n", location(path, n.Span))
				excerpt(w, src, n.Span, 0, p)
			}
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped)
	}
}

func location(path string, sp source.Span) string {
	if !sp.Start.IsValid() {
		return path
	}
	return fmt.Sprintf("%s:%d:%d", path, sp.Start.Row, sp.Start.Column)
}

// excerpt prints context lines, the primary line and the underline.
func excerpt(w io.Writer, src Source, sp source.Span, context int, p palette) {
	if src == nil || !sp.Start.IsValid() {
		return
	}
	row := sp.Start.Row
	line, ok := src.Line(row)
	if !ok {
		return
	}
	gutterWidth := len(strconv.Itoa(int(row)))
	first := max(row-int32(context), 1)
	for r := first; r < row; r++ {
		if ctx, ok := src.Line(r); ok {
			fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, r), ctx)
		}
	}
	fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, row), line)

	pad, width := underline(line, sp)
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		p.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

// underline returns the display offset and width of sp on line. Wide runes
// count as two cells. Spans running past the line stop at its end.
func underline(line string, sp source.Span) (pad, width int) {
	runes := []rune(line)
	start := min(max(int(sp.Start.Column)-1, 0), len(runes))
	end := len(runes)
	if sp.End.IsValid() && sp.End.Row == sp.Start.Row {
		end = min(max(int(sp.End.Column)-1, start), len(runes))
	}
	pad = runewidth.StringWidth(string(runes[:start]))
	width = max(runewidth.StringWidth(string(runes[start:end])), 1)
	return pad, width
}

// Short writes one line per diagnostic: <path>:<row>:<col>: <sev> <CODE> <message>.
func Short(w io.Writer, bag *diag.Bag, src Source, mode PathMode) {
	path := FormatPath(src, mode, "")
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s %s\n", location(path, d.Primary), d.Severity, d.Code.ID(), d.Message)
	}
}
