package driver

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kr/pretty"

	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/testkit"
	"quasicode/internal/trace"
)

// sample has a missing return, a break outside a loop and an unknown name.
func sample() *testkit.Program {
	p := testkit.NewProgram()
	brk, _ := p.Break()
	p.Add(
		p.Function("f", nil, p.IntT(), p.If(p.Bool(true), []ast.StmtID{mustReturn(p, p.Int(1))}, nil)),
		brk,
		p.ExprStmt(p.Var("ghost")),
	)
	return p
}

func mustReturn(p *testkit.Program, v ast.ExprID) ast.StmtID {
	id, _ := p.Return(v)
	return id
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestAnalyzeOrdersDiagnosticsByPass(t *testing.T) {
	p := sample()
	res, err := Analyze(context.Background(), p.B, p.Top, Options{Validate: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []diag.Code{diag.SemaBreakOutsideLoop, diag.SemaUnresolvedSymbol, diag.SemaMissingReturn}
	if diff := pretty.Diff(codesOf(res.Bag), want); len(diff) > 0 {
		t.Fatalf("codes: %v", diff)
	}
	if res.Returns.Checked != 1 || res.Returns.Violations != 1 {
		t.Fatalf("returns result %+v", res.Returns)
	}
	if res.Timer != nil {
		t.Fatalf("timer created without EnableTimings")
	}
}

func TestAnalyzeTimingsAndObserver(t *testing.T) {
	p := sample()
	var events []PhaseEvent
	res, err := Analyze(context.Background(), p.B, p.Top, Options{
		MaxDiagnostics: 1,
		EnableTimings:  true,
		Observer:       func(ev PhaseEvent) { events = append(events, ev) },
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 2 || items[1].Code != diag.ObsTimings {
		t.Fatalf("expected one diagnostic plus timings, got %v", codesOf(res.Bag))
	}
	if res.Bag.Dropped() != 2 {
		t.Fatalf("dropped %d", res.Bag.Dropped())
	}
	var payload timingPayload
	if err := json.Unmarshal([]byte(items[1].Notes[0].Msg), &payload); err != nil {
		t.Fatalf("timing payload: %v", err)
	}
	if payload.RunID != res.RunID.String() || len(payload.Phases) != 2 || payload.Phases[0].Name != "resolve" {
		t.Fatalf("payload %+v", payload)
	}
	if len(events) != 4 || events[0].Status != PhaseStart || events[3].Name != "returns" || events[3].Status != PhaseEnd {
		t.Fatalf("events %+v", events)
	}
}

func TestAnalyzeTraceSpans(t *testing.T) {
	p := sample()
	ring := trace.NewRingTracer(64, trace.LevelPass)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Analyze(ctx, p.B, p.Top, Options{}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	want := []string{"analyze", "resolve", "resolve.declare", "resolve.hierarchy", "resolve.globals", "resolve.walk", "returns"}
	if diff := pretty.Diff(names, want); len(diff) > 0 {
		t.Fatalf("spans: %v", diff)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	p := sample()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Analyze(ctx, p.B, p.Top, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.yaml")
	doc := `program:
  - function: sign
    params: [{param: n, type: int}]
    returns: int
    body:
      - if: {binary: "<", left: n, right: 0}
        then:
          - return: -1
        elseif:
          - if: {binary: ">", left: n, right: 0}
            then:
              - return: 1
  - set: 1x
    value: 0
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := AnalyzeFile(context.Background(), path, Options{Validate: true})
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	want := []diag.Code{diag.IOBadIdentifier, diag.SemaMissingReturn}
	if diff := pretty.Diff(codesOf(res.Bag), want); len(diff) > 0 {
		t.Fatalf("codes: %v", diff)
	}
	if res.Program == nil || res.Program.Text.Path != path {
		t.Fatalf("program not attached")
	}
	if _, err := AnalyzeFile(context.Background(), filepath.Join(dir, "missing.yaml"), Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
