// Package driver runs the semantic passes over one program: scope
// resolution first, then guaranteed-return checks.
package driver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/observ"
	"quasicode/internal/program"
	"quasicode/internal/sema"
	"quasicode/internal/symbols"
	"quasicode/internal/trace"
)

// Options controls an analysis run.
type Options struct {
	Hints            symbols.Hints
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	// Validate checks symbol table invariants after resolution.
	Validate bool
	// Observer, if set, sees every phase start and end.
	Observer PhaseObserver
}

// Result holds everything one run produced.
type Result struct {
	RunID   uuid.UUID
	Program *program.Program
	Table   *symbols.Table
	Resolve symbols.Result
	Returns sema.Result
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// AnalyzeFile loads the program document at path and analyzes it. Load
// diagnostics come first in the bag.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	prog, err := program.LoadFile(path, program.Options{})
	if err != nil {
		return nil, err
	}
	return AnalyzeProgram(ctx, prog, opts)
}

// AnalyzeProgram analyzes an already loaded program.
func AnalyzeProgram(ctx context.Context, prog *program.Program, opts Options) (*Result, error) {
	res, err := analyze(ctx, prog.Builder, prog.Stmts, prog.Diagnostics, opts)
	if err != nil {
		return nil, err
	}
	res.Program = prog
	return res, nil
}

// Analyze resolves stmts and checks returns. It fails only when ctx is
// done; problems in the program are reported through Result.Bag.
func Analyze(ctx context.Context, builder *ast.Builder, stmts []ast.StmtID, opts Options) (*Result, error) {
	return analyze(ctx, builder, stmts, nil, opts)
}

func analyze(ctx context.Context, builder *ast.Builder, stmts []ast.StmtID, pre []diag.Diagnostic, opts Options) (*Result, error) {
	res := &Result{
		RunID: uuid.New(),
		Table: symbols.NewTable(opts.Hints),
		Bag:   diag.NewBag(opts.MaxDiagnostics),
	}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}
	for _, d := range pre {
		res.Bag.Add(d)
	}

	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "analyze", trace.CurrentSpan(ctx)).
		WithExtra("run", res.RunID.String())
	defer root.End("")

	reporter := diag.BagReporter{Bag: res.Bag}
	ph := phases{timer: res.Timer, observer: opts.Observer, tracer: tracer, parent: root.ID()}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}
	p := ph.begin("resolve")
	res.Resolve = symbols.Resolve(builder, stmts, res.Table, symbols.ResolveOptions{
		Reporter:   reporter,
		Tracer:     tracer,
		ParentSpan: p.span.ID(),
		Validate:   opts.Validate,
	})
	ph.end(p, fmt.Sprintf("symbols=%d diags=%d", res.Table.Symbols.Len(), len(res.Resolve.Diagnostics)))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}
	p = ph.begin("returns")
	res.Returns = sema.CheckFunctionReturns(builder, stmts, reporter)
	ph.end(p, fmt.Sprintf("functions=%d missing=%d", res.Returns.Checked, res.Returns.Violations))

	if opts.IgnoreWarnings {
		res.Bag.Filter(func(d diag.Diagnostic) bool {
			return d.Severity != diag.SevWarning && d.Severity != diag.SevInfo
		})
	}
	if opts.WarningsAsErrors {
		res.Bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	if res.Timer != nil {
		report := res.Timer.Report()
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "analysis",
			RunID:   res.RunID.String(),
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	root.WithExtra("diagnostics", fmt.Sprint(res.Bag.Len()))
	return res, nil
}
