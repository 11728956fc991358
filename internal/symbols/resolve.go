package symbols

import (
	"fmt"

	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/source"
	"quasicode/internal/trace"
	"quasicode/internal/unionfind"
)

// ResolveOptions controls a resolve pass.
type ResolveOptions struct {
	Hints    Hints
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// ParentSpan nests the resolver's trace spans under a driver span.
	ParentSpan uint64
	Validate   bool
}

// Result captures resolve artefacts for one program.
type Result struct {
	Table *Table
	// ExprSymbols maps variable, this, super and call expressions to the
	// symbol they name.
	ExprSymbols map[ast.ExprID]SymbolID
	// FirstAssignments records, per variable-to-set expression, whether the
	// assignment declared the variable.
	FirstAssignments map[ast.ExprID]bool
	// ExprClasses maps class references and allocations to class symbols.
	ExprClasses map[ast.ExprID]SymbolID
	// StmtSymbols maps class, function and method statements to their symbol.
	StmtSymbols map[ast.StmtID]SymbolID
	// StmtScopes maps blocks, functions and classes to the scope they open.
	StmtScopes   map[ast.StmtID]ScopeID
	ParamSymbols map[ast.StmtID][]SymbolID
	// ClassAliases maps repeated instantiations of a generic class to the
	// class symbol of the first one.
	ClassAliases map[ast.StmtID]SymbolID
	Diagnostics  []diag.Diagnostic
}

// Resolve walks the top-level statements once, populating table and
// reporting every violation it finds. A nil table is replaced by a fresh one.
// Resolve never stops at the first problem.
func Resolve(builder *ast.Builder, stmts []ast.StmtID, table *Table, opts ResolveOptions) Result {
	if table == nil {
		table = NewTable(opts.Hints)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	bag := diag.NewBag(0)
	result := Result{
		Table:            table,
		ExprSymbols:      make(map[ast.ExprID]SymbolID),
		FirstAssignments: make(map[ast.ExprID]bool),
		ExprClasses:      make(map[ast.ExprID]SymbolID),
		StmtSymbols:      make(map[ast.StmtID]SymbolID),
		StmtScopes:       make(map[ast.StmtID]ScopeID),
		ParamSymbols:     make(map[ast.StmtID][]SymbolID),
		ClassAliases:     make(map[ast.StmtID]SymbolID),
	}

	r := &resolver{
		b:         builder,
		t:         table,
		res:       &result,
		reporter:  diag.MultiReporter{diag.BagReporter{Bag: bag}, opts.Reporter},
		tracer:    tracer,
		resolved:  make(map[ast.ExprID]struct{}),
		declared:  make(map[ast.StmtID]struct{}),
		instances: unionfind.NewCanonicalizer[string](),

		globalClasses: make(map[ast.StmtID]struct{}),
	}
	top := resolveCtx{scope: table.Global(), fn: fnNone}
	r.top = top

	span := trace.Begin(tracer, trace.ScopePass, "resolve.declare", opts.ParentSpan)
	r.declareTopLevel(stmts)
	span.End("")

	span = trace.Begin(tracer, trace.ScopePass, "resolve.hierarchy", opts.ParentSpan)
	r.buildHierarchy()
	span.End("")

	span = trace.Begin(tracer, trace.ScopePass, "resolve.globals", opts.ParentSpan)
	r.declareGlobals(top, stmts)
	span.End("")

	span = trace.Begin(tracer, trace.ScopePass, "resolve.walk", opts.ParentSpan)
	r.walkSpan = span.ID()
	for _, id := range stmts {
		r.walkStmt(top, id)
	}
	span.End("")

	if opts.Validate {
		if err := table.Validate(); err != nil {
			msg := fmt.Sprintf("symbol table invariant violation: %v", err)
			diag.ReportError(r.reporter, diag.SemaInvariant, source.NoSpan, msg).Emit()
		}
	}

	result.Diagnostics = bag.Items()
	return result
}

type fnKind uint8

const (
	fnNone fnKind = iota
	fnFunction
	fnStaticMethod
	fnMethod
	fnInitializer
)

func (k fnKind) inMethod() bool {
	return k == fnStaticMethod || k == fnMethod || k == fnInitializer
}

type classKind uint8

const (
	classBase classKind = iota
	classSub
)

type classStatus struct {
	kind classKind
	name string
	sym  SymbolID
}

// resolveCtx is copied into every child visit; a visit that needs a
// different context changes its own copy.
type resolveCtx struct {
	scope  ScopeID
	fn     fnKind
	inLoop bool
	class  *classStatus
	// superCallAllowed is set only while visiting the first statement of a
	// subclass constructor.
	superCallAllowed bool
}

type resolver struct {
	b        *ast.Builder
	t        *Table
	res      *Result
	reporter diag.Reporter
	tracer   trace.Tracer
	walkSpan uint64
	top      resolveCtx
	// resolved holds global defining values already visited on demand.
	resolved map[ast.ExprID]struct{}
	// declared holds function statements whose declaration was attempted.
	declared  map[ast.StmtID]struct{}
	runtimeID int32
	// instances canonicalizes generic instantiations by signature.
	instances *unionfind.Canonicalizer[string]
	// globalClasses holds every top-level class statement, declared or not.
	globalClasses map[ast.StmtID]struct{}
	classes       []ast.StmtID
	topFuncs      []ast.StmtID
}

func (r *resolver) errorf(code diag.Code, span source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportError(r.reporter, code, span, fmt.Sprintf(format, args...))
}
