package sema

import (
	"fmt"

	"quasicode/internal/ast"
	"quasicode/internal/diag"
)

// Result summarizes a return check over one program.
type Result struct {
	// Checked counts functions and methods annotated with a return type.
	Checked    int
	Violations int
}

// CheckFunctionReturns runs CheckReturns for every function and method in
// stmts, nested declarations included, that is annotated with a return type.
// Each violation is reported once at the function name.
func CheckFunctionReturns(builder *ast.Builder, stmts []ast.StmtID, reporter diag.Reporter) Result {
	w := functionWalker{builder: builder, reporter: reporter}
	w.walk(stmts)
	return w.res
}

type functionWalker struct {
	builder  *ast.Builder
	reporter diag.Reporter
	res      Result
}

func (w *functionWalker) walk(stmts []ast.StmtID) {
	for _, id := range stmts {
		w.visit(id)
	}
}

func (w *functionWalker) visit(id ast.StmtID) {
	stmt := w.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtClass:
		if cls, ok := w.builder.Stmts.Class(id); ok {
			w.walk(cls.Methods)
		}
	case ast.StmtMethod, ast.StmtFunction:
		fn, _, ok := w.builder.FunctionOf(id)
		if !ok {
			return
		}
		w.checkFunction(fn)
		w.walk(fn.Body)
	case ast.StmtBlock:
		if block, ok := w.builder.Stmts.Block(id); ok {
			w.walk(block.Stmts)
		}
	case ast.StmtIf:
		if ifStmt, ok := w.builder.Stmts.If(id); ok {
			w.visit(ifStmt.Then)
			w.walk(ifStmt.ElseIfs)
			w.visit(ifStmt.Else)
		}
	case ast.StmtWhile:
		if loop, ok := w.builder.Stmts.While(id); ok {
			w.visit(loop.Body)
		}
	case ast.StmtLoopFrom:
		if loop, ok := w.builder.Stmts.LoopFrom(id); ok {
			w.visit(loop.Body)
		}
	}
}

func (w *functionWalker) checkFunction(fn *ast.StmtFunctionData) {
	if !fn.Annotation.IsValid() {
		return
	}
	w.res.Checked++
	CheckReturns(w.builder, fn.Body, func() {
		w.res.Violations++
		msg := fmt.Sprintf("Missing return in function expected to return '%s'", w.builder.Types.String(fn.Annotation))
		diag.ReportError(w.reporter, diag.SemaMissingReturn, fn.Name.Span, msg).
			WithNote(fn.End.Span, "control reaches the end of the function").
			Emit()
	})
}
