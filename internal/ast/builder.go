package ast

type Hints struct{ Stmts, Exprs, Types uint }

// Builder owns every arena of one analyzed program.
type Builder struct {
	Stmts *Stmts
	Exprs *Exprs
	Types *TypeExprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	return &Builder{
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
		Types: NewTypeExprs(hints.Types),
	}
}

// FunctionOf returns the function payload behind a function or method statement.
func (b *Builder) FunctionOf(id StmtID) (*StmtFunctionData, StmtID, bool) {
	if m, ok := b.Stmts.Method(id); ok {
		id = m.Function
	}
	fn, ok := b.Stmts.Function(id)
	return fn, id, ok
}
