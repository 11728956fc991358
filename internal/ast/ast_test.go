package ast

import (
	"testing"

	"quasicode/internal/source"
	"quasicode/internal/token"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be absent")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 {
		t.Fatalf("unexpected allocation: id=%d", id)
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range index must be absent")
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	brk := b.Stmts.NewKeyword(StmtBreak, source.NoSpan, StmtKeywordData{Keyword: token.Synthetic(token.KwBreak, "break")})
	if _, ok := b.Stmts.Return(brk); ok {
		t.Fatalf("break must not decode as return")
	}
	kw, ok := b.Stmts.Keyword(brk)
	if !ok || kw.Keyword.Lexeme != "break" {
		t.Fatalf("keyword payload lost")
	}

	v := b.Exprs.NewVariable(source.NoSpan, ExprVariableData{Name: token.Synthetic(token.Ident, "x")})
	l := b.Exprs.NewLogical(source.NoSpan, ExprBinaryData{Left: v, Right: v})
	if data, ok := b.Exprs.Binary(l); !ok || data.Left != v {
		t.Fatalf("logical expression must share the binary payload")
	}
	if _, ok := b.Exprs.Call(v); ok {
		t.Fatalf("variable must not decode as call")
	}
}

func TestFunctionOfUnwrapsMethods(t *testing.T) {
	b := NewBuilder(Hints{})
	fn := b.Stmts.NewFunction(source.NoSpan, StmtFunctionData{Name: token.Synthetic(token.Ident, "area")})
	m := b.Stmts.NewMethod(source.NoSpan, StmtMethodData{Function: fn})
	data, id, ok := b.FunctionOf(m)
	if !ok || id != fn || data.Name.Lexeme != "area" {
		t.Fatalf("FunctionOf(method) = %v %d %v", data, id, ok)
	}
}

func TestTypeExprString(t *testing.T) {
	b := NewBuilder(Hints{})
	i := b.Types.NewPrimitive(TypeExprInt, source.NoSpan)
	a := b.Types.NewPrimitive(TypeExprAny, source.NoSpan)
	box := b.Types.NewClass(source.NoSpan, token.Synthetic(token.Ident, "Box"), []TypeExprID{i, a})
	arr := b.Types.NewArray(source.NoSpan, box)
	if got := b.Types.String(arr); got != "[Box<int, any>]" {
		t.Fatalf("String = %q", got)
	}
	if got := b.Types.String(NoTypeExprID); got != "any" {
		t.Fatalf("missing annotation = %q", got)
	}
	if got := ClassSignature(b.Types, "Point", nil); got != "Point<>" {
		t.Fatalf("ClassSignature = %q", got)
	}
}
