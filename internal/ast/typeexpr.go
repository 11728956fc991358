package ast

import (
	"strings"

	"quasicode/internal/source"
	"quasicode/internal/token"
)

// TypeExprKind enumerates type annotations as written in the program.
type TypeExprKind uint8

const (
	TypeExprInvalid TypeExprKind = iota
	TypeExprInt
	TypeExprDouble
	TypeExprBoolean
	TypeExprAny
	TypeExprArray
	TypeExprClass
)

// TypeExpr is a type annotation. Arrays use Elem; classes use Name and the
// already expanded template Args.
type TypeExpr struct {
	Kind TypeExprKind
	Span source.Span
	Elem TypeExprID
	Name token.Token
	Args []TypeExprID
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) Get(id TypeExprID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

// NewPrimitive allocates an int, double, boolean or any annotation.
func (t *TypeExprs) NewPrimitive(kind TypeExprKind, span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: kind, Span: span}))
}

func (t *TypeExprs) NewArray(span source.Span, elem TypeExprID) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprArray, Span: span, Elem: elem}))
}

func (t *TypeExprs) NewClass(span source.Span, name token.Token, args []TypeExprID) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprClass, Span: span, Name: name, Args: args}))
}

// String renders the annotation in source form, e.g. "[Box<int>]".
// A missing annotation renders as "any".
func (t *TypeExprs) String(id TypeExprID) string {
	var b strings.Builder
	t.write(&b, id)
	return b.String()
}

func (t *TypeExprs) write(b *strings.Builder, id TypeExprID) {
	te := t.Get(id)
	if te == nil {
		b.WriteString("any")
		return
	}
	switch te.Kind {
	case TypeExprInt:
		b.WriteString("int")
	case TypeExprDouble:
		b.WriteString("double")
	case TypeExprBoolean:
		b.WriteString("boolean")
	case TypeExprAny:
		b.WriteString("any")
	case TypeExprArray:
		b.WriteByte('[')
		t.write(b, te.Elem)
		b.WriteByte(']')
	case TypeExprClass:
		b.WriteString(ClassSignature(t, te.Name.Lexeme, te.Args))
	default:
		b.WriteString("<invalid>")
	}
}

// ClassSignature builds the table key of a class instantiation: "Box<int, any>".
// A class without template arguments is keyed "Name<>".
func ClassSignature(t *TypeExprs, name string, args []TypeExprID) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('<')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		t.write(&b, arg)
	}
	b.WriteByte('>')
	return b.String()
}
