package ast

import (
	"quasicode/internal/source"
	"quasicode/internal/token"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprGrouping
	ExprLiteral
	ExprArrayLiteral
	ExprStaticClass
	ExprThis
	ExprSuper
	ExprVariable
	ExprSubscript
	ExprCall
	ExprGet
	ExprUnary
	ExprCast
	ExprArrayAllocation
	ExprClassAllocation
	ExprBinary
	ExprLogical
	ExprVariableToSet
	ExprIsType
)

func (k ExprKind) String() string {
	switch k {
	case ExprGrouping:
		return "grouping"
	case ExprLiteral:
		return "literal"
	case ExprArrayLiteral:
		return "array-literal"
	case ExprStaticClass:
		return "static-class"
	case ExprThis:
		return "this"
	case ExprSuper:
		return "super"
	case ExprVariable:
		return "variable"
	case ExprSubscript:
		return "subscript"
	case ExprCall:
		return "call"
	case ExprGet:
		return "get"
	case ExprUnary:
		return "unary"
	case ExprCast:
		return "cast"
	case ExprArrayAllocation:
		return "array-allocation"
	case ExprClassAllocation:
		return "class-allocation"
	case ExprBinary:
		return "binary"
	case ExprLogical:
		return "logical"
	case ExprVariableToSet:
		return "variable-to-set"
	case ExprIsType:
		return "is-type"
	default:
		return "invalid"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprGroupingData struct {
	Inner ExprID
}

type ExprLiteralData struct {
	Value token.Token
}

type ExprArrayLiteralData struct {
	Values []ExprID
}

// ExprClassRefData backs static class references (`Math.pi`).
type ExprClassRefData struct {
	Class TypeExprID
}

type ExprThisData struct {
	Keyword token.Token
}

// ExprSuperData is `super.property` used as a value.
type ExprSuperData struct {
	Keyword  token.Token
	Property token.Token
}

type ExprVariableData struct {
	Name token.Token
}

type ExprSubscriptData struct {
	Target ExprID
	Index  ExprID
}

// ExprCallData is `object.property(args)`; Object is empty for plain calls.
// A constructor chaining call is spelled with Property "super".
type ExprCallData struct {
	Object   ExprID
	Property token.Token
	Args     []ExprID
}

type ExprGetData struct {
	Object   ExprID
	Property token.Token
}

type ExprUnaryData struct {
	Op      token.Token
	Operand ExprID
}

type ExprCastData struct {
	Type  TypeExprID
	Value ExprID
}

type ExprArrayAllocationData struct {
	Elem     TypeExprID
	Capacity []ExprID
}

type ExprClassAllocationData struct {
	Class TypeExprID
	Args  []ExprID
}

// ExprBinaryData backs both binary and logical expressions.
type ExprBinaryData struct {
	Left  ExprID
	Op    token.Token
	Right ExprID
}

// ExprVariableToSetData is an assignment target that may declare a variable.
type ExprVariableToSetData struct {
	Target     ExprID
	Colon      token.Token
	Annotation TypeExprID
}

type ExprIsTypeData struct {
	Left    ExprID
	Keyword token.Token
	Right   TypeExprID
}
