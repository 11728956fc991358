package ast

import (
	"quasicode/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena            *Arena[Expr]
	Groupings        *Arena[ExprGroupingData]
	Literals         *Arena[ExprLiteralData]
	ArrayLiterals    *Arena[ExprArrayLiteralData]
	ClassRefs        *Arena[ExprClassRefData]
	Thises           *Arena[ExprThisData]
	Supers           *Arena[ExprSuperData]
	Variables        *Arena[ExprVariableData]
	Subscripts       *Arena[ExprSubscriptData]
	Calls            *Arena[ExprCallData]
	Gets             *Arena[ExprGetData]
	Unaries          *Arena[ExprUnaryData]
	Casts            *Arena[ExprCastData]
	ArrayAllocations *Arena[ExprArrayAllocationData]
	ClassAllocations *Arena[ExprClassAllocationData]
	Binaries         *Arena[ExprBinaryData]
	VariablesToSet   *Arena[ExprVariableToSetData]
	IsTypes          *Arena[ExprIsTypeData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Exprs{
		Arena:            NewArena[Expr](capHint),
		Groupings:        NewArena[ExprGroupingData](small),
		Literals:         NewArena[ExprLiteralData](capHint),
		ArrayLiterals:    NewArena[ExprArrayLiteralData](small),
		ClassRefs:        NewArena[ExprClassRefData](small),
		Thises:           NewArena[ExprThisData](small),
		Supers:           NewArena[ExprSuperData](small),
		Variables:        NewArena[ExprVariableData](capHint),
		Subscripts:       NewArena[ExprSubscriptData](small),
		Calls:            NewArena[ExprCallData](small),
		Gets:             NewArena[ExprGetData](small),
		Unaries:          NewArena[ExprUnaryData](small),
		Casts:            NewArena[ExprCastData](small),
		ArrayAllocations: NewArena[ExprArrayAllocationData](small),
		ClassAllocations: NewArena[ExprClassAllocationData](small),
		Binaries:         NewArena[ExprBinaryData](capHint),
		VariablesToSet:   NewArena[ExprVariableToSetData](small),
		IsTypes:          NewArena[ExprIsTypeData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func exprPayload[T any](e *Exprs, arena *Arena[T], id ExprID, kinds ...ExprKind) (*T, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return arena.Get(uint32(expr.Payload)), true
		}
	}
	return nil, false
}

func (e *Exprs) NewGrouping(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGrouping, span, e.Groupings.Allocate(ExprGroupingData{Inner: inner}))
}

func (e *Exprs) Grouping(id ExprID) (*ExprGroupingData, bool) {
	return exprPayload(e, e.Groupings, id, ExprGrouping)
}

func (e *Exprs) NewLiteral(span source.Span, data ExprLiteralData) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(data))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	return exprPayload(e, e.Literals, id, ExprLiteral)
}

func (e *Exprs) NewArrayLiteral(span source.Span, values []ExprID) ExprID {
	return e.new(ExprArrayLiteral, span, e.ArrayLiterals.Allocate(ExprArrayLiteralData{Values: values}))
}

func (e *Exprs) ArrayLiteral(id ExprID) (*ExprArrayLiteralData, bool) {
	return exprPayload(e, e.ArrayLiterals, id, ExprArrayLiteral)
}

func (e *Exprs) NewStaticClass(span source.Span, class TypeExprID) ExprID {
	return e.new(ExprStaticClass, span, e.ClassRefs.Allocate(ExprClassRefData{Class: class}))
}

func (e *Exprs) StaticClass(id ExprID) (*ExprClassRefData, bool) {
	return exprPayload(e, e.ClassRefs, id, ExprStaticClass)
}

func (e *Exprs) NewThis(span source.Span, data ExprThisData) ExprID {
	return e.new(ExprThis, span, e.Thises.Allocate(data))
}

func (e *Exprs) This(id ExprID) (*ExprThisData, bool) {
	return exprPayload(e, e.Thises, id, ExprThis)
}

func (e *Exprs) NewSuper(span source.Span, data ExprSuperData) ExprID {
	return e.new(ExprSuper, span, e.Supers.Allocate(data))
}

func (e *Exprs) Super(id ExprID) (*ExprSuperData, bool) {
	return exprPayload(e, e.Supers, id, ExprSuper)
}

func (e *Exprs) NewVariable(span source.Span, data ExprVariableData) ExprID {
	return e.new(ExprVariable, span, e.Variables.Allocate(data))
}

func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	return exprPayload(e, e.Variables, id, ExprVariable)
}

func (e *Exprs) NewSubscript(span source.Span, data ExprSubscriptData) ExprID {
	return e.new(ExprSubscript, span, e.Subscripts.Allocate(data))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	return exprPayload(e, e.Subscripts, id, ExprSubscript)
}

func (e *Exprs) NewCall(span source.Span, data ExprCallData) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(data))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return exprPayload(e, e.Calls, id, ExprCall)
}

func (e *Exprs) NewGet(span source.Span, data ExprGetData) ExprID {
	return e.new(ExprGet, span, e.Gets.Allocate(data))
}

func (e *Exprs) GetData(id ExprID) (*ExprGetData, bool) {
	return exprPayload(e, e.Gets, id, ExprGet)
}

func (e *Exprs) NewUnary(span source.Span, data ExprUnaryData) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(data))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return exprPayload(e, e.Unaries, id, ExprUnary)
}

func (e *Exprs) NewCast(span source.Span, data ExprCastData) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(data))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	return exprPayload(e, e.Casts, id, ExprCast)
}

func (e *Exprs) NewArrayAllocation(span source.Span, data ExprArrayAllocationData) ExprID {
	return e.new(ExprArrayAllocation, span, e.ArrayAllocations.Allocate(data))
}

func (e *Exprs) ArrayAllocation(id ExprID) (*ExprArrayAllocationData, bool) {
	return exprPayload(e, e.ArrayAllocations, id, ExprArrayAllocation)
}

func (e *Exprs) NewClassAllocation(span source.Span, data ExprClassAllocationData) ExprID {
	return e.new(ExprClassAllocation, span, e.ClassAllocations.Allocate(data))
}

func (e *Exprs) ClassAllocation(id ExprID) (*ExprClassAllocationData, bool) {
	return exprPayload(e, e.ClassAllocations, id, ExprClassAllocation)
}

func (e *Exprs) NewBinary(span source.Span, data ExprBinaryData) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(data))
}

func (e *Exprs) NewLogical(span source.Span, data ExprBinaryData) ExprID {
	return e.new(ExprLogical, span, e.Binaries.Allocate(data))
}

// Binary returns the payload of a binary or logical expression.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return exprPayload(e, e.Binaries, id, ExprBinary, ExprLogical)
}

func (e *Exprs) NewVariableToSet(span source.Span, data ExprVariableToSetData) ExprID {
	return e.new(ExprVariableToSet, span, e.VariablesToSet.Allocate(data))
}

func (e *Exprs) VariableToSet(id ExprID) (*ExprVariableToSetData, bool) {
	return exprPayload(e, e.VariablesToSet, id, ExprVariableToSet)
}

func (e *Exprs) NewIsType(span source.Span, data ExprIsTypeData) ExprID {
	return e.new(ExprIsType, span, e.IsTypes.Allocate(data))
}

func (e *Exprs) IsType(id ExprID) (*ExprIsTypeData, bool) {
	return exprPayload(e, e.IsTypes, id, ExprIsType)
}
