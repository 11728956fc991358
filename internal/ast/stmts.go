package ast

import (
	"quasicode/internal/source"
)

// Stmts manages allocation of statements and their per-kind payloads.
type Stmts struct {
	Arena     *Arena[Stmt]
	Classes   *Arena[StmtClassData]
	Methods   *Arena[StmtMethodData]
	Functions *Arena[StmtFunctionData]
	Exprs     *Arena[StmtExprData]
	Ifs       *Arena[StmtIfData]
	IOs       *Arena[StmtIOData]
	Returns   *Arena[StmtReturnData]
	LoopFroms *Arena[StmtLoopFromData]
	Whiles    *Arena[StmtWhileData]
	Keywords  *Arena[StmtKeywordData]
	Blocks    *Arena[StmtBlockData]
	MultiSets *Arena[StmtMultiSetData]
	Sets      *Arena[StmtSetData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Classes:   NewArena[StmtClassData](small),
		Methods:   NewArena[StmtMethodData](small),
		Functions: NewArena[StmtFunctionData](small),
		Exprs:     NewArena[StmtExprData](capHint),
		Ifs:       NewArena[StmtIfData](small),
		IOs:       NewArena[StmtIOData](small),
		Returns:   NewArena[StmtReturnData](small),
		LoopFroms: NewArena[StmtLoopFromData](small),
		Whiles:    NewArena[StmtWhileData](small),
		Keywords:  NewArena[StmtKeywordData](small),
		Blocks:    NewArena[StmtBlockData](small),
		MultiSets: NewArena[StmtMultiSetData](small),
		Sets:      NewArena[StmtSetData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func stmtPayload[T any](s *Stmts, arena *Arena[T], id StmtID, kinds ...StmtKind) (*T, bool) {
	stmt := s.Get(id)
	if stmt == nil {
		return nil, false
	}
	for _, k := range kinds {
		if stmt.Kind == k {
			return arena.Get(uint32(stmt.Payload)), true
		}
	}
	return nil, false
}

func (s *Stmts) NewClass(span source.Span, data StmtClassData) StmtID {
	return s.new(StmtClass, span, s.Classes.Allocate(data))
}

func (s *Stmts) Class(id StmtID) (*StmtClassData, bool) {
	return stmtPayload(s, s.Classes, id, StmtClass)
}

func (s *Stmts) NewMethod(span source.Span, data StmtMethodData) StmtID {
	return s.new(StmtMethod, span, s.Methods.Allocate(data))
}

func (s *Stmts) Method(id StmtID) (*StmtMethodData, bool) {
	return stmtPayload(s, s.Methods, id, StmtMethod)
}

func (s *Stmts) NewFunction(span source.Span, data StmtFunctionData) StmtID {
	return s.new(StmtFunction, span, s.Functions.Allocate(data))
}

func (s *Stmts) Function(id StmtID) (*StmtFunctionData, bool) {
	return stmtPayload(s, s.Functions, id, StmtFunction)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	return stmtPayload(s, s.Exprs, id, StmtExpr)
}

func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(data))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	return stmtPayload(s, s.Ifs, id, StmtIf)
}

func (s *Stmts) NewOutput(span source.Span, exprs []ExprID) StmtID {
	return s.new(StmtOutput, span, s.IOs.Allocate(StmtIOData{Exprs: exprs}))
}

func (s *Stmts) NewInput(span source.Span, exprs []ExprID) StmtID {
	return s.new(StmtInput, span, s.IOs.Allocate(StmtIOData{Exprs: exprs}))
}

// IO returns the payload of an output or input statement.
func (s *Stmts) IO(id StmtID) (*StmtIOData, bool) {
	return stmtPayload(s, s.IOs, id, StmtOutput, StmtInput)
}

func (s *Stmts) NewReturn(span source.Span, data StmtReturnData) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(data))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	return stmtPayload(s, s.Returns, id, StmtReturn)
}

func (s *Stmts) NewLoopFrom(span source.Span, data StmtLoopFromData) StmtID {
	return s.new(StmtLoopFrom, span, s.LoopFroms.Allocate(data))
}

func (s *Stmts) LoopFrom(id StmtID) (*StmtLoopFromData, bool) {
	return stmtPayload(s, s.LoopFroms, id, StmtLoopFrom)
}

func (s *Stmts) NewWhile(span source.Span, data StmtWhileData) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(data))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	return stmtPayload(s, s.Whiles, id, StmtWhile)
}

// NewKeyword allocates a break, continue or exit statement.
func (s *Stmts) NewKeyword(kind StmtKind, span source.Span, data StmtKeywordData) StmtID {
	switch kind {
	case StmtBreak, StmtContinue, StmtExit:
	default:
		panic("ast: NewKeyword with " + kind.String())
	}
	return s.new(kind, span, s.Keywords.Allocate(data))
}

func (s *Stmts) Keyword(id StmtID) (*StmtKeywordData, bool) {
	return stmtPayload(s, s.Keywords, id, StmtBreak, StmtContinue, StmtExit)
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	return stmtPayload(s, s.Blocks, id, StmtBlock)
}

func (s *Stmts) NewMultiSet(span source.Span, sets []StmtID) StmtID {
	return s.new(StmtMultiSet, span, s.MultiSets.Allocate(StmtMultiSetData{Sets: sets}))
}

func (s *Stmts) MultiSet(id StmtID) (*StmtMultiSetData, bool) {
	return stmtPayload(s, s.MultiSets, id, StmtMultiSet)
}

func (s *Stmts) NewSet(span source.Span, data StmtSetData) StmtID {
	return s.new(StmtSet, span, s.Sets.Allocate(data))
}

func (s *Stmts) Set(id StmtID) (*StmtSetData, bool) {
	return stmtPayload(s, s.Sets, id, StmtSet)
}
