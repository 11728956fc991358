package ast

import (
	"quasicode/internal/source"
	"quasicode/internal/token"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtClass
	StmtMethod
	StmtFunction
	StmtExpr
	StmtIf
	StmtOutput
	StmtInput
	StmtReturn
	StmtLoopFrom
	StmtWhile
	StmtBreak
	StmtContinue
	StmtBlock
	StmtExit
	StmtMultiSet
	StmtSet
)

func (k StmtKind) String() string {
	switch k {
	case StmtClass:
		return "class"
	case StmtMethod:
		return "method"
	case StmtFunction:
		return "function"
	case StmtExpr:
		return "expr"
	case StmtIf:
		return "if"
	case StmtOutput:
		return "output"
	case StmtInput:
		return "input"
	case StmtReturn:
		return "return"
	case StmtLoopFrom:
		return "loop-from"
	case StmtWhile:
		return "while"
	case StmtBreak:
		return "break"
	case StmtContinue:
		return "continue"
	case StmtBlock:
		return "block"
	case StmtExit:
		return "exit"
	case StmtMultiSet:
		return "multi-set"
	case StmtSet:
		return "set"
	default:
		return "invalid"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// ClassField is a field declared in a class body.
type ClassField struct {
	Static     bool
	Visibility Visibility
	Name       token.Token
	Type       TypeExprID
	Init       ExprID
}

type StmtClassData struct {
	Keyword        token.Token
	Name           token.Token
	End            token.Token
	Builtin        bool
	TemplateParams []token.Token
	// ExpandedArgs holds the concrete template arguments of a monomorphized class.
	ExpandedArgs []TypeExprID
	Superclass   TypeExprID
	Methods      []StmtID
	Fields       []ClassField
}

type StmtMethodData struct {
	Static        bool
	StaticKeyword token.Token
	Visibility    Visibility
	Function      StmtID
}

// Param is a function parameter; Init is its default value.
type Param struct {
	Name token.Token
	Type TypeExprID
	Init ExprID
}

type StmtFunctionData struct {
	Keyword    token.Token
	Name       token.Token
	Params     []Param
	Annotation TypeExprID
	Body       []StmtID
	End        token.Token
}

type StmtExprData struct {
	Expr ExprID
}

// StmtIfData is one if/elseif/else chain. ElseIfs are StmtIf nodes whose own
// ElseIfs and Else are empty.
type StmtIfData struct {
	Cond    ExprID
	Then    StmtID
	ElseIfs []StmtID
	Else    StmtID
}

// StmtIOData backs both output and input statements.
type StmtIOData struct {
	Exprs []ExprID
}

type StmtReturnData struct {
	Keyword token.Token
	Value   ExprID
}

type StmtLoopFromData struct {
	Variable ExprID
	From     ExprID
	To       ExprID
	Body     StmtID
}

type StmtWhileData struct {
	Cond  ExprID
	Until bool
	Body  StmtID
}

// StmtKeywordData backs break, continue and exit.
type StmtKeywordData struct {
	Keyword token.Token
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtMultiSetData struct {
	Sets []StmtID
}

// StmtSetData is `left = chained... = value`.
type StmtSetData struct {
	Left    ExprID
	Chained []ExprID
	Value   ExprID
}
