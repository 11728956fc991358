// Package testkit builds small programs for the semantic-pass tests. Every
// token gets a distinct span on one synthetic line, so tests can assert that
// a diagnostic points at a particular token.
package testkit

import (
	"strconv"
	"unicode/utf8"

	"quasicode/internal/ast"
	"quasicode/internal/source"
	"quasicode/internal/token"
)

type Program struct {
	B   *ast.Builder
	Top []ast.StmtID
	pos int32
}

func NewProgram() *Program {
	return &Program{B: ast.NewBuilder(ast.Hints{})}
}

// Add appends top-level statements.
func (p *Program) Add(stmts ...ast.StmtID) {
	p.Top = append(p.Top, stmts...)
}

// Tok places a token after the previous one.
func (p *Program) Tok(kind token.Kind, lexeme string) token.Token {
	n := int32(utf8.RuneCountInString(lexeme))
	start := source.Location{Index: p.pos, Row: 1, Column: p.pos + 1, LogicalRow: 1, LogicalColumn: p.pos + 1}
	p.pos += n + 1
	return token.Token{Kind: kind, Lexeme: lexeme, Span: source.Span{Start: start, End: start.Offset(n)}}
}

func (p *Program) Ident(name string) token.Token { return p.Tok(token.Ident, name) }

func span(first, last source.Span) source.Span { return first.Cover(last) }

// Type annotations ------------------------------------------------------------

func (p *Program) IntT() ast.TypeExprID {
	return p.B.Types.NewPrimitive(ast.TypeExprInt, p.Tok(token.KwInt, "int").Span)
}

func (p *Program) DoubleT() ast.TypeExprID {
	return p.B.Types.NewPrimitive(ast.TypeExprDouble, p.Tok(token.KwDouble, "double").Span)
}

func (p *Program) BoolT() ast.TypeExprID {
	return p.B.Types.NewPrimitive(ast.TypeExprBoolean, p.Tok(token.KwBoolean, "boolean").Span)
}

func (p *Program) AnyT() ast.TypeExprID {
	return p.B.Types.NewPrimitive(ast.TypeExprAny, p.Tok(token.KwAny, "any").Span)
}

func (p *Program) ArrayT(elem ast.TypeExprID) ast.TypeExprID {
	return p.B.Types.NewArray(p.B.Types.Get(elem).Span, elem)
}

func (p *Program) ClassT(name string, args ...ast.TypeExprID) ast.TypeExprID {
	tok := p.Ident(name)
	return p.B.Types.NewClass(tok.Span, tok, args)
}

// Expressions -----------------------------------------------------------------

func (p *Program) Int(v int64) ast.ExprID {
	tok := p.Tok(token.IntLit, strconv.FormatInt(v, 10))
	tok.Value = v
	return p.B.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Value: tok})
}

func (p *Program) Bool(v bool) ast.ExprID {
	tok := p.Tok(token.KwFalse, "false")
	if v {
		tok = p.Tok(token.KwTrue, "true")
	}
	tok.Value = v
	return p.B.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Value: tok})
}

func (p *Program) Var(name string) ast.ExprID {
	tok := p.Ident(name)
	return p.B.Exprs.NewVariable(tok.Span, ast.ExprVariableData{Name: tok})
}

// VarTok returns the variable expression together with its name token.
func (p *Program) VarTok(name string) (ast.ExprID, token.Token) {
	id := p.Var(name)
	data, _ := p.B.Exprs.Variable(id)
	return id, data.Name
}

func (p *Program) Binary(left ast.ExprID, op string, right ast.ExprID) ast.ExprID {
	opTok := p.Tok(token.Plus, op)
	sp := span(p.B.Exprs.Get(left).Span, p.B.Exprs.Get(right).Span)
	return p.B.Exprs.NewBinary(sp, ast.ExprBinaryData{Left: left, Op: opTok, Right: right})
}

func (p *Program) Group(inner ast.ExprID) ast.ExprID {
	return p.B.Exprs.NewGrouping(p.B.Exprs.Get(inner).Span, inner)
}

// Call is a plain call `name(args)`.
func (p *Program) Call(name string, args ...ast.ExprID) ast.ExprID {
	tok := p.Ident(name)
	return p.B.Exprs.NewCall(tok.Span, ast.ExprCallData{Property: tok, Args: args})
}

// MethodCall is `object.name(args)`.
func (p *Program) MethodCall(object ast.ExprID, name string, args ...ast.ExprID) ast.ExprID {
	tok := p.Ident(name)
	sp := span(p.B.Exprs.Get(object).Span, tok.Span)
	return p.B.Exprs.NewCall(sp, ast.ExprCallData{Object: object, Property: tok, Args: args})
}

// SuperCall is the constructor chaining call `super(args)`.
func (p *Program) SuperCall(args ...ast.ExprID) (ast.ExprID, token.Token) {
	tok := p.Tok(token.KwSuper, "super")
	return p.B.Exprs.NewCall(tok.Span, ast.ExprCallData{Property: tok, Args: args}), tok
}

// SuperMethodCall is `super.name(args)`.
func (p *Program) SuperMethodCall(name string, args ...ast.ExprID) ast.ExprID {
	obj := p.Var("super")
	return p.MethodCall(obj, name, args...)
}

func (p *Program) Get(object ast.ExprID, property string) ast.ExprID {
	tok := p.Ident(property)
	sp := span(p.B.Exprs.Get(object).Span, tok.Span)
	return p.B.Exprs.NewGet(sp, ast.ExprGetData{Object: object, Property: tok})
}

func (p *Program) This() (ast.ExprID, token.Token) {
	tok := p.Tok(token.KwThis, "this")
	return p.B.Exprs.NewThis(tok.Span, ast.ExprThisData{Keyword: tok}), tok
}

func (p *Program) Super(property string) (ast.ExprID, token.Token) {
	kw := p.Tok(token.KwSuper, "super")
	prop := p.Ident(property)
	return p.B.Exprs.NewSuper(span(kw.Span, prop.Span), ast.ExprSuperData{Keyword: kw, Property: prop}), kw
}

func (p *Program) New(class ast.TypeExprID, args ...ast.ExprID) ast.ExprID {
	return p.B.Exprs.NewClassAllocation(p.B.Types.Get(class).Span, ast.ExprClassAllocationData{Class: class, Args: args})
}

func (p *Program) Static(class ast.TypeExprID) ast.ExprID {
	return p.B.Exprs.NewStaticClass(p.B.Types.Get(class).Span, class)
}

// Statements ------------------------------------------------------------------

func (p *Program) ExprStmt(e ast.ExprID) ast.StmtID {
	return p.B.Stmts.NewExpr(p.B.Exprs.Get(e).Span, e)
}

// Assign is `name = value` where name may be declared by the assignment.
func (p *Program) Assign(name string, value ast.ExprID) ast.StmtID {
	return p.AssignTyped(name, ast.NoTypeExprID, value)
}

// AssignTyped is `name: typ = value`.
func (p *Program) AssignTyped(name string, typ ast.TypeExprID, value ast.ExprID) ast.StmtID {
	target := p.Var(name)
	var colon token.Token
	if typ.IsValid() {
		colon = p.Tok(token.Colon, ":")
	}
	sp := p.B.Exprs.Get(target).Span
	toSet := p.B.Exprs.NewVariableToSet(sp, ast.ExprVariableToSetData{Target: target, Colon: colon, Annotation: typ})
	return p.SetTo(toSet, value)
}

// SetTo is `left = value` for an arbitrary assignment target.
func (p *Program) SetTo(left, value ast.ExprID) ast.StmtID {
	sp := span(p.B.Exprs.Get(left).Span, p.B.Exprs.Get(value).Span)
	return p.B.Stmts.NewSet(sp, ast.StmtSetData{Left: left, Value: value})
}

func (p *Program) Output(exprs ...ast.ExprID) ast.StmtID {
	tok := p.Tok(token.KwOutput, "output")
	return p.B.Stmts.NewOutput(tok.Span, exprs)
}

// Return builds `return` or `return value` when value is valid.
func (p *Program) Return(value ast.ExprID) (ast.StmtID, token.Token) {
	kw := p.Tok(token.KwReturn, "return")
	sp := kw.Span
	if value.IsValid() {
		sp = span(sp, p.B.Exprs.Get(value).Span)
	}
	return p.B.Stmts.NewReturn(sp, ast.StmtReturnData{Keyword: kw, Value: value}), kw
}

func (p *Program) keyword(kind ast.StmtKind, tk token.Kind, lexeme string) (ast.StmtID, token.Token) {
	kw := p.Tok(tk, lexeme)
	return p.B.Stmts.NewKeyword(kind, kw.Span, ast.StmtKeywordData{Keyword: kw}), kw
}

func (p *Program) Break() (ast.StmtID, token.Token) {
	return p.keyword(ast.StmtBreak, token.KwBreak, "break")
}

func (p *Program) Continue() (ast.StmtID, token.Token) {
	return p.keyword(ast.StmtContinue, token.KwContinue, "continue")
}

func (p *Program) Exit() ast.StmtID {
	id, _ := p.keyword(ast.StmtExit, token.KwExit, "exit")
	return id
}

func (p *Program) Block(stmts ...ast.StmtID) ast.StmtID {
	sp := source.NoSpan
	for _, s := range stmts {
		sp = sp.Cover(p.B.Stmts.Get(s).Span)
	}
	return p.B.Stmts.NewBlock(sp, stmts)
}

// If builds `if cond then ... [else ...] end if`; a nil els means no else arm.
func (p *Program) If(cond ast.ExprID, then []ast.StmtID, els []ast.StmtID) ast.StmtID {
	return p.IfChain(cond, then, nil, els)
}

// ElseIf builds one `elseif` arm for IfChain.
func (p *Program) ElseIf(cond ast.ExprID, body ...ast.StmtID) ast.StmtID {
	return p.B.Stmts.NewIf(p.B.Exprs.Get(cond).Span, ast.StmtIfData{Cond: cond, Then: p.Block(body...)})
}

func (p *Program) IfChain(cond ast.ExprID, then []ast.StmtID, elseIfs []ast.StmtID, els []ast.StmtID) ast.StmtID {
	kw := p.Tok(token.KwIf, "if")
	data := ast.StmtIfData{Cond: cond, Then: p.Block(then...), ElseIfs: elseIfs}
	if els != nil {
		data.Else = p.Block(els...)
	}
	return p.B.Stmts.NewIf(kw.Span, data)
}

func (p *Program) While(cond ast.ExprID, body ...ast.StmtID) ast.StmtID {
	kw := p.Tok(token.KwWhile, "while")
	return p.B.Stmts.NewWhile(kw.Span, ast.StmtWhileData{Cond: cond, Body: p.Block(body...)})
}

// LoopFrom builds `loop name from lo to hi ... end loop`.
func (p *Program) LoopFrom(name string, from, to ast.ExprID, body ...ast.StmtID) ast.StmtID {
	kw := p.Tok(token.KwLoop, "loop")
	v := p.Var(name)
	return p.B.Stmts.NewLoopFrom(kw.Span, ast.StmtLoopFromData{Variable: v, From: from, To: to, Body: p.Block(body...)})
}

func (p *Program) Param(name string, typ ast.TypeExprID, init ast.ExprID) ast.Param {
	return ast.Param{Name: p.Ident(name), Type: typ, Init: init}
}

// Function builds a function declaration; ret may be NoTypeExprID for void.
func (p *Program) Function(name string, params []ast.Param, ret ast.TypeExprID, body ...ast.StmtID) ast.StmtID {
	kw := p.Tok(token.KwFunction, "function")
	nameTok := p.Ident(name)
	end := p.Tok(token.KwEnd, "end")
	return p.B.Stmts.NewFunction(span(kw.Span, end.Span), ast.StmtFunctionData{
		Keyword:    kw,
		Name:       nameTok,
		Params:     params,
		Annotation: ret,
		Body:       body,
		End:        end,
	})
}

// FunctionName returns the name token of a function or method statement.
func (p *Program) FunctionName(id ast.StmtID) token.Token {
	fn, _, _ := p.B.FunctionOf(id)
	return fn.Name
}

// Method wraps a function declaration as a class member.
func (p *Program) Method(static bool, fn ast.StmtID) ast.StmtID {
	data := ast.StmtMethodData{Visibility: ast.VisPublic, Function: fn}
	if static {
		data.Static = true
		data.StaticKeyword = p.Tok(token.KwStatic, "static")
	}
	return p.B.Stmts.NewMethod(p.B.Stmts.Get(fn).Span, data)
}

func (p *Program) Field(name string, static bool, typ ast.TypeExprID, init ast.ExprID) ast.ClassField {
	return ast.ClassField{Static: static, Visibility: ast.VisPublic, Name: p.Ident(name), Type: typ, Init: init}
}

// ClassSpec describes a class declaration for Class.
type ClassSpec struct {
	Name         string
	ExpandedArgs []ast.TypeExprID
	Superclass   ast.TypeExprID
	Methods      []ast.StmtID
	Fields       []ast.ClassField
	Builtin      bool
}

func (p *Program) Class(spec ClassSpec) ast.StmtID {
	kw := p.Tok(token.KwClass, "class")
	name := p.Ident(spec.Name)
	end := p.Tok(token.KwEnd, "end")
	return p.B.Stmts.NewClass(span(kw.Span, end.Span), ast.StmtClassData{
		Keyword:      kw,
		Name:         name,
		End:          end,
		Builtin:      spec.Builtin,
		ExpandedArgs: spec.ExpandedArgs,
		Superclass:   spec.Superclass,
		Methods:      spec.Methods,
		Fields:       spec.Fields,
	})
}

// ClassName returns the name token of a class statement.
func (p *Program) ClassName(id ast.StmtID) token.Token {
	c, _ := p.B.Stmts.Class(id)
	return c.Name
}
