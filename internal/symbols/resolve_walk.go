package symbols

import (
	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/trace"
	"quasicode/internal/types"
)

func (r *resolver) walkStmts(ctx resolveCtx, stmts []ast.StmtID) {
	for _, id := range stmts {
		r.walkStmt(ctx, id)
	}
}

func (r *resolver) walkStmt(ctx resolveCtx, id ast.StmtID) {
	stmt := r.b.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtClass:
		if _, global := r.globalClasses[id]; !global {
			r.walkNestedClass(ctx, id)
			return
		}
		r.walkClass(id)
	case ast.StmtFunction:
		fn, _ := r.b.Stmts.Function(id)
		if _, declared := r.declared[id]; !declared {
			r.declareFunction(ctx.scope, id, fn, nil, NoSymbolID)
		}
		inner := ctx
		inner.fn = fnFunction
		r.walkFunction(inner, id, fn, false)
	case ast.StmtExpr:
		data, _ := r.b.Stmts.Expr(id)
		r.walkExpr(ctx, data.Expr)
	case ast.StmtIf:
		data, _ := r.b.Stmts.If(id)
		r.walkExpr(ctx, data.Cond)
		r.walkStmt(ctx, data.Then)
		r.walkStmts(ctx, data.ElseIfs)
		if data.Else.IsValid() {
			r.walkStmt(ctx, data.Else)
		}
	case ast.StmtOutput, ast.StmtInput:
		data, _ := r.b.Stmts.IO(id)
		for _, e := range data.Exprs {
			r.walkExpr(ctx, e)
		}
	case ast.StmtReturn:
		r.walkReturn(ctx, id)
	case ast.StmtLoopFrom:
		r.walkLoopFrom(ctx, id)
	case ast.StmtWhile:
		data, _ := r.b.Stmts.While(id)
		r.walkExpr(ctx, data.Cond)
		body := ctx
		body.inLoop = true
		r.walkStmt(body, data.Body)
	case ast.StmtBreak, ast.StmtContinue:
		data, _ := r.b.Stmts.Keyword(id)
		if ctx.inLoop {
			return
		}
		if stmt.Kind == ast.StmtBreak {
			r.errorf(diag.SemaBreakOutsideLoop, data.Keyword.Span, "Can't use 'break' outside of loop").Emit()
		} else {
			r.errorf(diag.SemaContinueOutsideLoop, data.Keyword.Span, "Can't use 'continue' outside of loop").Emit()
		}
	case ast.StmtBlock:
		data, _ := r.b.Stmts.Block(id)
		inner := ctx
		inner.scope = r.t.NewScope(ScopeBlock, ctx.scope, id)
		r.res.StmtScopes[id] = inner.scope
		r.walkStmts(inner, data.Stmts)
	case ast.StmtMultiSet:
		data, _ := r.b.Stmts.MultiSet(id)
		r.walkStmts(ctx, data.Sets)
	case ast.StmtSet:
		data, _ := r.b.Stmts.Set(id)
		if _, done := r.resolved[data.Value]; !done {
			r.walkExpr(ctx, data.Value)
		}
		for i := len(data.Chained) - 1; i >= 0; i-- {
			r.walkExpr(ctx, data.Chained[i])
		}
		r.walkExpr(ctx, data.Left)
	case ast.StmtExit, ast.StmtMethod:
	}
}

func (r *resolver) walkReturn(ctx resolveCtx, id ast.StmtID) {
	data, _ := r.b.Stmts.Return(id)
	if ctx.fn == fnNone {
		r.errorf(diag.SemaReturnOutsideFunction, data.Keyword.Span, "Cannot return from top-level code").Emit()
	}
	if !data.Value.IsValid() {
		return
	}
	if ctx.fn == fnInitializer {
		r.errorf(diag.SemaReturnValueInInitializer, data.Keyword.Span, "Cannot return a value from a constructor").Emit()
	}
	r.walkExpr(ctx, data.Value)
}

// walkLoopFrom reuses a visible variable as the counter or declares an
// assignable int in the enclosing scope.
func (r *resolver) walkLoopFrom(ctx resolveCtx, id ast.StmtID) {
	data, _ := r.b.Stmts.LoopFrom(id)
	if v, ok := r.b.Exprs.Variable(data.Variable); ok {
		if _, found := r.visibleVariable(ctx.scope, v.Name.Lexeme); found {
			r.walkExpr(ctx, data.Variable)
		} else {
			symID := r.t.Declare(ctx.scope, &Symbol{
				Name: v.Name.Lexeme,
				Kind: SymbolVariable,
				Span: v.Name.Span,
				Decl: id,
				Var: &VariableInfo{
					Type:   types.MakeInt().WithAssignable(true),
					Status: StatusInitialized,
					Kind:   r.varKindFor(ctx.scope),
				},
			})
			r.res.ExprSymbols[data.Variable] = symID
		}
	}
	r.walkExpr(ctx, data.From)
	r.walkExpr(ctx, data.To)
	body := ctx
	body.inLoop = true
	r.walkStmt(body, data.Body)
}

func (r *resolver) varKindFor(scope ScopeID) VarKind {
	if scope == r.t.Global() {
		return VarGlobal
	}
	return VarLocal
}

// walkClass declares the receivers of a class, resolves field initializers
// with the class still unavailable, then opens the class and resolves its
// methods.
func (r *resolver) walkClass(id ast.StmtID) {
	clsID, ok := r.res.StmtSymbols[id]
	if !ok || r.t.Symbol(clsID).Kind != SymbolClass {
		return
	}
	data, _ := r.b.Stmts.Class(id)
	cls := r.t.Class(clsID)
	scope := cls.Class.Scope

	span := trace.Begin(r.tracer, trace.ScopeDecl, "resolve.class", r.walkSpan).
		WithExtra("class", cls.Class.DisplayName)
	defer span.End("")

	instance := r.t.Declare(scope, &Symbol{
		Name: instanceThisName,
		Kind: SymbolVariable,
		Span: data.Name.Span,
		Decl: id,
		Var:  &VariableInfo{Type: cls.Type(), Status: StatusInitialized, Kind: VarInstance},
	})
	static := r.t.Declare(scope, &Symbol{
		Name: staticThisName,
		Kind: SymbolVariable,
		Span: data.Name.Span,
		Decl: id,
		Var:  &VariableInfo{Type: cls.Type(), Status: StatusInitialized, Kind: VarStatic},
	})
	cls.Class.InstanceThis = instance
	cls.Class.StaticThis = static

	kind := classBase
	if data.Superclass.IsValid() {
		kind = classSub
	}
	inner := resolveCtx{
		scope: scope,
		fn:    fnNone,
		class: &classStatus{kind: kind, name: data.Name.Lexeme, sym: clsID},
	}

	for _, field := range data.Fields {
		r.walkExpr(inner, field.Init)
	}
	for _, symID := range r.t.Scopes.Get(scope).Symbols {
		sym := r.t.Symbol(symID)
		switch sym.Kind {
		case SymbolVariable:
			if sym.Var.Status == StatusFieldInitializing {
				sym.Var.Status = StatusInitialized
			}
		case SymbolMethod:
			sym.Func.Method.Ready = true
		}
	}
	for _, mid := range data.Methods {
		r.walkMethod(inner, mid)
	}
}

// walkNestedClass reports a class declared below the top level. The class
// gets no symbol; its initializers and method bodies are still resolved in
// the enclosing scope.
func (r *resolver) walkNestedClass(ctx resolveCtx, id ast.StmtID) {
	data, ok := r.b.Stmts.Class(id)
	if !ok {
		return
	}
	r.errorf(diag.SemaNestedClass, data.Name.Span, "Class declaration must be global").Emit()
	inner := ctx
	inner.fn = fnNone
	inner.inLoop = false
	inner.class = nil
	for _, field := range data.Fields {
		r.walkExpr(inner, field.Init)
	}
	for _, mid := range data.Methods {
		r.walkMethod(inner, mid)
	}
}

func (r *resolver) walkMethod(ctx resolveCtx, id ast.StmtID) {
	m, ok := r.b.Stmts.Method(id)
	if !ok {
		return
	}
	fn, ok := r.b.Stmts.Function(m.Function)
	if !ok {
		return
	}
	inner := ctx
	switch {
	case ctx.class != nil && fn.Name.Lexeme == ctx.class.name:
		inner.fn = fnInitializer
		if m.Static {
			r.errorf(diag.SemaStaticConstructor, m.StaticKeyword.Span, "Constructor declaration cannot be marked 'static'").Emit()
		}
	case m.Static:
		inner.fn = fnStaticMethod
	default:
		inner.fn = fnMethod
	}
	superFirst := inner.fn == fnInitializer && ctx.class.kind == classSub
	r.walkFunction(inner, m.Function, fn, superFirst)
}

// walkFunction opens the function scope, declares parameters and resolves
// the body. Loop state never leaks into a function body.
func (r *resolver) walkFunction(ctx resolveCtx, id ast.StmtID, fn *ast.StmtFunctionData, superFirst bool) {
	span := trace.Begin(r.tracer, trace.ScopeDecl, "resolve.function", r.walkSpan).
		WithExtra("function", fn.Name.Lexeme)
	defer span.End("")

	inner := ctx
	inner.scope = r.t.NewScope(ScopeFunction, ctx.scope, id)
	inner.inLoop = false
	inner.superCallAllowed = false
	r.res.StmtScopes[id] = inner.scope

	var paramTypes []types.Type
	if symID, ok := r.res.StmtSymbols[id]; ok {
		paramTypes = r.t.Symbol(symID).Func.Params
	}
	params := make([]SymbolID, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = NoSymbolID
		if len(r.t.Lookup(inner.scope, p.Name.Lexeme)) > 0 {
			r.errorf(diag.SemaDuplicateSymbol, p.Name.Span, "Invalid redeclaration of %s", p.Name.Lexeme).Emit()
			continue
		}
		var typ types.Type
		if i < len(paramTypes) {
			typ = paramTypes[i]
		}
		v := &VariableInfo{Type: typ, Status: StatusInitializing, Kind: VarLocal}
		params[i] = r.t.Declare(inner.scope, &Symbol{
			Name: p.Name.Lexeme,
			Kind: SymbolVariable,
			Span: p.Name.Span,
			Decl: id,
			Var:  v,
		})
		r.walkExpr(inner, p.Init)
		v.Status = StatusInitialized
	}
	r.res.ParamSymbols[id] = params

	for i, s := range fn.Body {
		c := inner
		c.superCallAllowed = superFirst && i == 0 && r.isSuperCallStmt(s)
		r.walkStmt(c, s)
	}
}

func (r *resolver) isSuperCallStmt(id ast.StmtID) bool {
	data, ok := r.b.Stmts.Expr(id)
	if !ok {
		return false
	}
	call, ok := r.b.Exprs.Call(data.Expr)
	return ok && call.Property.Lexeme == "super"
}
