package symbols

import (
	"quasicode/internal/ast"
	"quasicode/internal/diag"
)

// pickSymbol prefers a variable among symbols sharing a name.
func (r *resolver) pickSymbol(ids []SymbolID) *Symbol {
	for _, id := range ids {
		if sym := r.t.Symbol(id); sym.Kind == SymbolVariable {
			return sym
		}
	}
	return r.t.Symbol(ids[0])
}

func (r *resolver) visibleVariable(scope ScopeID, name string) (*Symbol, bool) {
	ids := r.lookupVisible(scope, name)
	if len(ids) == 0 {
		return nil, false
	}
	sym := r.pickSymbol(ids)
	return sym, sym.Kind == SymbolVariable
}

func (r *resolver) walkExprs(ctx resolveCtx, ids []ast.ExprID) {
	for _, id := range ids {
		r.walkExpr(ctx, id)
	}
}

func (r *resolver) walkExpr(ctx resolveCtx, id ast.ExprID) {
	expr := r.b.Exprs.Get(id)
	if expr == nil {
		return
	}
	superAllowed := ctx.superCallAllowed
	ctx.superCallAllowed = false

	switch expr.Kind {
	case ast.ExprGrouping:
		data, _ := r.b.Exprs.Grouping(id)
		r.walkExpr(ctx, data.Inner)
	case ast.ExprLiteral:
	case ast.ExprArrayLiteral:
		data, _ := r.b.Exprs.ArrayLiteral(id)
		r.walkExprs(ctx, data.Values)
	case ast.ExprStaticClass:
		data, _ := r.b.Exprs.StaticClass(id)
		if cls, ok := r.classRef(data.Class); ok {
			r.res.ExprClasses[id] = cls
		}
	case ast.ExprThis:
		r.walkThis(ctx, id)
	case ast.ExprSuper:
		r.walkSuper(ctx, id)
	case ast.ExprVariable:
		r.walkVariable(ctx, id)
	case ast.ExprSubscript:
		data, _ := r.b.Exprs.Subscript(id)
		r.walkExpr(ctx, data.Target)
		r.walkExpr(ctx, data.Index)
	case ast.ExprCall:
		r.walkCall(ctx, id, superAllowed)
	case ast.ExprGet:
		data, _ := r.b.Exprs.GetData(id)
		r.walkExpr(ctx, data.Object)
	case ast.ExprUnary:
		data, _ := r.b.Exprs.Unary(id)
		r.walkExpr(ctx, data.Operand)
	case ast.ExprCast:
		data, _ := r.b.Exprs.Cast(id)
		r.checkTypeExpr(data.Type)
		r.walkExpr(ctx, data.Value)
	case ast.ExprArrayAllocation:
		data, _ := r.b.Exprs.ArrayAllocation(id)
		r.checkTypeExpr(data.Elem)
		r.walkExprs(ctx, data.Capacity)
	case ast.ExprClassAllocation:
		data, _ := r.b.Exprs.ClassAllocation(id)
		if cls, ok := r.classRef(data.Class); ok {
			r.res.ExprClasses[id] = cls
		}
		r.walkExprs(ctx, data.Args)
	case ast.ExprBinary, ast.ExprLogical:
		data, _ := r.b.Exprs.Binary(id)
		r.walkExpr(ctx, data.Left)
		r.walkExpr(ctx, data.Right)
	case ast.ExprVariableToSet:
		r.walkVariableToSet(ctx, id)
	case ast.ExprIsType:
		data, _ := r.b.Exprs.IsType(id)
		r.walkExpr(ctx, data.Left)
		r.checkTypeExpr(data.Right)
	}
}

// walkVariable binds a name to the nearest visible symbol and checks that a
// variable is usable at this point. An uninitialized global is resolved on
// demand.
func (r *resolver) walkVariable(ctx resolveCtx, id ast.ExprID) {
	data, _ := r.b.Exprs.Variable(id)
	span := r.b.Exprs.Get(id).Span
	name := data.Name.Lexeme
	ids := r.lookupVisible(ctx.scope, name)
	if len(ids) == 0 {
		r.errorf(diag.SemaUnresolvedSymbol, span, "Use of unknown identifier %s", name).Emit()
		return
	}
	sym := r.pickSymbol(ids)
	r.res.ExprSymbols[id] = sym.ID
	if sym.Kind != SymbolVariable {
		return
	}
	v := sym.Var
	if v.Kind == VarInstance && ctx.fn == fnStaticMethod {
		r.errorf(diag.SemaInstanceFromStatic, span, "Use of instance variable from a static method").Emit()
	}
	switch v.Status {
	case StatusUninitialized:
		r.initGlobal(r.top, sym.ID)
	case StatusInitializing:
		r.errorf(diag.SemaSelfReference, data.Name.Span, "Use of variable within its own declaration").Emit()
	case StatusFieldInitializing:
		r.errorf(diag.SemaFieldBeforeClass, span, "Use of variable within class before class is available").Emit()
	case StatusGlobalInitializing:
		r.errorf(diag.SemaCircularReference, span, "Circular reference").
			WithNote(sym.Span, "'"+name+"' is declared here").
			Emit()
	}
}

// walkCall checks constructor chaining and `super.method()` placement. A
// plain call records the callee's function group when one is visible;
// arity and overload selection belong to type checking.
func (r *resolver) walkCall(ctx resolveCtx, id ast.ExprID, superAllowed bool) {
	data, _ := r.b.Exprs.Call(id)
	span := r.b.Exprs.Get(id).Span

	if data.Object.IsValid() {
		if obj, ok := r.b.Exprs.Variable(data.Object); ok && obj.Name.Lexeme == "super" {
			switch {
			case !ctx.fn.inMethod():
				r.errorf(diag.SemaSuperOutsideMethod, span, "'super' cannot be referenced outside of a method").Emit()
			case ctx.class == nil || ctx.class.kind != classSub:
				r.errorf(diag.SemaSuperInRootClass, data.Property.Span, "'super' cannot be referenced in a root class").Emit()
			default:
				if sup, ok := r.t.Superclass(ctx.class.sym); ok {
					r.res.ExprClasses[data.Object] = sup
				}
			}
		} else {
			r.walkExpr(ctx, data.Object)
		}
	}

	switch {
	case data.Property.Lexeme == "super":
		switch {
		case ctx.class == nil:
			r.errorf(diag.SemaSuperOutsideClass, data.Property.Span, "'super' cannot be referenced outside of a class").Emit()
		case ctx.class.kind != classSub:
			r.errorf(diag.SemaSuperInRootClass, data.Property.Span, "'super' cannot be referenced in a root class").Emit()
		case ctx.fn != fnInitializer:
			r.errorf(diag.SemaSuperOutsideConstructor, data.Property.Span, "'super' cannot be called outside of a constructor").Emit()
		case !superAllowed:
			r.errorf(diag.SemaSuperNotFirst, data.Property.Span, "Call to 'super' must be first statement in constructor").Emit()
		default:
			if sup, ok := r.t.Superclass(ctx.class.sym); ok {
				r.res.ExprClasses[id] = sup
			}
		}
	case !data.Object.IsValid():
		if group, ok := r.visibleGroup(ctx.scope, data.Property.Lexeme); ok {
			r.res.ExprSymbols[id] = group
		}
	}

	r.walkExprs(ctx, data.Args)
}

func (r *resolver) visibleGroup(scope ScopeID, name string) (SymbolID, bool) {
	for cur := scope; cur.IsValid(); cur = r.t.Parent(cur) {
		if id, ok := r.t.LookupKind(cur, name, SymbolFunctionGroup); ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

func (r *resolver) walkThis(ctx resolveCtx, id ast.ExprID) {
	data, _ := r.b.Exprs.This(id)
	if ctx.class == nil || !ctx.fn.inMethod() {
		r.errorf(diag.SemaThisOutsideMethod, data.Keyword.Span, "Cannot use 'this' outside of a method").Emit()
		return
	}
	name := instanceThisName
	if ctx.fn == fnStaticMethod {
		name = staticThisName
	}
	if ids := r.lookupVisible(ctx.scope, name); len(ids) > 0 {
		r.res.ExprSymbols[id] = ids[0]
	}
}

// walkSuper resolves `super.property` against the fields of the direct
// superclass and its ancestors.
func (r *resolver) walkSuper(ctx resolveCtx, id ast.ExprID) {
	data, _ := r.b.Exprs.Super(id)
	span := r.b.Exprs.Get(id).Span
	switch {
	case ctx.class == nil:
		r.errorf(diag.SemaSuperOutsideClass, data.Keyword.Span, "'super' cannot be referenced outside of a class").Emit()
		return
	case ctx.class.kind != classSub:
		r.errorf(diag.SemaSuperInRootClass, data.Keyword.Span, "'super' cannot be referenced in a root class").Emit()
		return
	case !ctx.fn.inMethod():
		r.errorf(diag.SemaSuperOutsideMethod, data.Keyword.Span, "'super' cannot be referenced outside of a method").Emit()
		return
	}
	supID, ok := r.t.Superclass(ctx.class.sym)
	if !ok {
		return
	}
	r.res.ExprClasses[id] = supID
	sup := r.t.Class(supID)

	var members []SymbolID
	r.t.Within(sup.Class.Scope, func() {
		members = r.lookupMember(r.t.Current(), data.Property.Lexeme)
	})
	var member *Symbol
	if len(members) > 0 {
		member = r.pickSymbol(members)
	}
	if member == nil || member.Kind != SymbolVariable ||
		(member.Var.Kind != VarInstance && member.Var.Kind != VarStatic) {
		r.errorf(diag.SemaSuperMemberNotFound, span, "Superclass '%s' has no member '%s'",
			sup.Class.DisplayName, data.Property.Lexeme).Emit()
		return
	}
	r.res.ExprSymbols[id] = member.ID
	if member.Var.Kind == VarInstance && ctx.fn == fnStaticMethod {
		r.errorf(diag.SemaInstanceFromStatic, span, "Instance member '%s' cannot be used in a static context", data.Property.Lexeme).Emit()
	}
}

// walkVariableToSet decides whether an assignment target declares a new
// variable. The first assignment to a name in any visible scope declares it
// in the current scope.
func (r *resolver) walkVariableToSet(ctx resolveCtx, id ast.ExprID) {
	if _, decided := r.res.FirstAssignments[id]; decided {
		return
	}
	data, _ := r.b.Exprs.VariableToSet(id)
	target, ok := r.b.Exprs.Variable(data.Target)
	if !ok {
		r.walkExpr(ctx, data.Target)
		return
	}
	name := target.Name.Lexeme

	if ids := r.lookupVisible(ctx.scope, name); len(ids) > 0 {
		r.res.FirstAssignments[id] = false
		sym := r.pickSymbol(ids)
		switch sym.Kind {
		case SymbolVariable:
		case SymbolFunctionGroup, SymbolFunction, SymbolMethod:
			r.errorf(diag.SemaAssignToNonVariable, target.Name.Span, "Cannot assign to value: '%s' is a function", name).Emit()
			return
		case SymbolClass, SymbolClassName:
			r.errorf(diag.SemaAssignToNonVariable, target.Name.Span, "Cannot assign to value: '%s' is a class", name).Emit()
			return
		default:
			r.errorf(diag.SemaAssignToNonVariable, target.Name.Span, "Cannot assign to value").Emit()
			return
		}
		if data.Annotation.IsValid() {
			r.errorf(diag.SemaRetypeVariable, data.Colon.Span, "Cannot retype variable after first assignment").Emit()
		}
		r.walkVariable(ctx, data.Target)
		r.res.ExprSymbols[id] = sym.ID
		return
	}

	r.res.FirstAssignments[id] = true
	v := &VariableInfo{Status: StatusInitializing, Kind: r.varKindFor(ctx.scope)}
	if data.Annotation.IsValid() {
		v.Type = r.typeOf(data.Annotation)
	}
	symID := r.t.Declare(ctx.scope, &Symbol{
		Name: name,
		Kind: SymbolVariable,
		Span: target.Name.Span,
		Var:  v,
	})
	v.Status = StatusInitialized
	r.res.ExprSymbols[data.Target] = symID
	r.res.ExprSymbols[id] = symID
}
