package symbols

import (
	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/signature"
	"quasicode/internal/types"
)

// declareTopLevel declares every top-level class and function before the
// walk so that forward references resolve. Class symbols come first; member
// and function signatures may name any class.
func (r *resolver) declareTopLevel(stmts []ast.StmtID) {
	global := r.t.Global()
	for _, id := range stmts {
		switch r.b.Stmts.Get(id).Kind {
		case ast.StmtClass:
			r.globalClasses[id] = struct{}{}
			if r.declareClass(global, id) {
				r.classes = append(r.classes, id)
			}
		case ast.StmtFunction:
			r.topFuncs = append(r.topFuncs, id)
		}
	}
	for _, id := range r.classes {
		r.declareMembers(id)
	}
	for _, id := range r.topFuncs {
		fn, _ := r.b.Stmts.Function(id)
		r.declareFunction(global, id, fn, nil, NoSymbolID)
	}
}

func (r *resolver) declareClass(scope ScopeID, id ast.StmtID) bool {
	cls, _ := r.b.Stmts.Class(id)
	sig := ast.ClassSignature(r.b.Types, cls.Name.Lexeme, cls.ExpandedArgs)
	generic := len(cls.ExpandedArgs) > 0
	if existing := r.t.Lookup(scope, sig); len(existing) > 0 {
		if generic {
			if canon := ast.StmtID(r.instances.Intern(sig, int(id))); canon != id {
				if first, ok := r.res.StmtSymbols[canon]; ok {
					r.res.ClassAliases[id] = first
					return false
				}
			}
		}
		r.errorf(diag.SemaDuplicateSymbol, cls.Name.Span, "Invalid redeclaration of '%s'", cls.Name.Lexeme).
			WithNote(r.t.Symbol(existing[0]).Span, "previous declaration").
			Emit()
		return false
	}
	display := cls.Name.Lexeme
	if generic {
		display = sig
		r.instances.Intern(sig, int(id))
	}
	r.runtimeID++
	classID := r.t.Declare(scope, &Symbol{
		Name: sig,
		Kind: SymbolClass,
		Span: cls.Name.Span,
		Decl: id,
		Class: &ClassInfo{
			SignatureName: sig,
			DisplayName:   display,
			BaseName:      cls.Name.Lexeme,
			Builtin:       cls.Builtin,
			RuntimeID:     r.runtimeID,
			Hierarchy:     HierarchyNode{Superclass: NoSymbolID},
			InstanceThis:  NoSymbolID,
			StaticThis:    NoSymbolID,
		},
	})
	r.res.StmtSymbols[id] = classID

	if nameID, ok := r.t.LookupKind(scope, cls.Name.Lexeme, SymbolClassName); ok {
		info := r.t.Symbol(nameID).ClassName
		info.Classes = append(info.Classes, classID)
	} else if others := r.t.Lookup(scope, cls.Name.Lexeme); len(others) > 0 {
		r.errorf(diag.SemaDuplicateSymbol, cls.Name.Span, "Invalid redeclaration of '%s'", cls.Name.Lexeme).Emit()
	} else {
		r.t.Declare(scope, &Symbol{
			Name:      cls.Name.Lexeme,
			Kind:      SymbolClassName,
			Span:      cls.Name.Span,
			Decl:      id,
			ClassName: &ClassNameInfo{Builtin: cls.Builtin, Classes: []SymbolID{classID}},
		})
	}

	classScope := r.t.NewScope(ScopeClass, scope, id)
	r.t.Symbol(classID).Class.Scope = classScope
	r.res.StmtScopes[id] = classScope
	return true
}

// declareMembers declares the methods and fields of a declared class.
func (r *resolver) declareMembers(id ast.StmtID) {
	cls, _ := r.b.Stmts.Class(id)
	classID := r.res.StmtSymbols[id]
	scope := r.t.Class(classID).Class.Scope
	for _, mid := range cls.Methods {
		m, ok := r.b.Stmts.Method(mid)
		if !ok {
			continue
		}
		fn, ok := r.b.Stmts.Function(m.Function)
		if !ok {
			continue
		}
		if sym, ok := r.declareFunction(scope, m.Function, fn, m, classID); ok {
			r.res.StmtSymbols[mid] = sym
		}
	}
	for i := range cls.Fields {
		field := &cls.Fields[i]
		if existing := r.t.Lookup(scope, field.Name.Lexeme); len(existing) > 0 {
			r.errorf(diag.SemaDuplicateSymbol, field.Name.Span, "Invalid redeclaration of %s", field.Name.Lexeme).Emit()
			continue
		}
		kind := VarInstance
		if field.Static {
			kind = VarStatic
		}
		var typ types.Type
		if field.Type.IsValid() {
			typ = r.typeOf(field.Type)
		}
		r.t.Declare(scope, &Symbol{
			Name: field.Name.Lexeme,
			Kind: SymbolVariable,
			Span: field.Name.Span,
			Decl: id,
			Var:  &VariableInfo{Type: typ, Status: StatusFieldInitializing, Kind: kind, Defining: id},
		})
	}
}

// minArity scans parameters from the end and stops at the first one without
// a default value.
func minArity(params []ast.Param) int {
	lower := len(params)
	for i := len(params) - 1; i >= 0 && params[i].Init.IsValid(); i-- {
		lower = i
	}
	return lower
}

// declareFunction declares a function (class invalid) or a method together
// with the group aggregating its overloads.
func (r *resolver) declareFunction(scope ScopeID, id ast.StmtID, fn *ast.StmtFunctionData, method *ast.StmtMethodData, class SymbolID) (SymbolID, bool) {
	r.declared[id] = struct{}{}
	name := fn.Name.Lexeme
	params := make([]types.Type, len(fn.Params))
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = r.typeOf(p.Type)
		names[i] = p.Name.Lexeme
	}
	sig := signature.New(name, params...)

	groupID, hasGroup := r.t.LookupKind(scope, name, SymbolFunctionGroup)
	if !hasGroup {
		if others := r.t.Lookup(scope, name); len(others) > 0 {
			r.errorf(diag.SemaDuplicateSymbol, fn.Name.Span, "Invalid redeclaration of '%s'", name).
				WithNote(r.t.Symbol(others[0]).Span, "previous declaration").
				Emit()
			return NoSymbolID, false
		}
	}
	if prev, ok := r.t.LookupOverload(scope, sig); ok {
		r.errorf(diag.SemaDuplicateOverload, fn.Name.Span, "Invalid redeclaration of '%s'", name).
			WithNote(r.t.Symbol(prev).Span, "previous declaration of "+sig.String()).
			Emit()
		return NoSymbolID, false
	}

	ret := types.MakeVoid()
	if fn.Annotation.IsValid() {
		ret = r.typeOf(fn.Annotation)
	}
	info := &FunctionInfo{
		BaseName:   name,
		ReturnType: ret,
		Params:     params,
		ParamNames: names,
		MinArity:   minArity(fn.Params),
		Group:      groupID,
	}
	kind := SymbolFunction
	if class.IsValid() {
		kind = SymbolMethod
		info.Method = &MethodInfo{
			Class:       class,
			Static:      method.Static,
			Visibility:  method.Visibility,
			Constructor: name == r.t.Class(class).Class.BaseName,
		}
	}
	fnID := r.t.Declare(scope, &Symbol{
		Name: sig.String(),
		Kind: kind,
		Span: fn.Name.Span,
		Decl: id,
		Func: info,
	})
	r.t.DeclareOverload(scope, sig, fnID)
	r.res.StmtSymbols[id] = fnID

	if hasGroup {
		group := r.t.Symbol(groupID).Group
		group.Members = append(group.Members, fnID)
	} else {
		groupID = r.t.Declare(scope, &Symbol{
			Name:  name,
			Kind:  SymbolFunctionGroup,
			Span:  fn.Name.Span,
			Decl:  id,
			Group: &GroupInfo{ForMethods: class.IsValid(), Members: []SymbolID{fnID}},
		})
		info.Group = groupID
	}
	return fnID, true
}

// declareGlobals declares a global variable for every top-level first
// assignment, then resolves each defining value once.
func (r *resolver) declareGlobals(top resolveCtx, stmts []ast.StmtID) {
	global := r.t.Global()
	var pending []SymbolID
	for _, id := range stmts {
		var sets []ast.StmtID
		switch r.b.Stmts.Get(id).Kind {
		case ast.StmtSet:
			sets = []ast.StmtID{id}
		case ast.StmtMultiSet:
			ms, _ := r.b.Stmts.MultiSet(id)
			sets = ms.Sets
		default:
			continue
		}
		for _, setID := range sets {
			set, ok := r.b.Stmts.Set(setID)
			if !ok {
				continue
			}
			toSet, ok := r.b.Exprs.VariableToSet(set.Left)
			if !ok {
				continue
			}
			target, ok := r.b.Exprs.Variable(toSet.Target)
			if !ok {
				continue
			}
			name := target.Name.Lexeme
			if existing := r.t.Lookup(global, name); len(existing) > 0 {
				r.res.FirstAssignments[set.Left] = false
				sym := r.t.Symbol(existing[0])
				if sym.Kind != SymbolVariable {
					r.errorf(diag.SemaDuplicateSymbol, target.Name.Span, "Invalid redeclaration of %s", name).Emit()
					continue
				}
				if toSet.Annotation.IsValid() {
					r.errorf(diag.SemaRetypeVariable, toSet.Colon.Span, "Cannot retype variable after first assignment").Emit()
				}
				r.res.ExprSymbols[toSet.Target] = sym.ID
				r.res.ExprSymbols[set.Left] = sym.ID
				continue
			}
			var typ types.Type
			if toSet.Annotation.IsValid() {
				typ = r.typeOf(toSet.Annotation)
			}
			symID := r.t.Declare(global, &Symbol{
				Name: name,
				Kind: SymbolVariable,
				Span: target.Name.Span,
				Decl: setID,
				Var:  &VariableInfo{Type: typ, Status: StatusUninitialized, Kind: VarGlobal, Defining: setID},
			})
			r.res.FirstAssignments[set.Left] = true
			r.res.ExprSymbols[toSet.Target] = symID
			r.res.ExprSymbols[set.Left] = symID
			pending = append(pending, symID)
		}
	}
	for _, id := range pending {
		r.initGlobal(top, id)
	}
}

// initGlobal resolves the defining value of an uninitialized global.
func (r *resolver) initGlobal(top resolveCtx, id SymbolID) {
	v := r.t.Symbol(id).Var
	if v.Status != StatusUninitialized {
		return
	}
	v.Status = StatusGlobalInitializing
	if set, ok := r.b.Stmts.Set(v.Defining); ok {
		r.walkExpr(top, set.Value)
		r.resolved[set.Value] = struct{}{}
	}
	v.Status = StatusInitialized
}
