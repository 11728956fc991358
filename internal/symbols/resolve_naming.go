package symbols

import (
	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/types"
)

const (
	instanceThisName = "$Instance$this"
	staticThisName   = "$Static$this"
)

// lookupVisible walks from scope outward to the global scope and returns the
// symbols of the nearest scope declaring name.
func (r *resolver) lookupVisible(scope ScopeID, name string) []SymbolID {
	for cur := scope; cur.IsValid(); cur = r.t.Parent(cur) {
		if ids := r.t.Lookup(cur, name); len(ids) > 0 {
			return ids
		}
	}
	return nil
}

// lookupMember walks a class scope and its superclass scopes only.
func (r *resolver) lookupMember(scope ScopeID, name string) []SymbolID {
	for cur := scope; cur.IsValid(); cur = r.t.Parent(cur) {
		s := r.t.Scopes.Get(cur)
		if s == nil || s.Kind != ScopeClass {
			return nil
		}
		if ids := s.NameIndex[name]; len(ids) > 0 {
			return ids
		}
	}
	return nil
}

// classBySignature finds the class declared with the given signature name.
func (r *resolver) classBySignature(sig string) (SymbolID, bool) {
	return r.t.LookupKind(r.t.Global(), sig, SymbolClass)
}

// classRef resolves a class annotation to its symbol, reporting unknown classes.
func (r *resolver) classRef(id ast.TypeExprID) (SymbolID, bool) {
	te := r.b.Types.Get(id)
	if te == nil || te.Kind != ast.TypeExprClass {
		return NoSymbolID, false
	}
	sig := ast.ClassSignature(r.b.Types, te.Name.Lexeme, te.Args)
	cls, ok := r.classBySignature(sig)
	if !ok {
		r.errorf(diag.SemaUnknownClass, te.Span, "Unknown class '%s'", r.b.Types.String(id)).Emit()
		return NoSymbolID, false
	}
	return cls, true
}

// typeOf converts an annotation to a semantic type. A missing annotation is
// any; an unknown class becomes the error type after a diagnostic.
func (r *resolver) typeOf(id ast.TypeExprID) types.Type {
	te := r.b.Types.Get(id)
	if te == nil {
		return types.MakeAny()
	}
	switch te.Kind {
	case ast.TypeExprInt:
		return types.MakeInt()
	case ast.TypeExprDouble:
		return types.MakeDouble()
	case ast.TypeExprBoolean:
		return types.MakeBoolean()
	case ast.TypeExprAny:
		return types.MakeAny()
	case ast.TypeExprArray:
		return types.MakeArray(r.typeOf(te.Elem))
	case ast.TypeExprClass:
		cls, ok := r.classRef(id)
		if !ok {
			return types.MakeError()
		}
		return r.t.Class(cls).Type()
	}
	return types.MakeError()
}

// checkTypeExpr reports unknown classes inside an annotation.
func (r *resolver) checkTypeExpr(id ast.TypeExprID) {
	if id.IsValid() {
		r.typeOf(id)
	}
}
