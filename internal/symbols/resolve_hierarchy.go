package symbols

import (
	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/types"
	"quasicode/internal/unionfind"
)

// buildHierarchy links every declared class to its superclass, rejecting
// edges that would close a cycle, then fills depths and overrides.
func (r *resolver) buildHierarchy() {
	sets := unionfind.New(int(r.runtimeID) + 1)
	var roots []SymbolID
	for _, id := range r.classes {
		clsID := r.res.StmtSymbols[id]
		cls := r.t.Class(clsID)
		data, _ := r.b.Stmts.Class(id)
		if !data.Superclass.IsValid() {
			roots = append(roots, clsID)
			continue
		}
		supID, ok := r.classRef(data.Superclass)
		if !ok {
			roots = append(roots, clsID)
			continue
		}
		sup := r.t.Class(supID)
		if sets.Same(int(sup.Class.RuntimeID), int(cls.Class.RuntimeID)) {
			r.errorf(diag.SemaInheritanceCycle, data.Name.Span, "'%s' inherits from itself", cls.Class.DisplayName).Emit()
			roots = append(roots, clsID)
			continue
		}
		cls.Class.Hierarchy.Superclass = supID
		sup.Class.Hierarchy.Subclasses = append(sup.Class.Hierarchy.Subclasses, clsID)
		sets.Union(int(sup.Class.RuntimeID), int(cls.Class.RuntimeID))
		r.t.Relink(cls.Class.Scope, sup.Class.Scope)
	}
	for _, root := range roots {
		r.fillDepth(root, 1)
	}
	for _, id := range r.classes {
		r.computeOverrides(id)
	}
}

func (r *resolver) fillDepth(class SymbolID, depth int) {
	node := &r.t.Class(class).Class.Hierarchy
	node.Depth = depth
	for _, sub := range node.Subclasses {
		r.fillDepth(sub, depth+1)
	}
}

// computeOverrides matches each method of a class against the methods of its
// ancestors with an equal signature. The nearest match is checked for
// staticness and return type; every match records the overrider.
func (r *resolver) computeOverrides(id ast.StmtID) {
	clsID := r.res.StmtSymbols[id]
	data, _ := r.b.Stmts.Class(id)
	for _, mid := range data.Methods {
		methodID, ok := r.res.StmtSymbols[mid]
		if !ok {
			continue
		}
		method := r.t.Symbol(methodID)
		if method.Func.Method.Constructor {
			continue
		}
		sig := r.t.Signature(methodID)
		nearest := true
		for sup, ok := r.t.Superclass(clsID); ok; sup, ok = r.t.Superclass(sup) {
			baseID, found := r.t.LookupOverload(r.t.Class(sup).Class.Scope, sig)
			if !found {
				continue
			}
			base := r.t.Symbol(baseID)
			if base.Func.Method == nil || base.Func.Method.Constructor {
				continue
			}
			if nearest {
				r.checkOverride(mid, method, base)
				nearest = false
			}
			base.Func.Method.OverriddenBy = append(base.Func.Method.OverriddenBy, methodID)
		}
	}
}

func (r *resolver) checkOverride(mid ast.StmtID, method, base *Symbol) {
	if method.Func.Method.Static != base.Func.Method.Static {
		span := method.Span
		if m, ok := r.b.Stmts.Method(mid); ok && m.Static {
			span = m.StaticKeyword.Span
		}
		r.errorf(diag.SemaOverrideStaticMismatch, span, "Static does not match for overriding method").
			WithNote(base.Span, "overridden declaration").
			Emit()
	}
	ret, baseRet := method.Func.ReturnType, base.Func.ReturnType
	if ret.IsError() || baseRet.IsError() {
		return
	}
	if !types.Equal(ret, baseRet, true) {
		r.errorf(diag.SemaOverrideReturnMismatch, method.Span, "Return type does not match for overriding method").
			WithNote(base.Span, "overridden declaration").
			Emit()
	}
}
