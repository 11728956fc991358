package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	// Check scopes.
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			parent := t.Scopes.data[scope.Parent]
			found := false
			for _, child := range parent.Children {
				if child == scopeID {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		} else if scopeID != t.global {
			errs = append(errs, fmt.Errorf("scope %d has no parent", scopeID))
		}
		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || child == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid child %d", scopeID, child))
				continue
			}
			if t.Scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}
	}

	// Check name index consistency.
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scope := t.Scopes.data[idx]
		symbolSet := make(map[SymbolID]struct{}, len(scope.Symbols))
		for _, id := range scope.Symbols {
			symbolSet[id] = struct{}{}
		}
		covered := make(map[SymbolID]struct{}, len(scope.Symbols))
		for name, bucket := range scope.NameIndex {
			for _, id := range bucket {
				if _, ok := symbolSet[id]; !ok {
					errs = append(errs, fmt.Errorf("scope %d name index %q references missing symbol %d", idx, name, id))
					continue
				}
				if sym := t.Symbols.Get(id); sym != nil && sym.Name != name {
					errs = append(errs, fmt.Errorf("scope %d name index %q holds symbol %d named %q", idx, name, id, sym.Name))
				}
				covered[id] = struct{}{}
			}
		}
		for _, id := range scope.Symbols {
			if _, ok := covered[id]; !ok {
				errs = append(errs, fmt.Errorf("scope %d symbol %d missing in name index", idx, id))
			}
		}
	}

	// Check symbols.
	for idx := range t.Symbols.data {
		symbol := &t.Symbols.data[idx]
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if symbol.ID != symbolID {
			errs = append(errs, fmt.Errorf("symbol at %d carries id %d", idx, symbol.ID))
		}
		if !symbol.Table.IsValid() || int(symbol.Table) >= len(t.Scopes.data) {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, symbol.Table))
			continue
		}
		found := false
		for _, id := range t.Scopes.data[symbol.Table].Symbols {
			if id == symbolID {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d list", symbolID, symbol.Table))
		}
		errs = append(errs, t.validatePayload(symbolID, symbol)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func (t *Table) validatePayload(id SymbolID, sym *Symbol) []error {
	var errs []error
	switch sym.Kind {
	case SymbolFunctionGroup:
		if sym.Group == nil {
			return []error{fmt.Errorf("group %d has no payload", id)}
		}
		for _, member := range sym.Group.Members {
			m := t.Symbols.Get(member)
			if m == nil || (m.Kind != SymbolFunction && m.Kind != SymbolMethod) {
				errs = append(errs, fmt.Errorf("group %d member %d is not a function", id, member))
				continue
			}
			if m.Func.Group != id {
				errs = append(errs, fmt.Errorf("group %d member %d points at group %d", id, member, m.Func.Group))
			}
		}
	case SymbolFunction, SymbolMethod:
		if sym.Func == nil || (sym.Kind == SymbolMethod) != (sym.Func.Method != nil) {
			return []error{fmt.Errorf("function %d has inconsistent payload", id)}
		}
		if sym.Func.MinArity < 0 || sym.Func.MinArity > len(sym.Func.Params) {
			errs = append(errs, fmt.Errorf("function %d has arity lower bound %d for %d params", id, sym.Func.MinArity, len(sym.Func.Params)))
		}
	case SymbolClass:
		if sym.Class == nil {
			return []error{fmt.Errorf("class %d has no payload", id)}
		}
		node := sym.Class.Hierarchy
		if node.Superclass.IsValid() {
			sup := t.Symbols.Get(node.Superclass)
			if sup == nil || sup.Kind != SymbolClass {
				errs = append(errs, fmt.Errorf("class %d superclass %d is not a class", id, node.Superclass))
				break
			}
			if node.Depth > 0 && sup.Class.Hierarchy.Depth > 0 && node.Depth != sup.Class.Hierarchy.Depth+1 {
				errs = append(errs, fmt.Errorf("class %d depth %d under superclass depth %d", id, node.Depth, sup.Class.Hierarchy.Depth))
			}
		}
		for _, sub := range node.Subclasses {
			s := t.Symbols.Get(sub)
			if s == nil || s.Kind != SymbolClass || s.Class.Hierarchy.Superclass != id {
				errs = append(errs, fmt.Errorf("class %d subclass %d missing superclass backlink", id, sub))
			}
		}
	case SymbolVariable:
		if sym.Var == nil {
			errs = append(errs, fmt.Errorf("variable %d has no payload", id))
		}
	case SymbolClassName:
		if sym.ClassName == nil {
			errs = append(errs, fmt.Errorf("class name %d has no payload", id))
		}
	default:
		errs = append(errs, fmt.Errorf("symbol %d has invalid kind", id))
	}
	return errs
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[int32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
