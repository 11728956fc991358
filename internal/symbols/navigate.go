package symbols

// Current returns the scope the cursor points at.
func (t *Table) Current() ScopeID { return t.current }

// Goto moves the cursor. Prefer Within, which restores the cursor.
func (t *Table) Goto(scope ScopeID) { t.current = scope }

// Within points the cursor at scope for the duration of fn. The previous
// position is restored on every exit path, panics included.
func (t *Table) Within(scope ScopeID, fn func()) {
	prev := t.current
	t.current = scope
	defer func() { t.current = prev }()
	fn()
}

// CurrentSymbols returns the symbols declared directly in the cursor's scope.
func (t *Table) CurrentSymbols() []SymbolID {
	s := t.Scopes.Get(t.current)
	if s == nil {
		return nil
	}
	return s.Symbols
}

// ClassMethods lists the methods declared directly in a class, in
// declaration order.
func (t *Table) ClassMethods(class SymbolID) []SymbolID {
	cls := t.Class(class)
	var out []SymbolID
	t.Within(cls.Class.Scope, func() {
		for _, id := range t.CurrentSymbols() {
			if t.Symbols.Get(id).Kind == SymbolMethod {
				out = append(out, id)
			}
		}
	})
	return out
}

// Superclass returns the direct superclass of class.
func (t *Table) Superclass(class SymbolID) (SymbolID, bool) {
	sup := t.Class(class).Class.Hierarchy.Superclass
	return sup, sup.IsValid()
}

// IsSubclassOf reports whether sub equals super or inherits from it.
func (t *Table) IsSubclassOf(sub, super SymbolID) bool {
	subNode := t.Class(sub).Class.Hierarchy
	superNode := t.Class(super).Class.Hierarchy
	if subNode.Depth > 0 && superNode.Depth > 0 && subNode.Depth < superNode.Depth {
		return false
	}
	for cur := sub; cur.IsValid(); cur = t.Class(cur).Class.Hierarchy.Superclass {
		if cur == super {
			return true
		}
	}
	return false
}
