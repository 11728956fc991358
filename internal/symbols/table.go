package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"quasicode/internal/ast"
	"quasicode/internal/signature"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table is the indexed collection of scope tables of one program, with a
// single "current table" cursor.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols

	global     ScopeID
	current    ScopeID
	overloads  map[ScopeID]*signature.Index[SymbolID]
	classByRID []SymbolID
}

// NewTable builds a fresh table holding only the global scope.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		Scopes:     NewScopes(scopeCap),
		Symbols:    NewSymbols(symCap),
		overloads:  make(map[ScopeID]*signature.Index[SymbolID]),
		classByRID: []SymbolID{NoSymbolID}, // runtime ids start at 1
	}
	t.global = t.Scopes.New(ScopeGlobal, NoScopeID, ast.NoStmtID)
	t.current = t.global
	return t
}

// Global returns the top-level scope.
func (t *Table) Global() ScopeID { return t.global }

// NewScope allocates a scope under parent.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner ast.StmtID) ScopeID {
	return t.Scopes.New(kind, parent, owner)
}

// Parent returns the enclosing scope, or NoScopeID for the global scope.
func (t *Table) Parent(scope ScopeID) ScopeID {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoScopeID
	}
	return s.Parent
}

// Relink moves scope under a new parent, keeping child lists consistent.
func (t *Table) Relink(scope, parent ScopeID) {
	s := t.Scopes.Get(scope)
	if s == nil || scope == parent {
		return
	}
	if old := t.Scopes.Get(s.Parent); old != nil {
		for i, child := range old.Children {
			if child == scope {
				old.Children = append(old.Children[:i], old.Children[i+1:]...)
				break
			}
		}
	}
	s.Parent = parent
	if p := t.Scopes.Get(parent); p != nil {
		p.Children = append(p.Children, scope)
	}
}

// Declare inserts sym into scope, assigning a fresh ID and the owning table.
// It does not check for conflicts; callers decide what may share a name.
func (t *Table) Declare(scope ScopeID, sym *Symbol) SymbolID {
	s := t.Scopes.Get(scope)
	if s == nil {
		panic(fmt.Errorf("symbols: declare %q into invalid scope %d", sym.Name, scope))
	}
	sym.Table = scope
	id := t.Symbols.New(sym)
	s.NameIndex[sym.Name] = append(s.NameIndex[sym.Name], id)
	s.Symbols = append(s.Symbols, id)
	if sym.Kind == SymbolClass {
		rid := int(sym.Class.RuntimeID)
		for len(t.classByRID) <= rid {
			t.classByRID = append(t.classByRID, NoSymbolID)
		}
		t.classByRID[rid] = id
	}
	return id
}

// Lookup returns the symbols declared under name in scope only. The slice
// aliases the table; do not modify it.
func (t *Table) Lookup(scope ScopeID, name string) []SymbolID {
	s := t.Scopes.Get(scope)
	if s == nil {
		return nil
	}
	return s.NameIndex[name]
}

// LookupKind returns the first symbol of kind declared under name in scope.
func (t *Table) LookupKind(scope ScopeID, name string, kind SymbolKind) (SymbolID, bool) {
	for _, id := range t.Lookup(scope, name) {
		if sym := t.Symbols.Get(id); sym != nil && sym.Kind == kind {
			return id, true
		}
	}
	return NoSymbolID, false
}

// Symbol returns the symbol with the given ID or nil.
func (t *Table) Symbol(id SymbolID) *Symbol {
	return t.Symbols.Get(id)
}

// Class returns the class symbol with the given ID, panicking when id names
// something else.
func (t *Table) Class(id SymbolID) *Symbol {
	sym := t.Symbols.Get(id)
	if sym == nil || sym.Kind != SymbolClass {
		panic(fmt.Errorf("symbols: %d is not a class symbol", id))
	}
	return sym
}

// ClassByRuntimeID maps a class type id back to its symbol.
func (t *Table) ClassByRuntimeID(rid int32) (SymbolID, bool) {
	if rid <= 0 || int(rid) >= len(t.classByRID) {
		return NoSymbolID, false
	}
	id := t.classByRID[rid]
	return id, id.IsValid()
}

// ClassCount reports how many classes have runtime ids.
func (t *Table) ClassCount() int { return len(t.classByRID) - 1 }

// DeclareOverload registers id under sig in scope. On conflict it returns the
// previously registered symbol and false.
func (t *Table) DeclareOverload(scope ScopeID, sig signature.Signature, id SymbolID) (SymbolID, bool) {
	ix := t.overloads[scope]
	if ix == nil {
		ix = signature.NewIndex[SymbolID]()
		t.overloads[scope] = ix
	}
	return ix.Insert(sig, id)
}

// LookupOverload finds the function or method declared in scope with a
// signature equal to sig.
func (t *Table) LookupOverload(scope ScopeID, sig signature.Signature) (SymbolID, bool) {
	ix := t.overloads[scope]
	if ix == nil {
		return NoSymbolID, false
	}
	return ix.Lookup(sig)
}

// Signature rebuilds the overload key of a function or method symbol.
func (t *Table) Signature(id SymbolID) signature.Signature {
	sym := t.Symbols.Get(id)
	if sym == nil || sym.Func == nil {
		panic(fmt.Errorf("symbols: %d is not a function symbol", id))
	}
	return signature.New(sym.Func.BaseName, sym.Func.Params...)
}
