package symbols

import (
	"testing"

	"quasicode/internal/ast"
	"quasicode/internal/signature"
	"quasicode/internal/types"
)

func TestTableDeclareAndLookup(t *testing.T) {
	table := NewTable(Hints{})
	global := table.Global()
	id := table.Declare(global, &Symbol{
		Name: "count",
		Kind: SymbolVariable,
		Var:  &VariableInfo{Type: types.MakeInt(), Status: StatusInitialized, Kind: VarGlobal},
	})
	if !id.IsValid() {
		t.Fatalf("expected valid symbol id")
	}
	ids := table.Lookup(global, "count")
	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("lookup returned %v, want [%d]", ids, id)
	}
	if _, ok := table.LookupKind(global, "count", SymbolFunctionGroup); ok {
		t.Fatalf("variable must not match a group lookup")
	}
	if sym := table.Symbol(id); sym.Table != global || sym.ID != id {
		t.Fatalf("symbol not linked to its scope: %+v", sym)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestTableLookupIsScopeLocal(t *testing.T) {
	table := NewTable(Hints{})
	inner := table.NewScope(ScopeBlock, table.Global(), ast.NoStmtID)
	table.Declare(table.Global(), &Symbol{Name: "x", Kind: SymbolVariable, Var: &VariableInfo{}})
	if ids := table.Lookup(inner, "x"); len(ids) != 0 {
		t.Fatalf("Lookup must not walk parents, got %v", ids)
	}
	if table.Parent(inner) != table.Global() {
		t.Fatalf("inner scope parent = %d", table.Parent(inner))
	}
}

func TestWithinRestoresCursorOnPanic(t *testing.T) {
	table := NewTable(Hints{})
	inner := table.NewScope(ScopeFunction, table.Global(), ast.NoStmtID)
	table.Goto(table.Global())

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		table.Within(inner, func() {
			if table.Current() != inner {
				t.Fatalf("cursor not moved inside Within")
			}
			panic("boom")
		})
	}()

	if table.Current() != table.Global() {
		t.Fatalf("cursor = %d after panic, want global %d", table.Current(), table.Global())
	}
}

func TestRelinkKeepsChildListsConsistent(t *testing.T) {
	table := NewTable(Hints{})
	a := table.NewScope(ScopeClass, table.Global(), ast.NoStmtID)
	b := table.NewScope(ScopeClass, table.Global(), ast.NoStmtID)
	table.Relink(b, a)
	if table.Parent(b) != a {
		t.Fatalf("parent not updated")
	}
	for _, child := range table.Scopes.Get(table.Global()).Children {
		if child == b {
			t.Fatalf("old parent still lists relinked scope")
		}
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestOverloadIndexTreatsAnyAsEqual(t *testing.T) {
	table := NewTable(Hints{})
	global := table.Global()
	first := signature.New("f", types.MakeInt(), types.MakeAny())
	if _, ok := table.DeclareOverload(global, first, 1); !ok {
		t.Fatalf("first overload rejected")
	}
	if prev, ok := table.DeclareOverload(global, signature.New("f", types.MakeInt(), types.MakeAny()), 2); ok || prev != 1 {
		t.Fatalf("expected conflict with overload 1, got prev=%d ok=%v", prev, ok)
	}
	if _, ok := table.DeclareOverload(global, signature.New("f", types.MakeInt(), types.MakeInt()), 3); !ok {
		t.Fatalf("f(int, int) must not collide with f(int, any)")
	}
	if id, ok := table.LookupOverload(global, signature.New("f", types.MakeInt(), types.MakeInt())); !ok || id != 3 {
		t.Fatalf("lookup = %d, %v", id, ok)
	}
}

func TestValidateReportsBrokenGroupBacklink(t *testing.T) {
	table := NewTable(Hints{})
	global := table.Global()
	fn := table.Declare(global, &Symbol{
		Name: "f()",
		Kind: SymbolFunction,
		Func: &FunctionInfo{BaseName: "f", ReturnType: types.MakeVoid(), Group: NoSymbolID},
	})
	table.Declare(global, &Symbol{
		Name:  "f",
		Kind:  SymbolFunctionGroup,
		Group: &GroupInfo{Members: []SymbolID{fn}},
	})
	if err := table.Validate(); err == nil {
		t.Fatalf("expected validation error for member without group backlink")
	}
}
