package symbols

import (
	"testing"

	"github.com/kr/pretty"

	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/testkit"
	"quasicode/internal/types"
)

func resolveProgram(t *testing.T, p *testkit.Program) Result {
	t.Helper()
	bag := diag.NewBag(32)
	res := Resolve(p.B, p.Top, nil, ResolveOptions{
		Reporter: &diag.BagReporter{Bag: bag},
		Validate: true,
	})
	if bag.Len() != len(res.Diagnostics) {
		t.Fatalf("reporter saw %d diagnostics, result holds %d", bag.Len(), len(res.Diagnostics))
	}
	return res
}

func codesOf(res Result) []diag.Code {
	out := make([]diag.Code, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func expectCodes(t *testing.T, res Result, want ...diag.Code) {
	t.Helper()
	got := codesOf(res)
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		for _, d := range res.Diagnostics {
			t.Logf("%s %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("diagnostic codes differ: %v", diff)
	}
}

func memberOf(t *testing.T, res Result, class ast.StmtID, name string) *Symbol {
	t.Helper()
	cls := res.Table.Class(res.StmtSymbols[class])
	ids := res.Table.Lookup(cls.Class.Scope, name)
	if len(ids) == 0 {
		t.Fatalf("class %s has no member %q", cls.Class.DisplayName, name)
	}
	return res.Table.Symbol(ids[0])
}

func TestResolveBreakOutsideLoopAtKeyword(t *testing.T) {
	p := testkit.NewProgram()
	brk, kw := p.Break()
	p.Add(brk)

	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaBreakOutsideLoop)
	if got := res.Diagnostics[0].Primary; got != kw.Span {
		t.Fatalf("diagnostic at %+v, want keyword span %+v", got, kw.Span)
	}
	if res.Diagnostics[0].Message != "Can't use 'break' outside of loop" {
		t.Fatalf("unexpected message %q", res.Diagnostics[0].Message)
	}
}

func TestResolveLoopControlInsideLoops(t *testing.T) {
	p := testkit.NewProgram()
	brk, _ := p.Break()
	cont, _ := p.Continue()
	p.Add(
		p.While(p.Bool(true), brk),
		p.LoopFrom("i", p.Int(1), p.Int(3), cont),
	)
	expectCodes(t, resolveProgram(t, p))
}

func TestResolveLoopStateResetInNestedFunction(t *testing.T) {
	p := testkit.NewProgram()
	innerBreak, innerKw := p.Break()
	nested := p.Function("g", nil, ast.NoTypeExprID, innerBreak)
	cont, _ := p.Continue()
	outerBreak, outerKw := p.Break()
	p.Add(
		p.While(p.Bool(true), nested, cont),
		outerBreak,
	)

	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaBreakOutsideLoop, diag.SemaBreakOutsideLoop)
	if res.Diagnostics[0].Primary != innerKw.Span || res.Diagnostics[1].Primary != outerKw.Span {
		t.Fatalf("unexpected diagnostic spans: %# v", pretty.Formatter(res.Diagnostics))
	}
}

func TestResolveReturnPlacement(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		p := testkit.NewProgram()
		ret, kw := p.Return(ast.NoExprID)
		p.Add(ret)
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaReturnOutsideFunction)
		if res.Diagnostics[0].Primary != kw.Span {
			t.Fatalf("return diagnostic not at keyword")
		}
	})
	t.Run("value in constructor", func(t *testing.T) {
		p := testkit.NewProgram()
		ret, kw := p.Return(p.Int(1))
		ctor := p.Function("Point", nil, ast.NoTypeExprID, ret)
		p.Add(p.Class(testkit.ClassSpec{Name: "Point", Methods: []ast.StmtID{p.Method(false, ctor)}}))
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaReturnValueInInitializer)
		if res.Diagnostics[0].Primary != kw.Span {
			t.Fatalf("constructor return diagnostic not at keyword")
		}
	})
	t.Run("bare return in constructor", func(t *testing.T) {
		p := testkit.NewProgram()
		ret, _ := p.Return(ast.NoExprID)
		ctor := p.Function("Point", nil, ast.NoTypeExprID, ret)
		p.Add(p.Class(testkit.ClassSpec{Name: "Point", Methods: []ast.StmtID{p.Method(false, ctor)}}))
		expectCodes(t, resolveProgram(t, p))
	})
}

func TestResolveLoopBodyVariableDoesNotEscape(t *testing.T) {
	p := testkit.NewProgram()
	brk, _ := p.Break()
	p.Add(
		p.While(p.Bool(true), p.Assign("y", p.Int(1)), brk),
		p.Output(p.Var("y")),
	)
	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaUnresolvedSymbol)
	if res.Diagnostics[0].Message != "Use of unknown identifier y" {
		t.Fatalf("unexpected message %q", res.Diagnostics[0].Message)
	}
}

func TestResolveLoopFromCounterStaysVisible(t *testing.T) {
	p := testkit.NewProgram()
	loop := p.LoopFrom("i", p.Int(1), p.Int(3), p.Output(p.Var("i")))
	after := p.Var("i")
	p.Add(loop, p.Output(after))

	res := resolveProgram(t, p)
	expectCodes(t, res)
	data, _ := p.B.Stmts.LoopFrom(loop)
	counter := res.Table.Symbol(res.ExprSymbols[data.Variable])
	if counter.Var.Type.Kind != types.KindInt || !counter.Var.Type.Assignable {
		t.Fatalf("counter type = %+v, want assignable int", counter.Var.Type)
	}
	if res.ExprSymbols[after] != counter.ID {
		t.Fatalf("reference after loop bound to %d, want %d", res.ExprSymbols[after], counter.ID)
	}
}

func TestResolveOverloadSignatures(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		p := testkit.NewProgram()
		first := p.Function("f", []ast.Param{p.Param("a", p.IntT(), ast.NoExprID), p.Param("b", p.AnyT(), ast.NoExprID)}, ast.NoTypeExprID)
		second := p.Function("f", []ast.Param{p.Param("c", p.IntT(), ast.NoExprID), p.Param("d", p.AnyT(), ast.NoExprID)}, ast.NoTypeExprID)
		p.Add(first, second)
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaDuplicateOverload)
		if res.Diagnostics[0].Primary != p.FunctionName(second).Span {
			t.Fatalf("duplicate reported at the wrong declaration")
		}
	})
	t.Run("distinct", func(t *testing.T) {
		p := testkit.NewProgram()
		first := p.Function("f", []ast.Param{p.Param("a", p.IntT(), ast.NoExprID), p.Param("b", p.AnyT(), ast.NoExprID)}, ast.NoTypeExprID)
		second := p.Function("f", []ast.Param{p.Param("a", p.IntT(), ast.NoExprID), p.Param("b", p.IntT(), ast.NoExprID)}, ast.NoTypeExprID)
		p.Add(first, second)
		res := resolveProgram(t, p)
		expectCodes(t, res)
		group, ok := res.Table.LookupKind(res.Table.Global(), "f", SymbolFunctionGroup)
		if !ok {
			t.Fatalf("missing function group")
		}
		if members := res.Table.Symbol(group).Group.Members; len(members) != 2 {
			t.Fatalf("group has %d members, want 2", len(members))
		}
		if name := res.Table.Symbol(res.StmtSymbols[second]).Name; name != "f(int, int)" {
			t.Fatalf("overload symbol named %q", name)
		}
	})
}

func TestResolveMinArity(t *testing.T) {
	p := testkit.NewProgram()
	fn := p.Function("f", []ast.Param{
		p.Param("a", p.IntT(), ast.NoExprID),
		p.Param("b", p.IntT(), p.Int(1)),
		p.Param("c", p.IntT(), p.Int(2)),
	}, ast.NoTypeExprID)
	p.Add(fn)
	res := resolveProgram(t, p)
	expectCodes(t, res)
	if got := res.Table.Symbol(res.StmtSymbols[fn]).Func.MinArity; got != 1 {
		t.Fatalf("MinArity = %d, want 1", got)
	}
	if params := res.ParamSymbols[fn]; len(params) != 3 {
		t.Fatalf("recorded %d parameter symbols", len(params))
	}
}

func TestResolveDuplicateParameter(t *testing.T) {
	p := testkit.NewProgram()
	fn := p.Function("f", []ast.Param{
		p.Param("a", p.IntT(), ast.NoExprID),
		p.Param("a", p.DoubleT(), ast.NoExprID),
	}, ast.NoTypeExprID)
	p.Add(fn)
	expectCodes(t, resolveProgram(t, p), diag.SemaDuplicateSymbol)
}

func TestResolveParameterDefaultSelfReference(t *testing.T) {
	p := testkit.NewProgram()
	p.Add(p.Function("f", []ast.Param{p.Param("x", p.IntT(), p.Var("x"))}, ast.NoTypeExprID))
	expectCodes(t, resolveProgram(t, p), diag.SemaSelfReference)
}

func TestResolveGlobals(t *testing.T) {
	t.Run("forward reference", func(t *testing.T) {
		p := testkit.NewProgram()
		p.Add(
			p.Assign("a", p.Binary(p.Var("b"), "+", p.Int(1))),
			p.Assign("b", p.Int(2)),
		)
		res := resolveProgram(t, p)
		expectCodes(t, res)
		for _, name := range []string{"a", "b"} {
			id, ok := res.Table.LookupKind(res.Table.Global(), name, SymbolVariable)
			if !ok {
				t.Fatalf("global %s not declared", name)
			}
			if v := res.Table.Symbol(id).Var; v.Kind != VarGlobal || v.Status != StatusInitialized {
				t.Fatalf("global %s: %+v", name, v)
			}
		}
	})
	t.Run("circular", func(t *testing.T) {
		p := testkit.NewProgram()
		p.Add(
			p.Assign("a", p.Var("b")),
			p.Assign("b", p.Var("a")),
		)
		expectCodes(t, resolveProgram(t, p), diag.SemaCircularReference)
	})
	t.Run("reassignment", func(t *testing.T) {
		p := testkit.NewProgram()
		first := p.Assign("a", p.Int(1))
		second := p.AssignTyped("a", p.IntT(), p.Int(2))
		p.Add(first, second)
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaRetypeVariable)
		firstSet, _ := p.B.Stmts.Set(first)
		secondSet, _ := p.B.Stmts.Set(second)
		if !res.FirstAssignments[firstSet.Left] || res.FirstAssignments[secondSet.Left] {
			t.Fatalf("first assignments = %v", res.FirstAssignments)
		}
		if res.ExprSymbols[firstSet.Left] != res.ExprSymbols[secondSet.Left] {
			t.Fatalf("assignments bound to different symbols")
		}
	})
}

func TestResolveLocalAssignments(t *testing.T) {
	t.Run("retype", func(t *testing.T) {
		p := testkit.NewProgram()
		retype := p.AssignTyped("x", p.IntT(), p.Int(2))
		p.Add(p.Function("g", nil, ast.NoTypeExprID, p.Assign("x", p.Int(1)), retype))
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaRetypeVariable)
		set, _ := p.B.Stmts.Set(retype)
		toSet, _ := p.B.Exprs.VariableToSet(set.Left)
		if res.Diagnostics[0].Primary != toSet.Colon.Span {
			t.Fatalf("retype diagnostic not at colon")
		}
	})
	t.Run("assign to function", func(t *testing.T) {
		p := testkit.NewProgram()
		p.Add(
			p.Function("f", nil, ast.NoTypeExprID),
			p.Function("g", nil, ast.NoTypeExprID, p.Assign("f", p.Int(1))),
		)
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaAssignToNonVariable)
		if res.Diagnostics[0].Message != "Cannot assign to value: 'f' is a function" {
			t.Fatalf("unexpected message %q", res.Diagnostics[0].Message)
		}
	})
	t.Run("local does not leak", func(t *testing.T) {
		p := testkit.NewProgram()
		p.Add(
			p.Function("g", nil, ast.NoTypeExprID, p.Assign("tmp", p.Int(1))),
			p.Output(p.Var("tmp")),
		)
		expectCodes(t, resolveProgram(t, p), diag.SemaUnresolvedSymbol)
	})
}

func TestResolveClassHierarchy(t *testing.T) {
	p := testkit.NewProgram()
	a := p.Class(testkit.ClassSpec{Name: "A"})
	b := p.Class(testkit.ClassSpec{Name: "B", Superclass: p.ClassT("A")})
	c := p.Class(testkit.ClassSpec{Name: "C", Superclass: p.ClassT("B")})
	p.Add(c, b, a)

	res := resolveProgram(t, p)
	expectCodes(t, res)
	depths := map[ast.StmtID]int{a: 1, b: 2, c: 3}
	for stmt, want := range depths {
		if got := res.Table.Class(res.StmtSymbols[stmt]).Class.Hierarchy.Depth; got != want {
			t.Fatalf("class %s depth = %d, want %d", p.ClassName(stmt).Lexeme, got, want)
		}
	}
	ca, cc := res.StmtSymbols[a], res.StmtSymbols[c]
	if !res.Table.IsSubclassOf(cc, ca) || res.Table.IsSubclassOf(ca, cc) {
		t.Fatalf("IsSubclassOf disagrees with the hierarchy")
	}
	if res.Table.Scopes.Get(res.Table.Class(cc).Class.Scope).Parent != res.Table.Class(res.StmtSymbols[b]).Class.Scope {
		t.Fatalf("subclass scope not nested under superclass scope")
	}
}

func TestResolveInheritanceCycle(t *testing.T) {
	p := testkit.NewProgram()
	a := p.Class(testkit.ClassSpec{Name: "A", Superclass: p.ClassT("B")})
	b := p.Class(testkit.ClassSpec{Name: "B", Superclass: p.ClassT("A")})
	p.Add(a, b)

	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaInheritanceCycle)
	if res.Diagnostics[0].Primary != p.ClassName(b).Span {
		t.Fatalf("cycle reported at the wrong class")
	}
	if res.Diagnostics[0].Message != "'B' inherits from itself" {
		t.Fatalf("unexpected message %q", res.Diagnostics[0].Message)
	}
	if d := res.Table.Class(res.StmtSymbols[b]).Class.Hierarchy.Depth; d != 1 {
		t.Fatalf("rejected class depth = %d, want root depth 1", d)
	}
}

func TestResolveUnknownSuperclass(t *testing.T) {
	p := testkit.NewProgram()
	p.Add(p.Class(testkit.ClassSpec{Name: "A", Superclass: p.ClassT("Missing")}))
	expectCodes(t, resolveProgram(t, p), diag.SemaUnknownClass)
}

func TestResolveOverrides(t *testing.T) {
	p := testkit.NewProgram()
	baseF := p.Function("f", nil, p.IntT())
	baseG := p.Function("g", nil, ast.NoTypeExprID)
	a := p.Class(testkit.ClassSpec{Name: "A", Methods: []ast.StmtID{p.Method(false, baseF), p.Method(true, baseG)}})
	subF := p.Function("f", nil, p.BoolT())
	subG := p.Function("g", nil, ast.NoTypeExprID)
	b := p.Class(testkit.ClassSpec{
		Name:       "B",
		Superclass: p.ClassT("A"),
		Methods:    []ast.StmtID{p.Method(false, subF), p.Method(false, subG)},
	})
	p.Add(a, b)

	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaOverrideReturnMismatch, diag.SemaOverrideStaticMismatch)
	if res.Diagnostics[1].Primary != p.FunctionName(subG).Span {
		t.Fatalf("static mismatch not reported at overriding method")
	}
	overridden := res.Table.Symbol(res.StmtSymbols[baseF]).Func.Method.OverriddenBy
	if len(overridden) != 1 || overridden[0] != res.StmtSymbols[subF] {
		t.Fatalf("OverriddenBy = %v", overridden)
	}
}

func TestResolveOverrideUnknownReturnReportedOnce(t *testing.T) {
	p := testkit.NewProgram()
	baseF := p.Function("f", nil, p.IntT())
	subF := p.Function("f", nil, p.ClassT("Missing"))
	a := p.Class(testkit.ClassSpec{Name: "A", Methods: []ast.StmtID{p.Method(false, baseF)}})
	b := p.Class(testkit.ClassSpec{Name: "B", Superclass: p.ClassT("A"), Methods: []ast.StmtID{p.Method(false, subF)}})
	p.Add(a, b)

	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaUnknownClass)
	overridden := res.Table.Symbol(res.StmtSymbols[baseF]).Func.Method.OverriddenBy
	if len(overridden) != 1 || overridden[0] != res.StmtSymbols[subF] {
		t.Fatalf("OverriddenBy = %v", overridden)
	}
}

func TestResolveOverrideChain(t *testing.T) {
	p := testkit.NewProgram()
	aF := p.Function("f", nil, ast.NoTypeExprID)
	cF := p.Function("f", nil, ast.NoTypeExprID)
	a := p.Class(testkit.ClassSpec{Name: "A", Methods: []ast.StmtID{p.Method(false, aF)}})
	b := p.Class(testkit.ClassSpec{Name: "B", Superclass: p.ClassT("A")})
	c := p.Class(testkit.ClassSpec{Name: "C", Superclass: p.ClassT("B"), Methods: []ast.StmtID{p.Method(false, cF)}})
	p.Add(a, b, c)

	res := resolveProgram(t, p)
	expectCodes(t, res)
	got := res.Table.Symbol(res.StmtSymbols[aF]).Func.Method.OverriddenBy
	if diff := pretty.Diff([]SymbolID{res.StmtSymbols[cF]}, got); len(diff) > 0 {
		t.Fatalf("OverriddenBy differs: %v", diff)
	}
}

func TestResolveStaticConstructor(t *testing.T) {
	p := testkit.NewProgram()
	ctor := p.Method(true, p.Function("A", nil, ast.NoTypeExprID))
	p.Add(p.Class(testkit.ClassSpec{Name: "A", Methods: []ast.StmtID{ctor}}))
	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaStaticConstructor)
	m, _ := p.B.Stmts.Method(ctor)
	if res.Diagnostics[0].Primary != m.StaticKeyword.Span {
		t.Fatalf("static constructor not reported at static keyword")
	}
}

func TestResolveSuperConstructorCalls(t *testing.T) {
	build := func(p *testkit.Program, body ...ast.StmtID) {
		base := p.Class(testkit.ClassSpec{Name: "A", Methods: []ast.StmtID{p.Method(false, p.Function("A", nil, ast.NoTypeExprID))}})
		sub := p.Class(testkit.ClassSpec{
			Name:       "B",
			Superclass: p.ClassT("A"),
			Methods:    []ast.StmtID{p.Method(false, p.Function("B", nil, ast.NoTypeExprID, body...))},
		})
		p.Add(base, sub)
	}

	t.Run("first statement", func(t *testing.T) {
		p := testkit.NewProgram()
		call, _ := p.SuperCall()
		build(p, p.ExprStmt(call), p.Output(p.Int(1)))
		res := resolveProgram(t, p)
		expectCodes(t, res)
		if cls := res.ExprClasses[call]; res.Table.Class(cls).Class.BaseName != "A" {
			t.Fatalf("super call bound to %d", cls)
		}
	})
	t.Run("not first", func(t *testing.T) {
		p := testkit.NewProgram()
		call, kw := p.SuperCall()
		build(p, p.Output(p.Int(1)), p.ExprStmt(call))
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaSuperNotFirst)
		if res.Diagnostics[0].Primary != kw.Span {
			t.Fatalf("super diagnostic not at keyword")
		}
	})
	t.Run("called twice", func(t *testing.T) {
		p := testkit.NewProgram()
		first, _ := p.SuperCall()
		second, _ := p.SuperCall()
		build(p, p.ExprStmt(first), p.ExprStmt(second))
		expectCodes(t, resolveProgram(t, p), diag.SemaSuperNotFirst)
	})
	t.Run("outside class", func(t *testing.T) {
		p := testkit.NewProgram()
		call, _ := p.SuperCall()
		p.Add(p.ExprStmt(call))
		expectCodes(t, resolveProgram(t, p), diag.SemaSuperOutsideClass)
	})
	t.Run("root class", func(t *testing.T) {
		p := testkit.NewProgram()
		call, _ := p.SuperCall()
		ctor := p.Function("A", nil, ast.NoTypeExprID, p.ExprStmt(call))
		p.Add(p.Class(testkit.ClassSpec{Name: "A", Methods: []ast.StmtID{p.Method(false, ctor)}}))
		expectCodes(t, resolveProgram(t, p), diag.SemaSuperInRootClass)
	})
	t.Run("plain method", func(t *testing.T) {
		p := testkit.NewProgram()
		call, _ := p.SuperCall()
		m := p.Function("m", nil, ast.NoTypeExprID, p.ExprStmt(call))
		p.Add(
			p.Class(testkit.ClassSpec{Name: "A"}),
			p.Class(testkit.ClassSpec{Name: "B", Superclass: p.ClassT("A"), Methods: []ast.StmtID{p.Method(false, m)}}),
		)
		expectCodes(t, resolveProgram(t, p), diag.SemaSuperOutsideConstructor)
	})
}

func TestResolveSuperMembers(t *testing.T) {
	build := func(p *testkit.Program, static bool, body ...ast.StmtID) (ast.StmtID, ast.StmtID) {
		base := p.Class(testkit.ClassSpec{
			Name:    "A",
			Fields:  []ast.ClassField{p.Field("x", false, p.IntT(), p.Int(1))},
			Methods: []ast.StmtID{p.Method(false, p.Function("m", nil, ast.NoTypeExprID))},
		})
		sub := p.Class(testkit.ClassSpec{
			Name:       "B",
			Superclass: p.ClassT("A"),
			Methods:    []ast.StmtID{p.Method(static, p.Function("n", nil, ast.NoTypeExprID, body...))},
		})
		p.Add(base, sub)
		return base, sub
	}

	t.Run("field", func(t *testing.T) {
		p := testkit.NewProgram()
		ref, _ := p.Super("x")
		base, _ := build(p, false, p.Output(ref))
		res := resolveProgram(t, p)
		expectCodes(t, res)
		if res.ExprSymbols[ref] != memberOf(t, res, base, "x").ID {
			t.Fatalf("super.x not bound to A.x")
		}
	})
	t.Run("missing", func(t *testing.T) {
		p := testkit.NewProgram()
		ref, _ := p.Super("y")
		build(p, false, p.Output(ref))
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaSuperMemberNotFound)
		if res.Diagnostics[0].Message != "Superclass 'A' has no member 'y'" {
			t.Fatalf("unexpected message %q", res.Diagnostics[0].Message)
		}
	})
	t.Run("instance field from static method", func(t *testing.T) {
		p := testkit.NewProgram()
		ref, _ := p.Super("x")
		build(p, true, p.Output(ref))
		expectCodes(t, resolveProgram(t, p), diag.SemaInstanceFromStatic)
	})
	t.Run("method call", func(t *testing.T) {
		p := testkit.NewProgram()
		build(p, false, p.ExprStmt(p.SuperMethodCall("m")))
		expectCodes(t, resolveProgram(t, p))
	})
	t.Run("root class", func(t *testing.T) {
		p := testkit.NewProgram()
		ref, kw := p.Super("x")
		m := p.Function("m", nil, ast.NoTypeExprID, p.Output(ref))
		p.Add(p.Class(testkit.ClassSpec{Name: "A", Methods: []ast.StmtID{p.Method(false, m)}}))
		res := resolveProgram(t, p)
		expectCodes(t, res, diag.SemaSuperInRootClass)
		if res.Diagnostics[0].Primary != kw.Span {
			t.Fatalf("super diagnostic not at keyword")
		}
	})
}

func TestResolveThis(t *testing.T) {
	t.Run("outside method", func(t *testing.T) {
		p := testkit.NewProgram()
		this, _ := p.This()
		p.Add(p.Output(this))
		expectCodes(t, resolveProgram(t, p), diag.SemaThisOutsideMethod)
	})
	t.Run("instance and static receivers", func(t *testing.T) {
		p := testkit.NewProgram()
		inst, _ := p.This()
		stat, _ := p.This()
		cls := p.Class(testkit.ClassSpec{
			Name: "A",
			Methods: []ast.StmtID{
				p.Method(false, p.Function("m", nil, ast.NoTypeExprID, p.Output(inst))),
				p.Method(true, p.Function("s", nil, ast.NoTypeExprID, p.Output(stat))),
			},
		})
		p.Add(cls)
		res := resolveProgram(t, p)
		expectCodes(t, res)
		info := res.Table.Class(res.StmtSymbols[cls]).Class
		if res.ExprSymbols[inst] != info.InstanceThis || res.ExprSymbols[stat] != info.StaticThis {
			t.Fatalf("this bound to %d/%d, want %d/%d", res.ExprSymbols[inst], res.ExprSymbols[stat], info.InstanceThis, info.StaticThis)
		}
	})
}

func TestResolveFieldAccessRules(t *testing.T) {
	t.Run("instance field from static method", func(t *testing.T) {
		p := testkit.NewProgram()
		p.Add(p.Class(testkit.ClassSpec{
			Name:    "A",
			Fields:  []ast.ClassField{p.Field("x", false, p.IntT(), p.Int(1))},
			Methods: []ast.StmtID{p.Method(true, p.Function("s", nil, ast.NoTypeExprID, p.Output(p.Var("x"))))},
		}))
		expectCodes(t, resolveProgram(t, p), diag.SemaInstanceFromStatic)
	})
	t.Run("field used by sibling initializer", func(t *testing.T) {
		p := testkit.NewProgram()
		p.Add(p.Class(testkit.ClassSpec{
			Name: "A",
			Fields: []ast.ClassField{
				p.Field("x", false, p.IntT(), p.Int(1)),
				p.Field("y", false, p.IntT(), p.Var("x")),
			},
		}))
		expectCodes(t, resolveProgram(t, p), diag.SemaFieldBeforeClass)
	})
	t.Run("fields and methods ready for method bodies", func(t *testing.T) {
		p := testkit.NewProgram()
		m := p.Function("m", nil, ast.NoTypeExprID, p.Output(p.Var("x")))
		cls := p.Class(testkit.ClassSpec{
			Name:    "A",
			Fields:  []ast.ClassField{p.Field("x", false, p.IntT(), p.Int(1))},
			Methods: []ast.StmtID{p.Method(false, m)},
		})
		p.Add(cls)
		res := resolveProgram(t, p)
		expectCodes(t, res)
		if v := memberOf(t, res, cls, "x").Var; v.Status != StatusInitialized || v.Kind != VarInstance {
			t.Fatalf("field x: %+v", v)
		}
		if !res.Table.Symbol(res.StmtSymbols[m]).Func.Method.Ready {
			t.Fatalf("method not marked ready")
		}
	})
}

func TestResolveClassReferences(t *testing.T) {
	p := testkit.NewProgram()
	alloc := p.New(p.ClassT("Box", p.IntT()))
	unknown := p.New(p.ClassT("Missing"))
	box := p.Class(testkit.ClassSpec{Name: "Box", ExpandedArgs: []ast.TypeExprID{p.IntT()}})
	p.Add(box, p.Assign("b", alloc), p.Assign("c", unknown))

	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaUnknownClass)
	cls := res.Table.Class(res.ExprClasses[alloc])
	if cls.Class.DisplayName != "Box<int>" || cls.Class.BaseName != "Box" {
		t.Fatalf("allocation bound to %+v", cls.Class)
	}
	if got := cls.Type().String(); got != "Box<int>" {
		t.Fatalf("class type renders as %q", got)
	}
	names, ok := res.Table.LookupKind(res.Table.Global(), "Box", SymbolClassName)
	if !ok || len(res.Table.Symbol(names).ClassName.Classes) != 1 {
		t.Fatalf("class name group missing")
	}
}

func TestResolveDuplicateClass(t *testing.T) {
	p := testkit.NewProgram()
	first := p.Class(testkit.ClassSpec{Name: "A"})
	second := p.Class(testkit.ClassSpec{Name: "A"})
	p.Add(first, second)
	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaDuplicateSymbol)
	if res.Diagnostics[0].Primary != p.ClassName(second).Span {
		t.Fatalf("duplicate class reported at the wrong declaration")
	}
}

func TestResolveCallRecordsGroup(t *testing.T) {
	p := testkit.NewProgram()
	call := p.Call("f", p.Int(1))
	p.Add(
		p.ExprStmt(call),
		p.Function("f", []ast.Param{p.Param("a", p.IntT(), ast.NoExprID)}, ast.NoTypeExprID),
	)
	res := resolveProgram(t, p)
	expectCodes(t, res)
	group, _ := res.Table.LookupKind(res.Table.Global(), "f", SymbolFunctionGroup)
	if res.ExprSymbols[call] != group {
		t.Fatalf("call bound to %d, want group %d", res.ExprSymbols[call], group)
	}
}

func TestResolveTablePassesValidation(t *testing.T) {
	p := testkit.NewProgram()
	brk, _ := p.Break()
	call, _ := p.SuperCall()
	p.Add(
		p.Class(testkit.ClassSpec{
			Name:    "Shape",
			Fields:  []ast.ClassField{p.Field("sides", false, p.IntT(), p.Int(0))},
			Methods: []ast.StmtID{p.Method(false, p.Function("area", nil, p.DoubleT()))},
		}),
		p.Class(testkit.ClassSpec{
			Name:       "Square",
			Superclass: p.ClassT("Shape"),
			Methods: []ast.StmtID{
				p.Method(false, p.Function("Square", nil, ast.NoTypeExprID, p.ExprStmt(call))),
				p.Method(false, p.Function("area", nil, p.DoubleT())),
			},
		}),
		p.Assign("total", p.Int(0)),
		p.LoopFrom("i", p.Int(1), p.Int(10),
			p.If(p.Bool(true), []ast.StmtID{brk}, []ast.StmtID{p.Assign("total", p.Binary(p.Var("total"), "+", p.Var("i")))}),
		),
	)
	res := resolveProgram(t, p)
	expectCodes(t, res)
	if err := res.Table.Validate(); err != nil {
		t.Fatalf("table invariants violated: %v", err)
	}
}

func TestResolveCanonicalizesRepeatedInstantiations(t *testing.T) {
	p := testkit.NewProgram()
	first := p.Class(testkit.ClassSpec{Name: "Box", ExpandedArgs: []ast.TypeExprID{p.IntT()}})
	again := p.Class(testkit.ClassSpec{Name: "Box", ExpandedArgs: []ast.TypeExprID{p.IntT()}})
	other := p.Class(testkit.ClassSpec{Name: "Box", ExpandedArgs: []ast.TypeExprID{p.BoolT()}})
	p.Add(first, again, other)

	res := resolveProgram(t, p)
	expectCodes(t, res)
	if _, ok := res.StmtSymbols[again]; ok {
		t.Fatalf("repeated instantiation declared a second class")
	}
	if res.ClassAliases[again] != res.StmtSymbols[first] {
		t.Fatalf("alias = %d, want %d", res.ClassAliases[again], res.StmtSymbols[first])
	}
	names, _ := res.Table.LookupKind(res.Table.Global(), "Box", SymbolClassName)
	if got := len(res.Table.Symbol(names).ClassName.Classes); got != 2 {
		t.Fatalf("Box has %d instantiations, want 2", got)
	}
}

func TestResolveNestedClassReportedAndBodiesWalked(t *testing.T) {
	p := testkit.NewProgram()
	brk, kw := p.Break()
	run := p.Method(false, p.Function("run", nil, ast.NoTypeExprID, brk, p.Output(p.Var("nope"))))
	inner := p.Class(testkit.ClassSpec{Name: "Inner", Methods: []ast.StmtID{run}})
	p.Add(p.Function("outer", nil, ast.NoTypeExprID, inner))

	res := resolveProgram(t, p)
	expectCodes(t, res, diag.SemaNestedClass, diag.SemaBreakOutsideLoop, diag.SemaUnresolvedSymbol)
	if got := res.Diagnostics[0].Primary; got != p.ClassName(inner).Span {
		t.Fatalf("nested class reported at %+v, want name span", got)
	}
	if got := res.Diagnostics[1].Primary; got != kw.Span {
		t.Fatalf("break reported at %+v, want keyword span %+v", got, kw.Span)
	}
	if _, ok := res.StmtSymbols[inner]; ok {
		t.Fatalf("nested class must not be declared")
	}
}

func TestMinArityStopsAtRequiredParam(t *testing.T) {
	p := testkit.NewProgram()
	req := func(name string) ast.Param { return p.Param(name, p.IntT(), ast.NoExprID) }
	opt := func(name string) ast.Param { return p.Param(name, p.IntT(), p.Int(1)) }
	cases := []struct {
		name   string
		params []ast.Param
		want   int
	}{
		{"none", nil, 0},
		{"all required", []ast.Param{req("a"), req("b")}, 2},
		{"trailing default", []ast.Param{req("a"), opt("b")}, 1},
		{"all defaulted", []ast.Param{opt("a"), opt("b")}, 0},
		{"default before required", []ast.Param{opt("a"), req("b")}, 2},
	}
	for _, tc := range cases {
		if got := minArity(tc.params); got != tc.want {
			t.Fatalf("%s: minArity = %d, want %d", tc.name, got, tc.want)
		}
	}
}
