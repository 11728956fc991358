package types

import (
	"testing"
)

func sampleTypes() []Type {
	return []Type{
		MakeInt(),
		MakeDouble(),
		MakeBoolean(),
		MakeAny(),
		MakeVoid(),
		MakeArray(MakeInt()),
		MakeArray(MakeArray(MakeInt())),
		MakeArray(MakeAny()),
		MakeClass(1, "Point"),
		MakeClass(2, "Point"),
		MakeFunction(7, "f"),
		MakeFunction(8, "f"),
	}
}

// containsAny reports whether t is any or an array nesting down to any.
func containsAny(t Type) bool {
	for t.Kind == KindArray {
		t = t.Element()
	}
	return t.Kind == KindAny
}

func TestEqualReflexiveAndSymmetric(t *testing.T) {
	ts := sampleTypes()
	for _, a := range ts {
		if !containsAny(a) && !Equal(a, a, false) {
			t.Fatalf("%s must equal itself", a)
		}
		if !Equal(a, a, true) {
			t.Fatalf("%s must equal itself with anyEqAny", a)
		}
		for _, b := range ts {
			for _, mode := range []bool{false, true} {
				if Equal(a, b, mode) != Equal(b, a, mode) {
					t.Fatalf("equality not symmetric for %s / %s (anyEqAny=%v)", a, b, mode)
				}
			}
		}
	}
}

func TestEqualStrictAnyInsideArray(t *testing.T) {
	a := MakeArray(MakeArray(MakeAny()))
	if Equal(a, a, false) {
		t.Fatalf("%s must not equal itself in strict mode", a)
	}
	if !Equal(a, a, true) {
		t.Fatalf("%s must equal itself with anyEqAny", a)
	}
}

func TestEqualRules(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Type
		anyEqAny bool
		want     bool
	}{
		{"nested arrays", MakeArray(MakeArray(MakeInt())), MakeArray(MakeArray(MakeInt())), false, true},
		{"array elem differs", MakeArray(MakeInt()), MakeArray(MakeDouble()), false, false},
		{"classes nominal", MakeClass(1, "A"), MakeClass(2, "A"), false, false},
		{"classes same id", MakeClass(3, "A"), MakeClass(3, "B"), false, true},
		{"any strict", MakeAny(), MakeAny(), false, false},
		{"any permissive", MakeAny(), MakeAny(), true, true},
		{"any vs int", MakeAny(), MakeInt(), true, false},
		{"void vs void", MakeVoid(), MakeVoid(), false, true},
		{"void vs int", MakeVoid(), MakeInt(), true, false},
		{"error vs error", MakeError(), MakeError(), true, false},
		{"error vs int", MakeError(), MakeInt(), true, false},
		{"function by name id", MakeFunction(4, "f"), MakeFunction(4, "g"), false, true},
		{"function differs", MakeFunction(4, "f"), MakeFunction(5, "f"), false, false},
		{"assignable ignored", MakeInt().WithAssignable(true), MakeInt(), false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b, tc.anyEqAny); got != tc.want {
				t.Fatalf("Equal(%s, %s, %v) = %v, want %v", tc.a, tc.b, tc.anyEqAny, got, tc.want)
			}
		})
	}
}

func TestHashAgreesWithEquality(t *testing.T) {
	ts := sampleTypes()
	for _, a := range ts {
		for _, b := range ts {
			if Equal(a, b, true) && Hash(a) != Hash(b) {
				t.Fatalf("hash mismatch for equal types %s / %s", a, b)
			}
		}
	}
	if Hash(MakeArray(MakeInt())) == Hash(MakeArray(MakeDouble())) {
		t.Fatalf("distinct arrays should not share a digest")
	}
}

func TestErrorHashIsNotStable(t *testing.T) {
	seen := make(map[uint64]struct{})
	for range 8 {
		seen[Hash(MakeError())] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("error hashes must vary, got %d distinct values", len(seen))
	}
}

func TestString(t *testing.T) {
	cases := map[string]Type{
		"int":          MakeInt(),
		"double":       MakeDouble(),
		"boolean":      MakeBoolean(),
		"any":          MakeAny(),
		"[[int]]":      MakeArray(MakeArray(MakeInt())),
		"Box<int>":     MakeClass(0, "Box<int>"),
		"<Error>":      MakeError(),
		"<Void>":       MakeVoid(),
		"<Function f>": MakeFunction(1, "f"),
	}
	for want, ty := range cases {
		if got := ty.String(); got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	}
	if got := FormatList([]Type{MakeInt(), MakeArray(MakeAny())}); got != "(int, [any])" {
		t.Fatalf("FormatList = %q", got)
	}
}

func TestDispatchPanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid kind")
		}
	}()
	Equal(Type{Kind: KindInvalid}, Type{Kind: KindInvalid}, false)
}
