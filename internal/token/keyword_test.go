package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"function": KwFunction,
		"return":   KwReturn,
		"loop":     KwLoop,
		"while":    KwWhile,
		"break":    KwBreak,
		"continue": KwContinue,
		"exit":     KwExit,
		"super":    KwSuper,
		"int":      KwInt,
		"any":      KwAny,
		"end":      KwEnd,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Function", "RETURN", "Int",
		"identifier", "Stack", "toString",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestIsTypeKeyword(t *testing.T) {
	for _, k := range []Kind{KwInt, KwDouble, KwBoolean, KwAny} {
		if !IsTypeKeyword(k) {
			t.Fatalf("expected %v to be a type keyword", k)
		}
	}
	if IsTypeKeyword(KwClass) || IsTypeKeyword(Ident) {
		t.Fatalf("class/ident are not type keywords")
	}
}
