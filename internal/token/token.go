package token

import (
	"quasicode/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   source.Span
	Value  any // literal payload for IntLit/FloatLit/StringLit, nil otherwise
}

// Synthetic builds a token that has no position in the program text.
func Synthetic(kind Kind, lexeme string) Token {
	return Token{Kind: kind, Lexeme: lexeme, Span: source.NoSpan}
}

// IsSynthetic reports whether the token was not produced from the text.
func (t Token) IsSynthetic() bool { return !t.Span.Start.IsValid() }

// IsLiteral reports whether the token is a numeric, boolean, null or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind >= KwInt && t.Kind <= KwEnd }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
