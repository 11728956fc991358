// Package token defines the lexical token kinds consumed by the semantic core.
// Invariants:
//   - Tokens are produced by the scanner and are immutable afterwards.
//   - Token.Span covers Lexeme exactly ([Start, End)).
//   - Built-in type names (int, double, boolean, any) are keywords, not
//     identifiers; class names are identifiers.
//   - Synthesized tokens carry source.NoSpan.
package token
