package program

import (
	"fmt"
	"unicode"

	"github.com/smasher164/xid"
	"gopkg.in/yaml.v3"

	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/source"
	"quasicode/internal/token"
)

// typeExpr parses an annotation such as "int", "[double]" or
// "Pair<int, [Box<any>]>".
func (d *decoder) typeExpr(n *yaml.Node) (ast.TypeExprID, bool) {
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		d.malformed(n, "expected a type")
		return ast.NoTypeExprID, false
	}
	p := typeParser{d: d, n: n, src: []rune(n.Value)}
	id, ok := p.parse()
	if ok {
		p.skipSpace()
		if p.pos < len(p.src) {
			p.fail("unexpected '%c' in type", p.src[p.pos])
			return ast.NoTypeExprID, false
		}
	}
	return id, ok
}

// optionalType reads n when present.
func (d *decoder) optionalType(n *yaml.Node) (ast.TypeExprID, bool) {
	if n == nil {
		return ast.NoTypeExprID, true
	}
	return d.typeExpr(n)
}

type typeParser struct {
	d   *decoder
	n   *yaml.Node
	src []rune
	pos int
}

func (p *typeParser) at(offset int) source.Location {
	start := p.d.loc(p.n)
	if !start.IsValid() {
		return start
	}
	if p.n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		offset++
	}
	return start.Offset(int32(offset))
}

func (p *typeParser) span(from, to int) source.Span {
	return source.Span{Start: p.at(from), End: p.at(to)}
}

func (p *typeParser) fail(format string, args ...any) {
	sp := p.span(p.pos, min(p.pos+1, len(p.src)))
	diag.ReportError(p.d.reporter, diag.IOMalformedProgram, sp, fmt.Sprintf(format, args...)).Emit()
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *typeParser) eat(r rune) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) parse() (ast.TypeExprID, bool) {
	types := p.d.b.Types
	p.skipSpace()
	start := p.pos
	if p.eat('[') {
		elem, ok := p.parse()
		if !ok {
			return ast.NoTypeExprID, false
		}
		if !p.eat(']') {
			p.fail("expected ']'")
			return ast.NoTypeExprID, false
		}
		return types.NewArray(p.span(start, p.pos), elem), true
	}

	for p.pos < len(p.src) && (p.src[p.pos] == '_' || xid.Continue(p.src[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		p.fail("expected a type name")
		return ast.NoTypeExprID, false
	}
	raw := string(p.src[start:p.pos])
	nameSpan := p.span(start, p.pos)

	if kind, ok := token.LookupKeyword(raw); ok && token.IsTypeKeyword(kind) {
		return types.NewPrimitive(primitiveKind(kind), nameSpan), true
	}
	name, ok := normalizeIdent(raw)
	if !ok {
		diag.ReportError(p.d.reporter, diag.IOBadIdentifier, nameSpan,
			fmt.Sprintf("'%s' is not a valid class name", raw)).Emit()
		return ast.NoTypeExprID, false
	}
	var args []ast.TypeExprID
	if p.eat('<') {
		if !p.eat('>') {
			for {
				arg, ok := p.parse()
				if !ok {
					return ast.NoTypeExprID, false
				}
				args = append(args, arg)
				if p.eat(',') {
					continue
				}
				if p.eat('>') {
					break
				}
				p.fail("expected ',' or '>'")
				return ast.NoTypeExprID, false
			}
		}
	}
	tok := token.Token{Kind: token.Ident, Lexeme: name, Span: nameSpan}
	return types.NewClass(p.span(start, p.pos), tok, args), true
}

func primitiveKind(k token.Kind) ast.TypeExprKind {
	switch k {
	case token.KwInt:
		return ast.TypeExprInt
	case token.KwDouble:
		return ast.TypeExprDouble
	case token.KwBoolean:
		return ast.TypeExprBoolean
	default:
		return ast.TypeExprAny
	}
}
