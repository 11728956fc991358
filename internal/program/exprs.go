package program

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"quasicode/internal/ast"
	"quasicode/internal/source"
	"quasicode/internal/token"
)

var exprKeys = map[string][]string{
	"call":    {"on", "args"},
	"get":     {"on"},
	"super":   nil,
	"index":   {"of"},
	"unary":   {"operand"},
	"binary":  {"left", "right"},
	"logical": {"left", "right"},
	"group":   nil,
	"array":   nil,
	"new":     {"args"},
	"static":  nil,
	"cast":    {"value"},
	"alloc":   {"size"},
	"is":      {"value"},
}

var operators = map[string]token.Kind{
	"+":   token.Plus,
	"-":   token.Minus,
	"*":   token.Star,
	"/":   token.Slash,
	"==":  token.EqEq,
	"!=":  token.BangEq,
	"<":   token.Lt,
	"<=":  token.LtEq,
	">":   token.Gt,
	">=":  token.GtEq,
	"mod": token.KwMod,
	"div": token.KwDiv,
	"and": token.KwAnd,
	"or":  token.KwOr,
	"not": token.KwNot,
}

func (d *decoder) span(id ast.ExprID) source.Span {
	return d.b.Exprs.Get(id).Span
}

func (d *decoder) exprs(n *yaml.Node) ([]ast.ExprID, bool) {
	items := seq(n)
	out := make([]ast.ExprID, 0, len(items))
	ok := true
	for _, item := range items {
		id, good := d.expr(item)
		if !good {
			ok = false
			continue
		}
		out = append(out, id)
	}
	return out, ok
}

// required decodes the expression stored under key, reporting its absence
// at the naming key.
func (d *decoder) required(m node, key string) (ast.ExprID, bool) {
	if !m.has(key) {
		d.malformed(m.kind.key, "'%s' requires '%s'", m.kind.key.Value, key)
		return ast.NoExprID, false
	}
	return d.expr(m.get(key))
}

func (d *decoder) expr(n *yaml.Node) (ast.ExprID, bool) {
	if n == nil {
		return ast.NoExprID, false
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalarExpr(n)
	case yaml.MappingNode:
		m, ok := d.split(n, "expression",
			func(k string) bool { _, ok := exprKeys[k]; return ok },
			func(k string) []string { return exprKeys[k] })
		if !ok {
			return ast.NoExprID, false
		}
		return d.mappingExpr(m)
	default:
		d.malformed(n, "expected an expression")
		return ast.NoExprID, false
	}
}

func (d *decoder) literal(n *yaml.Node, kind token.Kind, value any) ast.ExprID {
	tok := d.tok(n, kind, n.Value)
	tok.Value = value
	return d.b.Exprs.NewLiteral(tok.Span, ast.ExprLiteralData{Value: tok})
}

func (d *decoder) scalarExpr(n *yaml.Node) (ast.ExprID, bool) {
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return d.literal(n, token.StringLit, n.Value), true
	}
	switch n.Tag {
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			d.malformed(n, "integer literal out of range")
			return ast.NoExprID, false
		}
		return d.literal(n, token.IntLit, v), true
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			d.malformed(n, "invalid number")
			return ast.NoExprID, false
		}
		return d.literal(n, token.FloatLit, v), true
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			d.malformed(n, "invalid boolean")
			return ast.NoExprID, false
		}
		kind := token.KwFalse
		if v {
			kind = token.KwTrue
		}
		return d.literal(n, kind, v), true
	case "!!null":
		return d.literal(n, token.KwNull, nil), true
	}
	if n.Value == "this" {
		kw := d.tok(n, token.KwThis, "this")
		return d.b.Exprs.NewThis(kw.Span, ast.ExprThisData{Keyword: kw}), true
	}
	name, ok := d.ident(n)
	if !ok {
		return ast.NoExprID, false
	}
	return d.b.Exprs.NewVariable(name.Span, ast.ExprVariableData{Name: name}), true
}

// receiver decodes the object of a call or property access. A plain
// "super" names the superclass instance.
func (d *decoder) receiver(n *yaml.Node) (ast.ExprID, bool) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && n.Value == "super" {
		tok := d.tok(n, token.Ident, "super")
		return d.b.Exprs.NewVariable(tok.Span, ast.ExprVariableData{Name: tok}), true
	}
	return d.expr(n)
}

func (d *decoder) operator(n *yaml.Node) (token.Token, bool) {
	kind, ok := operators[n.Value]
	if !ok || n.Kind != yaml.ScalarNode {
		d.malformed(n, "unknown operator '%s'", n.Value)
		return token.Token{}, false
	}
	return d.tok(n, kind, n.Value), true
}

func (d *decoder) mappingExpr(m node) (ast.ExprID, bool) {
	key, val := m.kind.key, m.kind.value
	exprs := d.b.Exprs
	switch key.Value {
	case "call":
		return d.callExpr(m)

	case "get":
		prop, ok := d.ident(val)
		obj, objOK := d.required(m, "on")
		if !ok || !objOK {
			return ast.NoExprID, false
		}
		return exprs.NewGet(d.span(obj).Cover(prop.Span), ast.ExprGetData{Object: obj, Property: prop}), true

	case "super":
		kw := d.keyTok(key)
		prop, ok := d.ident(val)
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewSuper(kw.Span.Cover(prop.Span), ast.ExprSuperData{Keyword: kw, Property: prop}), true

	case "index":
		index, ok := d.expr(val)
		target, targetOK := d.required(m, "of")
		if !ok || !targetOK {
			return ast.NoExprID, false
		}
		return exprs.NewSubscript(d.span(target).Cover(d.span(index)), ast.ExprSubscriptData{Target: target, Index: index}), true

	case "unary":
		op, ok := d.operator(val)
		operand, operandOK := d.required(m, "operand")
		if !ok || !operandOK {
			return ast.NoExprID, false
		}
		return exprs.NewUnary(op.Span.Cover(d.span(operand)), ast.ExprUnaryData{Op: op, Operand: operand}), true

	case "binary", "logical":
		op, ok := d.operator(val)
		left, leftOK := d.required(m, "left")
		right, rightOK := d.required(m, "right")
		if !ok || !leftOK || !rightOK {
			return ast.NoExprID, false
		}
		data := ast.ExprBinaryData{Left: left, Op: op, Right: right}
		sp := d.span(left).Cover(d.span(right))
		if key.Value == "logical" {
			return exprs.NewLogical(sp, data), true
		}
		return exprs.NewBinary(sp, data), true

	case "group":
		inner, ok := d.expr(val)
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewGrouping(d.span(inner), inner), true

	case "array":
		values, ok := d.exprs(val)
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewArrayLiteral(d.nodeSpan(key), values), true

	case "new":
		class, ok := d.typeExpr(val)
		args, argsOK := d.exprs(m.get("args"))
		if !ok || !argsOK {
			return ast.NoExprID, false
		}
		return exprs.NewClassAllocation(d.nodeSpan(key).Cover(d.b.Types.Get(class).Span),
			ast.ExprClassAllocationData{Class: class, Args: args}), true

	case "static":
		class, ok := d.typeExpr(val)
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewStaticClass(d.b.Types.Get(class).Span, class), true

	case "cast":
		typ, ok := d.typeExpr(val)
		value, valueOK := d.required(m, "value")
		if !ok || !valueOK {
			return ast.NoExprID, false
		}
		return exprs.NewCast(d.b.Types.Get(typ).Span.Cover(d.span(value)), ast.ExprCastData{Type: typ, Value: value}), true

	case "alloc":
		elem, ok := d.typeExpr(val)
		size, sizeOK := d.exprs(m.get("size"))
		if !ok || !sizeOK {
			return ast.NoExprID, false
		}
		return exprs.NewArrayAllocation(d.nodeSpan(key).Cover(d.b.Types.Get(elem).Span),
			ast.ExprArrayAllocationData{Elem: elem, Capacity: size}), true

	case "is":
		kw := d.keyTok(key)
		typ, ok := d.typeExpr(val)
		left, leftOK := d.required(m, "value")
		if !ok || !leftOK {
			return ast.NoExprID, false
		}
		return exprs.NewIsType(d.span(left).Cover(d.b.Types.Get(typ).Span),
			ast.ExprIsTypeData{Left: left, Keyword: kw, Right: typ}), true
	}
	d.malformed(key, "unknown expression kind '%s'", key.Value)
	return ast.NoExprID, false
}

// callExpr decodes `call: name`. Without a receiver, "super" is the
// constructor chaining call.
func (d *decoder) callExpr(m node) (ast.ExprID, bool) {
	val := m.kind.value
	args, argsOK := d.exprs(m.get("args"))

	if !m.has("on") && val.Kind == yaml.ScalarNode && val.Value == "super" {
		kw := d.tok(val, token.KwSuper, "super")
		if !argsOK {
			return ast.NoExprID, false
		}
		return d.b.Exprs.NewCall(kw.Span, ast.ExprCallData{Property: kw, Args: args}), true
	}

	name, ok := d.ident(val)
	var obj ast.ExprID
	objOK := true
	if m.has("on") {
		obj, objOK = d.receiver(m.get("on"))
	}
	if !ok || !objOK || !argsOK {
		return ast.NoExprID, false
	}
	sp := name.Span
	if obj.IsValid() {
		sp = d.span(obj).Cover(sp)
	}
	return d.b.Exprs.NewCall(sp, ast.ExprCallData{Object: obj, Property: name, Args: args}), true
}
