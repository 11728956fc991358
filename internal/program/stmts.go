package program

import (
	"gopkg.in/yaml.v3"

	"quasicode/internal/ast"
	"quasicode/internal/source"
	"quasicode/internal/token"
)

var stmtKeys = map[string][]string{
	"class":    {"extends", "template", "args", "builtin", "fields", "methods"},
	"function": {"params", "returns", "body"},
	"expr":     nil,
	"if":       {"then", "elseif", "else"},
	"output":   nil,
	"input":    nil,
	"return":   nil,
	"loop":     {"from", "to", "body"},
	"while":    {"body"},
	"until":    {"body"},
	"break":    nil,
	"continue": nil,
	"exit":     nil,
	"block":    nil,
	"set":      {"type", "value", "also"},
	"multiset": nil,
}

func isStmtKind(k string) bool {
	_, ok := stmtKeys[k]
	return ok
}

func (d *decoder) stmtSpan(id ast.StmtID) source.Span {
	return d.b.Stmts.Get(id).Span
}

func (d *decoder) stmts(n *yaml.Node) []ast.StmtID {
	items := seq(n)
	out := make([]ast.StmtID, 0, len(items))
	for _, item := range items {
		if id, ok := d.stmt(item); ok {
			out = append(out, id)
		}
	}
	return out
}

// block wraps a statement list; at is used for the span of an empty block.
func (d *decoder) block(n *yaml.Node, at *yaml.Node) ast.StmtID {
	stmts := d.stmts(n)
	sp := source.NoSpan
	for _, id := range stmts {
		sp = sp.Cover(d.stmtSpan(id))
	}
	if !sp.IsValid() {
		sp = d.nodeSpan(at)
	}
	return d.b.Stmts.NewBlock(sp, stmts)
}

func (d *decoder) stmt(n *yaml.Node) (ast.StmtID, bool) {
	m, ok := d.split(n, "statement", isStmtKind, func(k string) []string { return stmtKeys[k] })
	if !ok {
		return ast.NoStmtID, false
	}
	key, val := m.kind.key, m.kind.value
	stmts := d.b.Stmts
	kw := d.keyTok(key)

	switch key.Value {
	case "class":
		return d.class(m)

	case "function":
		return d.function(m)

	case "expr":
		e, ok := d.expr(val)
		if !ok {
			return ast.NoStmtID, false
		}
		return stmts.NewExpr(d.span(e), e), true

	case "if":
		return d.ifStmt(m)

	case "output", "input":
		exprs, ok := d.exprs(val)
		if !ok {
			return ast.NoStmtID, false
		}
		if key.Value == "output" {
			return stmts.NewOutput(kw.Span, exprs), true
		}
		return stmts.NewInput(kw.Span, exprs), true

	case "return":
		data := ast.StmtReturnData{Keyword: kw}
		sp := kw.Span
		if !(val.Kind == yaml.ScalarNode && val.Tag == "!!null") {
			value, ok := d.expr(val)
			if !ok {
				return ast.NoStmtID, false
			}
			data.Value = value
			sp = sp.Cover(d.span(value))
		}
		return stmts.NewReturn(sp, data), true

	case "loop":
		name, ok := d.ident(val)
		from, fromOK := d.required(m, "from")
		to, toOK := d.required(m, "to")
		body := d.block(m.get("body"), key)
		if !ok || !fromOK || !toOK {
			return ast.NoStmtID, false
		}
		v := d.b.Exprs.NewVariable(name.Span, ast.ExprVariableData{Name: name})
		return stmts.NewLoopFrom(kw.Span, ast.StmtLoopFromData{Variable: v, From: from, To: to, Body: body}), true

	case "while", "until":
		cond, ok := d.expr(val)
		body := d.block(m.get("body"), key)
		if !ok {
			return ast.NoStmtID, false
		}
		return stmts.NewWhile(kw.Span, ast.StmtWhileData{Cond: cond, Until: key.Value == "until", Body: body}), true

	case "break":
		return stmts.NewKeyword(ast.StmtBreak, kw.Span, ast.StmtKeywordData{Keyword: kw}), true
	case "continue":
		return stmts.NewKeyword(ast.StmtContinue, kw.Span, ast.StmtKeywordData{Keyword: kw}), true
	case "exit":
		return stmts.NewKeyword(ast.StmtExit, kw.Span, ast.StmtKeywordData{Keyword: kw}), true

	case "block":
		return d.block(val, key), true

	case "set":
		return d.set(m)

	case "multiset":
		var sets []ast.StmtID
		sp := kw.Span
		for _, item := range seq(val) {
			id, ok := d.stmt(item)
			if !ok {
				continue
			}
			if d.b.Stmts.Get(id).Kind != ast.StmtSet {
				d.malformed(item, "multiset holds only 'set' statements")
				continue
			}
			sets = append(sets, id)
			sp = sp.Cover(d.stmtSpan(id))
		}
		return stmts.NewMultiSet(sp, sets), true
	}
	d.malformed(key, "unknown statement kind '%s'", key.Value)
	return ast.NoStmtID, false
}

func (d *decoder) ifStmt(m node) (ast.StmtID, bool) {
	kw := d.keyTok(m.kind.key)
	cond, ok := d.expr(m.kind.value)
	data := ast.StmtIfData{Cond: cond, Then: d.block(m.get("then"), m.kind.key)}
	for _, item := range seq(m.get("elseif")) {
		arm, armOK := d.split(item, "elseif arm",
			func(k string) bool { return k == "if" },
			func(string) []string { return []string{"then"} })
		if !armOK {
			ok = false
			continue
		}
		armCond, condOK := d.expr(arm.kind.value)
		if !condOK {
			ok = false
			continue
		}
		then := d.block(arm.get("then"), arm.kind.key)
		data.ElseIfs = append(data.ElseIfs, d.b.Stmts.NewIf(d.span(armCond), ast.StmtIfData{Cond: armCond, Then: then}))
	}
	if m.has("else") {
		data.Else = d.block(m.get("else"), m.fields["else"].key)
	}
	if !ok {
		return ast.NoStmtID, false
	}
	return d.b.Stmts.NewIf(kw.Span, data), true
}

// target decodes an assignment target. A bare name may declare the
// variable; anything else is an ordinary expression.
func (d *decoder) target(n *yaml.Node, annotation *entry) (ast.ExprID, bool) {
	if n.Kind != yaml.ScalarNode {
		return d.expr(n)
	}
	name, ok := d.ident(n)
	if !ok {
		return ast.NoExprID, false
	}
	v := d.b.Exprs.NewVariable(name.Span, ast.ExprVariableData{Name: name})
	data := ast.ExprVariableToSetData{Target: v}
	if annotation != nil {
		typ, ok := d.typeExpr(annotation.value)
		if !ok {
			return ast.NoExprID, false
		}
		data.Colon = d.tok(annotation.key, token.Colon, ":")
		data.Annotation = typ
	}
	return d.b.Exprs.NewVariableToSet(name.Span, data), true
}

func (d *decoder) set(m node) (ast.StmtID, bool) {
	var annotation *entry
	if e, ok := m.fields["type"]; ok {
		annotation = &e
	}
	left, ok := d.target(m.kind.value, annotation)
	value, valueOK := d.required(m, "value")
	var chained []ast.ExprID
	for _, item := range seq(m.get("also")) {
		c, cOK := d.target(item, nil)
		if !cOK {
			ok = false
			continue
		}
		chained = append(chained, c)
	}
	if !ok || !valueOK {
		return ast.NoStmtID, false
	}
	return d.b.Stmts.NewSet(d.span(left).Cover(d.span(value)), ast.StmtSetData{Left: left, Chained: chained, Value: value}), true
}
