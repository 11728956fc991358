package program

import (
	"gopkg.in/yaml.v3"

	"quasicode/internal/ast"
	"quasicode/internal/token"
)

var (
	methodKeys = append([]string{"static", "private"}, stmtKeys["function"]...)
	fieldKeys  = []string{"static", "private", "type", "init"}
	paramKeys  = []string{"type", "default"}
)

func visibility(private bool) ast.Visibility {
	if private {
		return ast.VisPrivate
	}
	return ast.VisPublic
}

// endTok marks the end of a declaration at the last value written inside it.
func (d *decoder) endTok(n *yaml.Node) token.Token {
	return token.Token{Kind: token.KwEnd, Lexeme: "end", Span: d.nodeSpan(lastScalar(n))}
}

func (d *decoder) class(m node) (ast.StmtID, bool) {
	kw := d.keyTok(m.kind.key)
	name, ok := d.ident(m.kind.value)
	data := ast.StmtClassData{
		Keyword: kw,
		Name:    name,
		Builtin: d.flag(m.get("builtin")),
	}

	if m.has("extends") {
		sup, supOK := d.typeExpr(m.get("extends"))
		ok = ok && supOK
		data.Superclass = sup
	}
	for _, item := range seq(m.get("template")) {
		param, paramOK := d.ident(item)
		ok = ok && paramOK
		data.TemplateParams = append(data.TemplateParams, param)
	}
	for _, item := range seq(m.get("args")) {
		arg, argOK := d.typeExpr(item)
		ok = ok && argOK
		data.ExpandedArgs = append(data.ExpandedArgs, arg)
	}
	for _, item := range seq(m.get("fields")) {
		if f, fieldOK := d.field(item); fieldOK {
			data.Fields = append(data.Fields, f)
		}
	}
	for _, item := range seq(m.get("methods")) {
		if id, methodOK := d.method(item); methodOK {
			data.Methods = append(data.Methods, id)
		}
	}
	if !ok {
		return ast.NoStmtID, false
	}
	data.End = d.endTok(m.kind.value)
	if len(m.fields) > 0 {
		data.End = d.endTok(lastField(m))
	}
	return d.b.Stmts.NewClass(kw.Span.Cover(data.End.Span), data), true
}

// lastField returns the value written last in the mapping.
func lastField(m node) *yaml.Node {
	var last *yaml.Node
	for _, e := range m.fields {
		if last == nil || e.key.Line > last.Line || (e.key.Line == last.Line && e.key.Column > last.Column) {
			last = e.key
			if e.value != nil {
				last = e.value
			}
		}
	}
	return last
}

func (d *decoder) field(n *yaml.Node) (ast.ClassField, bool) {
	m, ok := d.split(n, "field",
		func(k string) bool { return k == "field" },
		func(string) []string { return fieldKeys })
	if !ok {
		return ast.ClassField{}, false
	}
	name, ok := d.ident(m.kind.value)
	typ, typOK := d.optionalType(m.get("type"))
	f := ast.ClassField{
		Static:     d.flag(m.get("static")),
		Visibility: visibility(d.flag(m.get("private"))),
		Name:       name,
		Type:       typ,
	}
	if m.has("init") {
		init, initOK := d.expr(m.get("init"))
		ok = ok && initOK
		f.Init = init
	}
	return f, ok && typOK
}

func (d *decoder) method(n *yaml.Node) (ast.StmtID, bool) {
	m, ok := d.split(n, "method",
		func(k string) bool { return k == "function" },
		func(string) []string { return methodKeys })
	if !ok {
		return ast.NoStmtID, false
	}
	fn, ok := d.function(m)
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtMethodData{
		Static:     d.flag(m.get("static")),
		Visibility: visibility(d.flag(m.get("private"))),
		Function:   fn,
	}
	if data.Static {
		data.StaticKeyword = d.keyTok(m.fields["static"].key)
	}
	return d.b.Stmts.NewMethod(d.stmtSpan(fn), data), true
}

func (d *decoder) function(m node) (ast.StmtID, bool) {
	kw := d.keyTok(m.kind.key)
	name, ok := d.ident(m.kind.value)
	ret, retOK := d.optionalType(m.get("returns"))
	data := ast.StmtFunctionData{Keyword: kw, Name: name, Annotation: ret}
	for _, item := range seq(m.get("params")) {
		p, paramOK := d.param(item)
		ok = ok && paramOK
		data.Params = append(data.Params, p)
	}
	data.Body = d.stmts(m.get("body"))
	if !ok || !retOK {
		return ast.NoStmtID, false
	}
	data.End = d.endTok(m.kind.value)
	if len(m.fields) > 0 {
		data.End = d.endTok(lastField(m))
	}
	return d.b.Stmts.NewFunction(kw.Span.Cover(data.End.Span), data), true
}

// param reads `{param: a, type: int, default: 1}` or a bare name.
func (d *decoder) param(n *yaml.Node) (ast.Param, bool) {
	if n.Kind == yaml.ScalarNode {
		name, ok := d.ident(n)
		return ast.Param{Name: name}, ok
	}
	m, ok := d.split(n, "parameter",
		func(k string) bool { return k == "param" },
		func(string) []string { return paramKeys })
	if !ok {
		return ast.Param{}, false
	}
	name, ok := d.ident(m.kind.value)
	typ, typOK := d.optionalType(m.get("type"))
	p := ast.Param{Name: name, Type: typ}
	if m.has("default") {
		init, initOK := d.expr(m.get("default"))
		ok = ok && initOK
		p.Init = init
	}
	return p, ok && typOK
}
