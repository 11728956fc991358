package program

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"quasicode/internal/ast"
	"quasicode/internal/diag"
	"quasicode/internal/source"
	"quasicode/internal/token"
)

// Program is a decoded program document.
type Program struct {
	Builder *ast.Builder
	Stmts   []ast.StmtID
	Text    *Text
	// Digest is the xxhash of the raw document.
	Digest uint64
	// Diagnostics lists malformed nodes that were skipped.
	Diagnostics []diag.Diagnostic
}

// Options controls decoding.
type Options struct {
	Path     string
	Hints    ast.Hints
	Reporter diag.Reporter
}

var errNoProgram = errors.New("document has no 'program' sequence")

// LoadFile reads and decodes the document at path.
func LoadFile(path string, opts Options) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	opts.Path = path
	return Load(bytes.NewReader(data), opts)
}

// Load decodes a program document. Malformed statements and expressions are
// reported and skipped; only unreadable YAML or a document without a
// top-level 'program' sequence is an error.
func Load(r io.Reader, opts Options) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%s: %w", displayPath(opts.Path), err)
	}
	body, err := programBody(&root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayPath(opts.Path), err)
	}

	bag := diag.NewBag(0)
	d := &decoder{
		b:        ast.NewBuilder(opts.Hints),
		text:     newText(opts.Path, data),
		reporter: diag.MultiReporter{diag.BagReporter{Bag: bag}, opts.Reporter},
	}
	prog := &Program{Builder: d.b, Text: d.text, Digest: xxhash.Sum64(data)}
	for _, n := range body.Content {
		if id, ok := d.stmt(n); ok {
			prog.Stmts = append(prog.Stmts, id)
		}
	}
	prog.Diagnostics = bag.Items()
	return prog, nil
}

func displayPath(path string) string {
	if path == "" {
		return "<input>"
	}
	return path
}

func programBody(root *yaml.Node) (*yaml.Node, error) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errNoProgram
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, errNoProgram
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == "program" {
			body := doc.Content[i+1]
			if body.Kind == yaml.SequenceNode {
				return body, nil
			}
			if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
				return &yaml.Node{Kind: yaml.SequenceNode}, nil
			}
			break
		}
	}
	return nil, errNoProgram
}

type decoder struct {
	b        *ast.Builder
	text     *Text
	reporter diag.Reporter
}

// entry is one key/value pair of a mapping node.
type entry struct {
	key, value *yaml.Node
}

// node is a mapping split into its naming key and the remaining fields.
type node struct {
	kind   entry
	fields map[string]entry
}

func (n node) has(key string) bool {
	_, ok := n.fields[key]
	return ok
}

func (n node) get(key string) *yaml.Node {
	return n.fields[key].value
}

func (d *decoder) malformed(n *yaml.Node, format string, args ...any) {
	diag.ReportError(d.reporter, diag.IOMalformedProgram, d.nodeSpan(n), fmt.Sprintf(format, args...)).Emit()
}

// split reads a mapping whose first key is one of kinds. Unknown keys are
// reported.
func (d *decoder) split(n *yaml.Node, what string, kinds func(string) bool, allowed func(kind string) []string) (node, bool) {
	if n.Kind != yaml.MappingNode || len(n.Content) < 2 {
		d.malformed(n, "expected a %s mapping", what)
		return node{}, false
	}
	first := entry{key: n.Content[0], value: n.Content[1]}
	if !kinds(first.key.Value) {
		d.malformed(first.key, "unknown %s kind '%s'", what, first.key.Value)
		return node{}, false
	}
	out := node{kind: first, fields: make(map[string]entry)}
	known := allowed(first.key.Value)
	for i := 2; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if !contains(known, k.Value) {
			d.malformed(k, "unexpected key '%s' in %s", k.Value, first.key.Value)
			continue
		}
		if _, dup := out.fields[k.Value]; dup {
			d.malformed(k, "duplicate key '%s'", k.Value)
			continue
		}
		out.fields[k.Value] = entry{key: k, value: v}
	}
	return out, true
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Positions -------------------------------------------------------------------

func (d *decoder) loc(n *yaml.Node) source.Location {
	if n == nil {
		return source.NoLocation
	}
	return d.text.Location(n.Line, n.Column)
}

// nodeSpan covers a scalar's written value, or the first position of a
// collection.
func (d *decoder) nodeSpan(n *yaml.Node) source.Span {
	start := d.loc(n)
	if !start.IsValid() {
		return source.NoSpan
	}
	width := int32(1)
	if n.Kind == yaml.ScalarNode {
		width = max(int32(len([]rune(n.Value))), 1)
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			width += 2
		}
	}
	return source.Span{Start: start, End: start.Offset(width)}
}

// lastScalar finds the last scalar written inside n.
func lastScalar(n *yaml.Node) *yaml.Node {
	for n != nil && len(n.Content) > 0 {
		n = n.Content[len(n.Content)-1]
	}
	return n
}

func (d *decoder) tok(n *yaml.Node, kind token.Kind, lexeme string) token.Token {
	sp := d.nodeSpan(n)
	if sp.IsValid() {
		sp.End = sp.Start.Offset(max(int32(len([]rune(lexeme))), 1))
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Span: sp}
}

// keyTok turns a mapping key such as "function" or "static" into a keyword
// token.
func (d *decoder) keyTok(key *yaml.Node) token.Token {
	kind, ok := token.LookupKeyword(key.Value)
	if !ok {
		kind = token.Ident
	}
	return d.tok(key, kind, key.Value)
}

// ident reads an identifier scalar.
func (d *decoder) ident(n *yaml.Node) (token.Token, bool) {
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		d.malformed(n, "expected an identifier")
		return token.Token{}, false
	}
	name, ok := normalizeIdent(n.Value)
	if !ok {
		diag.ReportError(d.reporter, diag.IOBadIdentifier, d.nodeSpan(n),
			fmt.Sprintf("'%s' is not a valid identifier", n.Value)).Emit()
		return token.Token{}, false
	}
	return d.tok(n, token.Ident, name), true
}

func (d *decoder) flag(n *yaml.Node) bool {
	if n == nil {
		return false
	}
	var v bool
	if err := n.Decode(&v); err != nil {
		d.malformed(n, "expected true or false")
		return false
	}
	return v
}

// seq returns the items of a sequence; a single non-sequence node counts as
// a one-item sequence and null as empty.
func seq(n *yaml.Node) []*yaml.Node {
	switch {
	case n == nil:
		return nil
	case n.Kind == yaml.SequenceNode:
		return n.Content
	case n.Kind == yaml.ScalarNode && n.Tag == "!!null":
		return nil
	default:
		return []*yaml.Node{n}
	}
}
