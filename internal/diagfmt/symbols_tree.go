package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"quasicode/internal/ast"
	"quasicode/internal/symbols"
	"quasicode/internal/types"
)

// FormatSymbolsPretty writes the scope tree of res with hierarchical
// prefixes (├─, └─). Each scope lists its symbols, then its child scopes.
func FormatSymbolsPretty(w io.Writer, res *symbols.Result) error {
	if res == nil || res.Table == nil {
		_, err := fmt.Fprintln(w, "<no symbols>")
		return err
	}
	owners := make(map[ast.StmtID]string, len(res.StmtSymbols))
	for stmt, id := range res.StmtSymbols {
		if sym := res.Table.Symbol(id); sym != nil {
			owners[stmt] = sym.Name
		}
	}
	p := symbolPrinter{w: w, table: res.Table, owners: owners}
	p.scope(res.Table.Global(), "")
	return p.err
}

type symbolPrinter struct {
	w      io.Writer
	table  *symbols.Table
	owners map[ast.StmtID]string
	err    error
}

func (p *symbolPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *symbolPrinter) scope(id symbols.ScopeID, prefix string) {
	scope := p.table.Scopes.Get(id)
	if scope == nil {
		return
	}
	label := scope.Kind.String() + " scope"
	if owner, ok := p.owners[scope.Owner]; ok {
		label += " of " + owner
	}
	if prefix == "" {
		p.printf("%s\n", label)
	}

	total := len(scope.Symbols) + len(scope.Children)
	n := 0
	branch := func() (string, string) {
		n++
		if n == total {
			return prefix + "└─ ", prefix + "   "
		}
		return prefix + "├─ ", prefix + "│  "
	}
	for _, sid := range scope.Symbols {
		head, _ := branch()
		p.printf("%s%s\n", head, describeSymbol(p.table, sid))
	}
	for _, child := range scope.Children {
		head, next := branch()
		cs := p.table.Scopes.Get(child)
		label := cs.Kind.String() + " scope"
		if owner, ok := p.owners[cs.Owner]; ok {
			label += " of " + owner
		}
		p.printf("%s%s\n", head, label)
		p.scope(child, next)
	}
}

func describeSymbol(t *symbols.Table, id symbols.SymbolID) string {
	sym := t.Symbol(id)
	if sym == nil {
		return fmt.Sprintf("<missing symbol %d>", id)
	}
	switch sym.Kind {
	case symbols.SymbolVariable:
		s := fmt.Sprintf("variable %s", sym.Name)
		if ty := typeName(sym.Var.Type); ty != "" {
			s += ": " + ty
		}
		return s + fmt.Sprintf(" [%s]", sym.Var.Kind)
	case symbols.SymbolFunction, symbols.SymbolMethod:
		var b strings.Builder
		b.WriteString(sym.Kind.String())
		if m := sym.Func.Method; m != nil && m.Static {
			b.WriteString(" static")
		}
		b.WriteString(" " + sym.Func.BaseName + types.FormatList(sym.Func.Params))
		if !sym.Func.ReturnType.IsVoid() {
			b.WriteString(" -> " + typeName(sym.Func.ReturnType))
		}
		if m := sym.Func.Method; m != nil {
			if m.Constructor {
				b.WriteString(" [constructor]")
			}
			if len(m.OverriddenBy) > 0 {
				fmt.Fprintf(&b, " [overridden %d]", len(m.OverriddenBy))
			}
		}
		return b.String()
	case symbols.SymbolFunctionGroup:
		return fmt.Sprintf("group %s (%d)", sym.Name, len(sym.Group.Members))
	case symbols.SymbolClass:
		s := fmt.Sprintf("class %s (depth %d", sym.Class.DisplayName, sym.Class.Hierarchy.Depth)
		if sup := t.Symbol(sym.Class.Hierarchy.Superclass); sup != nil {
			s += ", extends " + sup.Class.DisplayName
		}
		return s + ")"
	case symbols.SymbolClassName:
		return fmt.Sprintf("class-name %s (%d)", sym.Name, len(sym.ClassName.Classes))
	}
	return sym.Name
}
