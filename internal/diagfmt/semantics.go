package diagfmt

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
	"github.com/samber/lo"

	"quasicode/internal/ast"
	"quasicode/internal/symbols"
	"quasicode/internal/types"
)

// SemanticsInput carries the data required to build a semantic dump.
type SemanticsInput struct {
	Builder *ast.Builder
	Result  *symbols.Result
}

// SemanticsOutput is the symbol table in JSON form.
type SemanticsOutput struct {
	Scopes       []ScopeJSON       `json:"scopes"`
	Symbols      []SymbolJSON      `json:"symbols"`
	ExprBindings []ExprBindingJSON `json:"expr_bindings"`
}

type ScopeJSON struct {
	ID      uint32  `json:"id"`
	Kind    string  `json:"kind"`
	Parent  uint32  `json:"parent,omitempty"`
	Owner   uint32  `json:"owner_stmt,omitempty"`
	Symbols []int32 `json:"symbols,omitempty"`
}

type SymbolJSON struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Scope uint32 `json:"scope"`
	Type  string `json:"type,omitempty"`

	VarKind   string `json:"var_kind,omitempty"`
	VarStatus string `json:"var_status,omitempty"`

	Params       []string `json:"params,omitempty"`
	MinArity     int      `json:"min_arity,omitempty"`
	Returns      string   `json:"returns,omitempty"`
	Static       bool     `json:"static,omitempty"`
	Constructor  bool     `json:"constructor,omitempty"`
	OverriddenBy []int32  `json:"overridden_by,omitempty"`
	Members      []int32  `json:"members,omitempty"`

	Superclass *int32 `json:"superclass,omitempty"`
	Depth      int    `json:"depth,omitempty"`
	RuntimeID  int32  `json:"runtime_id,omitempty"`
}

type ExprBindingJSON struct {
	ExprID   uint32 `json:"expr_id"`
	SymbolID int32  `json:"symbol_id"`
	Name     string `json:"name"`
	Start    int32  `json:"start"`
	End      int32  `json:"end"`
}

// typeName renders t, leaving undecided types empty.
func typeName(t types.Type) string {
	if t.Kind == types.KindInvalid {
		return ""
	}
	return t.String()
}

func symbolIDs(ids []symbols.SymbolID) []int32 {
	return lo.Map(ids, func(id symbols.SymbolID, _ int) int32 { return int32(id) })
}

// BuildSemanticsOutput converts a resolve result into its JSON form.
func BuildSemanticsOutput(in SemanticsInput) (*SemanticsOutput, error) {
	if in.Result == nil || in.Result.Table == nil {
		return nil, nil
	}
	table := in.Result.Table
	out := &SemanticsOutput{
		Scopes:       make([]ScopeJSON, 0, table.Scopes.Len()),
		Symbols:      make([]SymbolJSON, 0, table.Symbols.Len()),
		ExprBindings: make([]ExprBindingJSON, 0, len(in.Result.ExprSymbols)),
	}

	// Scopes are stored with a sentinel at index 0.
	for idx, scope := range table.Scopes.Data() {
		id, err := safecast.Conv[uint32](idx + 1)
		if err != nil {
			return nil, fmt.Errorf("semantics: scope id overflow: %w", err)
		}
		out.Scopes = append(out.Scopes, ScopeJSON{
			ID:      id,
			Kind:    scope.Kind.String(),
			Parent:  uint32(scope.Parent),
			Owner:   uint32(scope.Owner),
			Symbols: symbolIDs(scope.Symbols),
		})
	}

	for _, sym := range table.Symbols.Data() {
		out.Symbols = append(out.Symbols, symbolJSON(&sym))
	}

	exprIDs := lo.Keys(in.Result.ExprSymbols)
	slices.Sort(exprIDs)
	for _, exprID := range exprIDs {
		symID := in.Result.ExprSymbols[exprID]
		binding := ExprBindingJSON{ExprID: uint32(exprID), SymbolID: int32(symID)}
		if sym := table.Symbol(symID); sym != nil {
			binding.Name = sym.Name
		}
		if in.Builder != nil {
			if expr := in.Builder.Exprs.Get(exprID); expr != nil {
				binding.Start, binding.End = expr.Span.Start.Index, expr.Span.End.Index
			}
		}
		out.ExprBindings = append(out.ExprBindings, binding)
	}
	return out, nil
}

func symbolJSON(sym *symbols.Symbol) SymbolJSON {
	sj := SymbolJSON{
		ID:    int32(sym.ID),
		Name:  sym.Name,
		Kind:  sym.Kind.String(),
		Scope: uint32(sym.Table),
	}
	switch sym.Kind {
	case symbols.SymbolVariable:
		sj.Type = typeName(sym.Var.Type)
		sj.VarKind = sym.Var.Kind.String()
		sj.VarStatus = sym.Var.Status.String()
	case symbols.SymbolFunction, symbols.SymbolMethod:
		sj.Params = lo.Map(sym.Func.Params, func(t types.Type, _ int) string { return typeName(t) })
		sj.MinArity = sym.Func.MinArity
		sj.Returns = typeName(sym.Func.ReturnType)
		if m := sym.Func.Method; m != nil {
			sj.Static = m.Static
			sj.Constructor = m.Constructor
			sj.OverriddenBy = symbolIDs(m.OverriddenBy)
		}
	case symbols.SymbolFunctionGroup:
		sj.Members = symbolIDs(sym.Group.Members)
	case symbols.SymbolClass:
		sj.Type = sym.Class.DisplayName
		sj.Depth = sym.Class.Hierarchy.Depth
		sj.RuntimeID = sym.Class.RuntimeID
		if sup := sym.Class.Hierarchy.Superclass; sup.IsValid() {
			v := int32(sup)
			sj.Superclass = &v
		}
	case symbols.SymbolClassName:
		sj.Members = symbolIDs(sym.ClassName.Classes)
	}
	return sj
}
