package symbols

import (
	"quasicode/internal/ast"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // top-level declarations
	ScopeClass              // members declared directly in a class
	ScopeFunction           // parameters and body of a function or method
	ScopeBlock              // if arm or loop body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is one table: the names declared in a lexical frame.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ast.StmtID
	NameIndex map[string][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
