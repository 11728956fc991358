package symbols

// ScopeID identifies a scope table in the arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID identifies a symbol. Symbols carry NoSymbolID until declared.
type SymbolID int32

const (
	// NoSymbolID marks an unregistered symbol or an absent reference.
	NoSymbolID SymbolID = -1
)

// IsValid reports whether the symbol ID refers to a declared symbol.
func (id SymbolID) IsValid() bool { return id >= 0 }
