// Package snapshot exports a resolved symbol table to a compact msgpack
// file that other tools can load without re-running the analysis.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack/v5"

	"quasicode/internal/symbols"
	"quasicode/internal/types"
)

// Schema is bumped whenever the encoded layout changes.
const Schema uint16 = 1

// ErrSchema reports a snapshot written with a different layout.
var ErrSchema = errors.New("snapshot schema mismatch")

// Snapshot is the serialized form of a symbol table.
type Snapshot struct {
	Schema  uint16
	RunID   string
	Program string
	// Digest identifies the program document the table was built from.
	Digest  uint64
	Scopes  []Scope
	Symbols []Symbol
}

// Scope mirrors symbols.Scope; index 0 of Scopes is scope id 1.
type Scope struct {
	Kind    string
	Parent  uint32
	Symbols []int32
}

// Symbol mirrors symbols.Symbol with types rendered as text.
type Symbol struct {
	ID    int32
	Name  string
	Kind  string
	Scope uint32
	Row   int32
	Col   int32

	Type    string `msgpack:",omitempty"`
	VarKind string `msgpack:",omitempty"`

	Params      []string `msgpack:",omitempty"`
	MinArity    int      `msgpack:",omitempty"`
	Returns     string   `msgpack:",omitempty"`
	Static      bool     `msgpack:",omitempty"`
	Constructor bool     `msgpack:",omitempty"`
	Overriders  []int32  `msgpack:",omitempty"`

	Members    []int32 `msgpack:",omitempty"`
	Superclass int32
	Depth      int   `msgpack:",omitempty"`
	RuntimeID  int32 `msgpack:",omitempty"`
}

// Meta identifies the run a snapshot came from.
type Meta struct {
	RunID   string
	Program string
	Digest  uint64
}

func typeText(t types.Type) string {
	if t.Kind == types.KindInvalid {
		return ""
	}
	return t.String()
}

func ids(in []symbols.SymbolID) []int32 {
	return lo.Map(in, func(id symbols.SymbolID, _ int) int32 { return int32(id) })
}

// Build captures table. A nil table yields an empty snapshot.
func Build(table *symbols.Table, meta Meta) *Snapshot {
	snap := &Snapshot{Schema: Schema, RunID: meta.RunID, Program: meta.Program, Digest: meta.Digest}
	if table == nil {
		return snap
	}
	for _, sc := range table.Scopes.Data() {
		snap.Scopes = append(snap.Scopes, Scope{
			Kind:    sc.Kind.String(),
			Parent:  uint32(sc.Parent),
			Symbols: ids(sc.Symbols),
		})
	}
	for i := range table.Symbols.Data() {
		snap.Symbols = append(snap.Symbols, symbolOf(&table.Symbols.Data()[i]))
	}
	return snap
}

func symbolOf(sym *symbols.Symbol) Symbol {
	s := Symbol{
		ID:         int32(sym.ID),
		Name:       sym.Name,
		Kind:       sym.Kind.String(),
		Scope:      uint32(sym.Table),
		Row:        sym.Span.Start.Row,
		Col:        sym.Span.Start.Column,
		Superclass: int32(symbols.NoSymbolID),
	}
	switch sym.Kind {
	case symbols.SymbolVariable:
		s.Type = typeText(sym.Var.Type)
		s.VarKind = sym.Var.Kind.String()
	case symbols.SymbolFunction, symbols.SymbolMethod:
		s.Params = lo.Map(sym.Func.Params, func(t types.Type, _ int) string { return typeText(t) })
		s.MinArity = sym.Func.MinArity
		s.Returns = typeText(sym.Func.ReturnType)
		if m := sym.Func.Method; m != nil {
			s.Static = m.Static
			s.Constructor = m.Constructor
			s.Overriders = ids(m.OverriddenBy)
		}
	case symbols.SymbolFunctionGroup:
		s.Members = ids(sym.Group.Members)
	case symbols.SymbolClass:
		s.Type = sym.Class.DisplayName
		s.Superclass = int32(sym.Class.Hierarchy.Superclass)
		s.Depth = sym.Class.Hierarchy.Depth
		s.RuntimeID = sym.Class.RuntimeID
	case symbols.SymbolClassName:
		s.Members = ids(sym.ClassName.Classes)
	}
	return s
}

// Symbol returns the symbol with id, or nil.
func (s *Snapshot) Symbol(id int32) *Symbol {
	if s == nil || id < 0 || int(id) >= len(s.Symbols) {
		return nil
	}
	return &s.Symbols[id]
}

// Classes lists class symbols ordered by hierarchy depth, then id.
func (s *Snapshot) Classes() []Symbol {
	classes := lo.Filter(s.Symbols, func(sym Symbol, _ int) bool { return sym.Kind == "class" })
	byDepth := lo.GroupBy(classes, func(sym Symbol) int { return sym.Depth })
	depths := lo.Keys(byDepth)
	out := make([]Symbol, 0, len(classes))
	for d := 1; len(out) < len(classes) && d <= lo.Max(depths); d++ {
		out = append(out, byDepth[d]...)
	}
	return out
}

// Encode writes s as msgpack.
func (s *Snapshot) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(s)
}

// Decode reads a snapshot and rejects other schema versions.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Schema != Schema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, s.Schema, Schema)
	}
	return &s, nil
}

// Write stores s at path, replacing any previous file atomically.
func Write(path string, s *Snapshot) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "snapshot-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if err = s.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Read loads the snapshot stored at path.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
