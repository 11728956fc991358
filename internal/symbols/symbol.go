package symbols

import (
	"quasicode/internal/ast"
	"quasicode/internal/source"
	"quasicode/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunctionGroup
	SymbolFunction
	SymbolMethod
	SymbolClass
	SymbolClassName
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunctionGroup:
		return "function-group"
	case SymbolFunction:
		return "function"
	case SymbolMethod:
		return "method"
	case SymbolClass:
		return "class"
	case SymbolClassName:
		return "class-name"
	default:
		return "invalid"
	}
}

// VarStatus tracks how far a variable's declaration has been resolved.
type VarStatus uint8

const (
	StatusUninitialized VarStatus = iota
	StatusInitializing
	StatusGlobalInitializing
	StatusFieldInitializing
	StatusInitialized
)

func (s VarStatus) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusInitializing:
		return "initializing"
	case StatusGlobalInitializing:
		return "global-initializing"
	case StatusFieldInitializing:
		return "field-initializing"
	case StatusInitialized:
		return "initialized"
	default:
		return "unknown"
	}
}

type VarKind uint8

const (
	VarGlobal VarKind = iota
	VarLocal
	VarInstance
	VarStatic
)

func (k VarKind) String() string {
	switch k {
	case VarGlobal:
		return "global"
	case VarLocal:
		return "local"
	case VarInstance:
		return "instance"
	case VarStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Symbol describes a named entity declared in a scope. Exactly one payload
// pointer matching Kind is set.
type Symbol struct {
	ID    SymbolID
	Table ScopeID
	Name  string
	Kind  SymbolKind
	Span  source.Span
	Decl  ast.StmtID

	Var       *VariableInfo
	Group     *GroupInfo
	Func      *FunctionInfo
	Class     *ClassInfo
	ClassName *ClassNameInfo
}

// VariableInfo describes a variable. Type has KindInvalid until annotated or
// inferred by a later pass.
type VariableInfo struct {
	Type   types.Type
	Status VarStatus
	Kind   VarKind
	// Defining is the assignment that declares a global variable.
	Defining ast.StmtID
}

// GroupInfo aggregates the overloads sharing one name in one scope.
type GroupInfo struct {
	ForMethods bool
	Members    []SymbolID
}

// FunctionInfo describes a function or, with Method set, a method.
// MinArity..len(Params) is the accepted argument count.
type FunctionInfo struct {
	BaseName   string
	ReturnType types.Type
	Params     []types.Type
	ParamNames []string
	MinArity   int
	Group      SymbolID
	Method     *MethodInfo
}

type MethodInfo struct {
	Class        SymbolID
	OverriddenBy []SymbolID
	Static       bool
	Visibility   ast.Visibility
	Constructor  bool
	// Ready is set once the class body is available to the method bodies.
	Ready bool
}

// HierarchyNode places a class in the inheritance forest. Depth is 1 for
// root classes and 0 until the hierarchy is built. A class whose superclass
// edge was rejected is a root.
type HierarchyNode struct {
	Superclass SymbolID
	Depth      int
	Subclasses []SymbolID
}

type ClassInfo struct {
	SignatureName string
	DisplayName   string
	BaseName      string
	Builtin       bool
	Scope         ScopeID
	RuntimeID     int32
	Hierarchy     HierarchyNode
	InstanceThis  SymbolID
	StaticThis    SymbolID
}

// ClassNameInfo aggregates every instantiation sharing a base name.
type ClassNameInfo struct {
	Builtin bool
	Classes []SymbolID
}

// Type returns the instance type of a class symbol.
func (s *Symbol) Type() types.Type {
	switch s.Kind {
	case SymbolClass:
		return types.MakeClass(s.Class.RuntimeID, s.Class.DisplayName)
	case SymbolVariable:
		return s.Var.Type
	case SymbolFunctionGroup:
		return types.MakeFunction(int32(s.ID), s.Name)
	}
	return types.MakeError()
}
