package types

import "fmt"

// Kind enumerates the closed set of semantic types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindDouble
	KindBoolean
	KindAny
	KindArray
	KindClass
	KindFunction
	KindError
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindBoolean:
		return "boolean"
	case KindAny:
		return "any"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindError:
		return "error"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// NoClassID marks a class type whose id has not been assigned yet.
const NoClassID int32 = -1

// Type is a descriptor for any supported type. Only the fields relevant to
// Kind are meaningful.
type Type struct {
	Kind Kind
	// Assignable marks an expression of this type as a storage location.
	Assignable bool
	Elem       *Type  // for arrays
	ClassID    int32  // for classes
	Name       string // display name for classes and functions
	NameID     int32  // for functions
}

// Descriptor helpers ---------------------------------------------------------

func MakeInt() Type     { return Type{Kind: KindInt} }
func MakeDouble() Type  { return Type{Kind: KindDouble} }
func MakeBoolean() Type { return Type{Kind: KindBoolean} }
func MakeAny() Type     { return Type{Kind: KindAny} }
func MakeError() Type   { return Type{Kind: KindError} }
func MakeVoid() Type    { return Type{Kind: KindVoid} }

// MakeArray describes [elem].
func MakeArray(elem Type) Type {
	e := elem
	return Type{Kind: KindArray, Elem: &e}
}

// MakeClass describes an instance of the class with the given id.
func MakeClass(id int32, name string) Type {
	return Type{Kind: KindClass, ClassID: id, Name: name}
}

// MakeFunction describes a reference to the function group nameID.
func MakeFunction(nameID int32, name string) Type {
	return Type{Kind: KindFunction, NameID: nameID, Name: name}
}

// WithAssignable returns a copy of t with the Assignable bit set to v.
func (t Type) WithAssignable(v bool) Type {
	t.Assignable = v
	return t
}

// Element returns the element type of an array. It panics for other kinds.
func (t Type) Element() Type {
	if t.Kind != KindArray || t.Elem == nil {
		panic(fmt.Errorf("types: Element called on %s", t.Kind))
	}
	return *t.Elem
}

func (t Type) IsError() bool { return t.Kind == KindError }
func (t Type) IsVoid() bool  { return t.Kind == KindVoid }
func (t Type) IsAny() bool   { return t.Kind == KindAny }

// IsNumeric reports whether t is int or double.
func (t Type) IsNumeric() bool {
	return t.Kind == KindInt || t.Kind == KindDouble
}
