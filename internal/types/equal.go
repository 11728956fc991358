package types

import "fmt"

// Equal compares two types. Error never equals anything, itself included.
// Any equals Any only when anyEqAny is set; that mode is reserved for
// redeclaration checks. Arrays compare structurally, classes by id only.
func Equal(a, b Type, anyEqAny bool) bool {
	if a.Kind == KindError || b.Kind == KindError {
		return false
	}
	if a.Kind == KindVoid || b.Kind == KindVoid {
		return a.Kind == KindVoid && b.Kind == KindVoid
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInt, KindDouble, KindBoolean:
		return true
	case KindAny:
		return anyEqAny
	case KindArray:
		return Equal(a.Element(), b.Element(), anyEqAny)
	case KindClass:
		return a.ClassID == b.ClassID
	case KindFunction:
		return a.NameID == b.NameID
	}
	panic(fmt.Errorf("types: equality dispatch for %s reached end", a.Kind))
}

// Equal is the method form of Equal with anyEqAny unset.
func (t Type) Equal(other Type) bool {
	return Equal(t, other, false)
}

// SliceEqual compares two type lists pairwise.
func SliceEqual(a, b []Type, anyEqAny bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i], anyEqAny) {
			return false
		}
	}
	return true
}
