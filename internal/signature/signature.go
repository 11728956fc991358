// Package signature compares function and method parameter lists.
//
// Two signatures collide when their names match and every parameter type is
// equal under the permissive mode, so two `any` parameters in the same
// position are treated as the same overload.
package signature

import (
	"github.com/cespare/xxhash/v2"

	"quasicode/internal/types"
)

type Signature struct {
	Name   string
	Params []types.Type
}

func New(name string, params ...types.Type) Signature {
	return Signature{Name: name, Params: params}
}

// Equal reports whether s and other denote the same overload.
func (s Signature) Equal(other Signature) bool {
	return s.Name == other.Name && types.SliceEqual(s.Params, other.Params, true)
}

// Hash agrees with Equal for every signature free of error types.
func (s Signature) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(s.Name)
	_, _ = d.Write([]byte{0})
	for _, p := range s.Params {
		types.WriteHash(d, p)
	}
	return d.Sum64()
}

// String renders the signature as "name(int, any)".
func (s Signature) String() string {
	return s.Name + types.FormatList(s.Params)
}
