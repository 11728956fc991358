package types

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// per-kind discriminants mixed into every digest
const (
	tagInt byte = iota + 1
	tagDouble
	tagBoolean
	tagAny
	tagArray
	tagClass
	tagFunction
	tagVoid
)

// Hash returns a digest that agrees with Equal(a, b, true). Error types hash
// to a fresh random value on every call so they never collide as map keys.
// The Assignable bit does not participate.
func Hash(t Type) uint64 {
	if t.Kind == KindError {
		return rand.Uint64()
	}
	d := xxhash.New()
	WriteHash(d, t)
	return d.Sum64()
}

// WriteHash feeds the structural identity of t into d. Callers combining
// several types into one digest use it instead of Hash.
func WriteHash(d *xxhash.Digest, t Type) {
	var buf [5]byte
	switch t.Kind {
	case KindInt:
		buf[0] = tagInt
		_, _ = d.Write(buf[:1])
	case KindDouble:
		buf[0] = tagDouble
		_, _ = d.Write(buf[:1])
	case KindBoolean:
		buf[0] = tagBoolean
		_, _ = d.Write(buf[:1])
	case KindAny:
		buf[0] = tagAny
		_, _ = d.Write(buf[:1])
	case KindVoid:
		buf[0] = tagVoid
		_, _ = d.Write(buf[:1])
	case KindArray:
		buf[0] = tagArray
		_, _ = d.Write(buf[:1])
		WriteHash(d, t.Element())
	case KindClass:
		buf[0] = tagClass
		binary.LittleEndian.PutUint32(buf[1:], uint32(t.ClassID))
		_, _ = d.Write(buf[:])
	case KindFunction:
		buf[0] = tagFunction
		binary.LittleEndian.PutUint32(buf[1:], uint32(t.NameID))
		_, _ = d.Write(buf[:])
	case KindError:
		binary.LittleEndian.PutUint32(buf[1:], rand.Uint32())
		_, _ = d.Write(buf[:])
	default:
		panic(fmt.Errorf("types: hash dispatch for %s reached end", t.Kind))
	}
}
