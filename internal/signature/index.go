package signature

// Index is a map keyed by Signature. Buckets are keyed by Hash and scanned
// with Equal, so lookups follow signature equality rather than Go equality.
type Index[V any] struct {
	buckets map[uint64][]entry[V]
	size    int
}

type entry[V any] struct {
	sig Signature
	val V
}

func NewIndex[V any]() *Index[V] {
	return &Index[V]{buckets: make(map[uint64][]entry[V])}
}

// Insert stores val under sig unless an equal signature is already present.
// It returns the existing value and false on conflict.
func (ix *Index[V]) Insert(sig Signature, val V) (V, bool) {
	h := sig.Hash()
	for _, e := range ix.buckets[h] {
		if e.sig.Equal(sig) {
			return e.val, false
		}
	}
	ix.buckets[h] = append(ix.buckets[h], entry[V]{sig: sig, val: val})
	ix.size++
	return val, true
}

// Lookup returns the value stored under a signature equal to sig.
func (ix *Index[V]) Lookup(sig Signature) (V, bool) {
	for _, e := range ix.buckets[sig.Hash()] {
		if e.sig.Equal(sig) {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

func (ix *Index[V]) Len() int { return ix.size }
