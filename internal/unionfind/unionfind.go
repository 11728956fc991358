// Package unionfind implements a disjoint-set forest over dense integer ids.
package unionfind

// Set tracks equivalence classes of non-negative ints. Ids beyond the current
// size are added on demand as singleton sets.
type Set struct {
	parent []int
}

// New returns a set holding the singletons 0..size-1.
func New(size int) *Set {
	s := &Set{}
	s.grow(size)
	return s
}

func (s *Set) grow(size int) {
	for i := len(s.parent); i < size; i++ {
		s.parent = append(s.parent, i)
	}
}

// Len reports how many ids the set currently tracks.
func (s *Set) Len() int { return len(s.parent) }

// Find returns the representative of x, compressing the path it walked.
func (s *Set) Find(x int) int {
	if x < 0 {
		panic("unionfind: negative id")
	}
	s.grow(x + 1)
	root := x
	for s.parent[root] != root {
		root = s.parent[root]
	}
	for s.parent[x] != root {
		next := s.parent[x]
		s.parent[x] = root
		x = next
	}
	return root
}

// Union merges the sets of a and b. The representative of b's set is
// attached under the representative of a's set, so a's representative wins.
func (s *Set) Union(a, b int) int {
	ra, rb := s.Find(a), s.Find(b)
	if ra != rb {
		s.parent[rb] = ra
	}
	return ra
}

// Same reports whether a and b are in one set.
func (s *Set) Same(a, b int) bool {
	return s.Find(a) == s.Find(b)
}
