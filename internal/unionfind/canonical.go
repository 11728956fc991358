package unionfind

// Canonicalizer maps structurally identical instantiations onto one id.
// The first id registered for a key stays canonical; later ids registered
// under the same key are merged under it.
type Canonicalizer[K comparable] struct {
	set   *Set
	first map[K]int
}

func NewCanonicalizer[K comparable]() *Canonicalizer[K] {
	return &Canonicalizer[K]{
		set:   New(0),
		first: make(map[K]int),
	}
}

// Intern records id under key and returns the canonical id for key.
func (c *Canonicalizer[K]) Intern(key K, id int) int {
	if existing, ok := c.first[key]; ok {
		return c.set.Union(existing, id)
	}
	c.first[key] = id
	return c.set.Find(id)
}

// Canonical returns the canonical id for id; unknown ids map to themselves.
func (c *Canonicalizer[K]) Canonical(id int) int {
	return c.set.Find(id)
}
