package unionfind

import "testing"

func TestUnionAttachesSecondUnderFirst(t *testing.T) {
	s := New(4)
	s.Union(2, 3)
	if got := s.Find(3); got != 2 {
		t.Fatalf("Find(3) = %d, want 2", got)
	}
	s.Union(0, 3)
	if got := s.Find(2); got != 0 {
		t.Fatalf("Find(2) = %d, want 0", got)
	}
	if s.Same(1, 3) {
		t.Fatalf("1 and 3 must stay apart")
	}
}

func TestFindCompressesPath(t *testing.T) {
	s := New(5)
	s.Union(3, 4)
	s.Union(2, 3)
	s.Union(1, 2)
	s.Union(0, 1)
	if s.Find(4) != 0 {
		t.Fatalf("representative of 4 must be 0")
	}
	if s.parent[4] != 0 {
		t.Fatalf("path not compressed: parent[4] = %d", s.parent[4])
	}
}

func TestSetGrowsOnDemand(t *testing.T) {
	s := New(0)
	if s.Find(9) != 9 {
		t.Fatalf("fresh id must be its own representative")
	}
	if s.Len() != 10 {
		t.Fatalf("Len = %d, want 10", s.Len())
	}
}

func TestCanonicalizer(t *testing.T) {
	c := NewCanonicalizer[string]()
	if got := c.Intern("Box<int>", 4); got != 4 {
		t.Fatalf("first instantiation must be canonical, got %d", got)
	}
	if got := c.Intern("Box<double>", 5); got != 5 {
		t.Fatalf("distinct key must keep its id, got %d", got)
	}
	if got := c.Intern("Box<int>", 7); got != 4 {
		t.Fatalf("duplicate instantiation must map to 4, got %d", got)
	}
	if c.Canonical(7) != 4 || c.Canonical(5) != 5 {
		t.Fatalf("canonical ids wrong")
	}
}
