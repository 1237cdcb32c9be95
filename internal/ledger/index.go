package ledger

import "slices"

// orderedSet keeps members sorted by the position they were added at. Positions come from
// the ledger's monotonic counter, so ascending position is first-insertion order, and a
// member put back at the position it was removed from regains its old place.
type orderedSet[K comparable] struct {
	items     []K
	positions []uint64
	pos       map[K]uint64
}

func newOrderedSet[K comparable]() *orderedSet[K] {
	return &orderedSet[K]{pos: make(map[K]uint64)}
}

func (s *orderedSet[K]) contains(k K) bool {
	_, ok := s.pos[k]
	return ok
}

// position returns the position k was added at
func (s *orderedSet[K]) position(k K) (uint64, bool) {
	p, ok := s.pos[k]
	return p, ok
}

// add inserts k at position p if k is absent and p is free, and reports whether it was added
func (s *orderedSet[K]) add(k K, p uint64) bool {
	if s.contains(k) {
		return false
	}
	i, taken := slices.BinarySearch(s.positions, p)
	if taken {
		return false
	}
	s.items = slices.Insert(s.items, i, k)
	s.positions = slices.Insert(s.positions, i, p)
	s.pos[k] = p
	return true
}

// remove deletes k if present and reports the position it held
func (s *orderedSet[K]) remove(k K) (uint64, bool) {
	p, ok := s.pos[k]
	if !ok {
		return 0, false
	}
	i, _ := slices.BinarySearch(s.positions, p)
	delete(s.pos, k)
	s.items = slices.Delete(s.items, i, i+1)
	s.positions = slices.Delete(s.positions, i, i+1)
	return p, true
}

func (s *orderedSet[K]) len() int {
	return len(s.items)
}

// snapshot returns a copy of the members in order
func (s *orderedSet[K]) snapshot() []K {
	out := make([]K, len(s.items))
	copy(out, s.items)
	return out
}
