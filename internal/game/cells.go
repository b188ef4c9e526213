package game

import "github.com/nvandessel/followflee/internal/random"

// CellSet tracks the empty cells of the graph. Replacement and movement
// need insertion and removal by id plus uniform random selection, so the
// set is a slice (for O(1) positional access) paired with an id-to-index
// map (for O(1) removal via swap-delete).
type CellSet struct {
	ids   []int
	index map[int]int
}

// NewCellSet creates an empty set with the given capacity hint.
func NewCellSet(capacity int) *CellSet {
	return &CellSet{
		ids:   make([]int, 0, capacity),
		index: make(map[int]int, capacity),
	}
}

// Add inserts id into the set. Adding an id that is already present is a
// no-op.
func (s *CellSet) Add(id int) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (s *CellSet) Remove(id int) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.ids) - 1
	moved := s.ids[last]
	s.ids[i] = moved
	s.index[moved] = i
	s.ids = s.ids[:last]
	delete(s.index, id)
}

// Contains reports whether id is in the set.
func (s *CellSet) Contains(id int) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of cells in the set.
func (s *CellSet) Len() int { return len(s.ids) }

// IDs returns the cell ids in internal order. The returned slice must not
// be mutated.
func (s *CellSet) IDs() []int { return s.ids }

// Random returns a uniformly chosen cell id. The set must be non-empty.
func (s *CellSet) Random(src random.Source) int {
	return s.ids[src.Uniform(len(s.ids)-1)]
}
