package game

// FreeCell is a movement candidate: a cell id and the mutable score the
// decoder accumulates while evaluating sub-policies. Scratch data; its
// lifetime is one horizon evaluation.
type FreeCell struct {
	ID    int
	Score int
}

// Horizon holds the scanned neighbourhood state of one agent for one
// sub-step: the occupied neighbours split by strategy, and the free cells
// available as movement targets. The agent's own cell is always the first
// free cell. On a regular graph the required capacity is known up front,
// so a single Horizon is allocated per generation loop and cleared
// between evaluations rather than recreated.
type Horizon struct {
	Cooperators []int
	Defectors   []int
	FreeCells   []FreeCell
}

// NewHorizon preallocates a horizon for the given regular degree.
func NewHorizon(degree int) *Horizon {
	return &Horizon{
		Cooperators: make([]int, 0, degree),
		Defectors:   make([]int, 0, degree),
		// +1 for the agent's own cell.
		FreeCells: make([]FreeCell, 0, degree+1),
	}
}

// Reset clears the horizon without releasing its backing arrays.
func (h *Horizon) Reset() {
	h.Cooperators = h.Cooperators[:0]
	h.Defectors = h.Defectors[:0]
	h.FreeCells = h.FreeCells[:0]
}
