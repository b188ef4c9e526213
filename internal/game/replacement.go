package game

import (
	"fmt"
	"sort"
)

// RepMode selects the birth-death replacement strategy.
type RepMode int

const (
	// SimpleBD vacates the worst scorers and clones the best scorers
	// onto uniformly random empty cells anywhere on the graph.
	SimpleBD RepMode = iota

	// NeighbourBD vacates the worst scorers and places each clone on a
	// random empty neighbour of its parent when one exists, creating
	// spatial clustering of successful lineages.
	NeighbourBD
)

// ParseRepMode converts the configuration identifier to a RepMode.
func ParseRepMode(s string) (RepMode, error) {
	switch s {
	case "simpleBD":
		return SimpleBD, nil
	case "neighbourBD":
		return NeighbourBD, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRepMode, s)
}

// String returns the configuration identifier for the mode.
func (r RepMode) String() string {
	switch r {
	case SimpleBD:
		return "simpleBD"
	case NeighbourBD:
		return "neighbourBD"
	}
	return fmt.Sprintf("repMode(%d)", int(r))
}

// replace runs the configured replacement strategy for k agents.
func (m *Model) replace(k int) error {
	switch m.repMode {
	case SimpleBD:
		m.simpleBD(k)
	case NeighbourBD:
		m.neighbourBD(k)
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRepMode, int(m.repMode))
	}
	return nil
}

// sortAgentsByScore orders the agent list by score descending. Score ties
// break on node id so replacement is deterministic under a fixed seed.
func (m *Model) sortAgentsByScore() {
	sort.Slice(m.agents, func(i, j int) bool {
		si, sj := m.attrs.Score(m.agents[i]), m.attrs.Score(m.agents[j])
		if si != sj {
			return si > sj
		}
		return m.agents[i] < m.agents[j]
	})
}

// simpleBD frees the worst k cells and clones the best k agents onto
// empty cells chosen uniformly at random from the whole graph. The
// newly vacated cells are part of the candidate pool.
func (m *Model) simpleBD(k int) {
	m.sortAgentsByScore()

	last := len(m.agents) - 1
	for i := 0; i < k; i++ {
		m.empty.Add(m.agents[last-i])
	}

	clones := make([]int, 0, k)
	for i := 0; i < k; i++ {
		tgt := m.empty.Random(m.src)
		m.empty.Remove(tgt)
		m.copyAttrs(m.agents[i], tgt)
		clones = append(clones, tgt)
	}

	m.finishReplacement(k, clones)
}

// neighbourBD frees the worst k cells; each of the best k agents then
// places its clone on a uniformly random empty out-neighbour of its own
// cell, falling back to a global random empty cell only when the parent
// has no empty neighbour.
func (m *Model) neighbourBD(k int) {
	m.sortAgentsByScore()

	last := len(m.agents) - 1
	for i := 0; i < k; i++ {
		m.empty.Add(m.agents[last-i])
	}

	free := make([]int, 0, m.graph.Degree())
	clones := make([]int, 0, k)
	for i := 0; i < k; i++ {
		parent := m.agents[i]

		// Vacated cells keep their old attributes until the final
		// clear, so only genuinely empty neighbours qualify here.
		free = free[:0]
		for _, nb := range m.graph.Neighbours(parent) {
			if Strategy(m.attrs.Strategy(nb)) == Empty {
				free = append(free, nb)
			}
		}

		var tgt int
		if len(free) == 0 {
			tgt = m.empty.Random(m.src)
		} else {
			tgt = free[m.src.Uniform(len(free)-1)]
		}

		m.empty.Remove(tgt)
		m.copyAttrs(parent, tgt)
		clones = append(clones, tgt)
	}

	m.finishReplacement(k, clones)
}

// finishReplacement rebuilds the agent list as the untouched survivors
// plus the k clones, dropping exactly the worst k, then clears every cell
// left in the empty set. Population size is preserved: k removed, k
// cloned.
func (m *Model) finishReplacement(k int, clones []int) {
	m.agents = append(m.agents[:len(m.agents)-k], clones...)
	for _, id := range m.empty.IDs() {
		m.clearAttrs(id)
	}
}
