package game

import (
	"fmt"
	"math"
)

// updatePosition decides where the agent moves this sub-step, based on
// the horizon populated by scanHorizon. The agent pointer is updated in
// place when the agent relocates so the caller's agent list stays
// consistent.
func (m *Model) updatePosition(agent *int) error {
	h := m.horizon

	// freeCells counts the agent itself, so it is never empty. Size 1
	// means there is no place to go.
	if len(h.FreeCells) == 1 {
		return nil
	}

	numNeighbours := m.graph.Degree() - (len(h.FreeCells) - 1)

	// No occupied neighbours: move at random, the genome has nothing to
	// say about an empty neighbourhood.
	if numNeighbours == 0 {
		m.move(agent, h.FreeCells[m.src.Uniform(len(h.FreeCells)-1)].ID)
		return nil
	}

	genome := Genome(m.attrs.Actions(*agent))

	switch {
	case numNeighbours == len(h.Cooperators):
		if err := m.evalFreeCells(h.Cooperators, genome.OnlyCooperators()); err != nil {
			return err
		}
	case numNeighbours == len(h.Defectors):
		if err := m.evalFreeCells(h.Defectors, genome.OnlyDefectors()); err != nil {
			return err
		}
	default:
		// Mixed neighbourhood: both sub-policies apply and their
		// scores compound.
		if err := m.evalFreeCells(h.Cooperators, genome.MixedCooperators()); err != nil {
			return err
		}
		if err := m.evalFreeCells(h.Defectors, genome.MixedDefectors()); err != nil {
			return err
		}
	}

	// Pick the free cells with the highest score, tie-broken uniformly.
	highest := math.MinInt
	m.candidates = m.candidates[:0]
	for _, fc := range h.FreeCells {
		switch {
		case fc.Score > highest:
			highest = fc.Score
			m.candidates = m.candidates[:0]
			m.candidates = append(m.candidates, fc.ID)
		case fc.Score == highest:
			m.candidates = append(m.candidates, fc.ID)
		}
	}

	target := m.candidates[0]
	if len(m.candidates) > 1 {
		target = m.candidates[m.src.Uniform(len(m.candidates)-1)]
	}
	m.move(agent, target)
	return nil
}

// evalFreeCells applies one 2-bit sub-policy against a neighbour class,
// mutating the free cells' scores. The guard on the default branch is
// unreachable for a 2-bit value but kept as a corruption tripwire.
func (m *Model) evalFreeCells(class []int, policy Policy) error {
	switch policy {
	case PolicyStay:
		m.stayStill(len(class))
	case PolicyFollow:
		for _, nb := range class {
			m.follow(nb)
		}
	case PolicyFlee:
		for _, nb := range class {
			m.flee(nb)
		}
	case PolicyRandom:
		m.randomize(len(class))
	default:
		return fmt.Errorf("%w: code %d", ErrInvalidPolicy, policy)
	}
	return nil
}

// stayStill subtracts numNeighbours from every free cell except the
// agent's own cell (index 0), biasing toward staying put.
func (m *Model) stayStill(numNeighbours int) {
	fcs := m.horizon.FreeCells
	for i := 1; i < len(fcs); i++ {
		fcs[i].Score -= numNeighbours
	}
}

// follow adds one to every free cell that is itself a neighbour of the
// given node.
func (m *Model) follow(neighbour int) {
	fcs := m.horizon.FreeCells
	for i := range fcs {
		for _, n := range m.graph.Neighbours(neighbour) {
			if fcs[i].ID == n {
				fcs[i].Score++
				break
			}
		}
	}
}

// flee adds one to every free cell that is NOT a neighbour of the given
// node.
func (m *Model) flee(neighbour int) {
	fcs := m.horizon.FreeCells
	for i := range fcs {
		intersects := false
		for _, n := range m.graph.Neighbours(neighbour) {
			if fcs[i].ID == n {
				intersects = true
				break
			}
		}
		if !intersects {
			fcs[i].Score++
		}
	}
}

// randomize perturbs every free cell's score by an independent uniform
// draw in [-numNeighbours, numNeighbours].
func (m *Model) randomize(numNeighbours int) {
	fcs := m.horizon.FreeCells
	for i := range fcs {
		fcs[i].Score += m.src.UniformRange(numNeighbours)
	}
}

// move relocates the agent to targetID: the agent's attributes are cloned
// onto the target cell, the former cell becomes empty, and the agent
// pointer is updated. Moving onto the current cell is a no-op.
func (m *Model) move(agent *int, targetID int) {
	if *agent == targetID {
		return
	}
	m.empty.Remove(targetID)
	m.copyAttrs(*agent, targetID)
	m.clearAttrs(*agent)
	m.empty.Add(*agent)
	*agent = targetID
}
