package game

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/nvandessel/followflee/internal/graph"
	"github.com/nvandessel/followflee/internal/random"
)

// Params holds the model configuration resolved once before the first
// generation.
type Params struct {
	// RepMode selects the replacement strategy: "simpleBD" or
	// "neighbourBD".
	RepMode string

	// RepRate is the fraction of the population replaced per generation.
	RepRate float64

	// StepsPerGen is the number of scan+move sub-steps each agent takes
	// per generation.
	StepsPerGen int
}

// Model runs the follow/flee algorithm over a host-supplied graph,
// attribute store and random source. It owns the agent list and the
// empty-cell set between BeforeLoop and the last Step; execution is
// single-threaded and each Step computes one full generation.
type Model struct {
	graph graph.Graph
	attrs graph.Attributes
	src   random.Source
	log   *slog.Logger

	repMode     RepMode
	repRate     float64
	stepsPerGen int

	agents     []int
	empty      *CellSet
	horizon    *Horizon
	candidates []int // movement tie-break scratch
	generation int
}

// New validates the configuration and creates a model. A missing or
// out-of-range RepRate or StepsPerGen, or an unrecognized RepMode, fails
// construction; the host aborts without starting generations.
func New(params Params, g graph.Graph, attrs graph.Attributes, src random.Source, log *slog.Logger) (*Model, error) {
	mode, err := ParseRepMode(params.RepMode)
	if err != nil {
		return nil, err
	}
	if params.RepRate < 0 || params.RepRate > 1 {
		return nil, fmt.Errorf("repRate must be in [0,1], got %v", params.RepRate)
	}
	if params.StepsPerGen < 1 {
		return nil, fmt.Errorf("stepsPerGen must be positive, got %d", params.StepsPerGen)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Model{
		graph:       g,
		attrs:       attrs,
		src:         src,
		log:         log,
		repMode:     mode,
		repRate:     params.RepRate,
		stepsPerGen: params.StepsPerGen,
	}, nil
}

// BeforeLoop partitions the node set into agents (strategy > 0) and empty
// cells. It must be called once before the first Step, after the host has
// seeded the initial population.
func (m *Model) BeforeLoop() {
	n := m.graph.Len()
	m.agents = make([]int, 0, n)
	m.empty = NewCellSet(n)

	for _, id := range m.graph.Nodes() {
		if Strategy(m.attrs.Strategy(id)) > Empty {
			m.agents = append(m.agents, id)
		} else {
			m.empty.Add(id)
		}
	}

	m.horizon = NewHorizon(m.graph.Degree())
	m.candidates = make([]int, 0, m.graph.Degree()+1)
	m.generation = 0

	m.log.Debug("population partitioned",
		"agents", len(m.agents), "empty", m.empty.Len())
}

// Step computes one generation and reports whether the simulation should
// continue. The loop never self-terminates; stopping is the scheduler's
// decision. A returned error signals unrecoverable state corruption.
func (m *Model) Step() (bool, error) {
	if len(m.agents) == 0 {
		return true, nil
	}

	// Sort by id before shuffling so that replay with the same seed
	// reproduces identical dynamics regardless of prior ordering drift:
	// the shuffle is the only order-dependent source of nondeterminism.
	sort.Ints(m.agents)
	m.src.Shuffle(len(m.agents), func(i, j int) {
		m.agents[i], m.agents[j] = m.agents[j], m.agents[i]
	})

	for i := range m.agents {
		m.attrs.SetScore(m.agents[i], 0)

		for step := 0; step < m.stepsPerGen; step++ {
			if err := m.scanHorizon(m.agents[i]); err != nil {
				return false, err
			}
			// A move relocates the agent; later sub-steps operate on
			// its new cell.
			if err := m.updatePosition(&m.agents[i]); err != nil {
				return false, err
			}
		}
	}

	replaced := int(math.Floor(float64(len(m.agents)) * m.repRate))
	if replaced > 0 {
		if err := m.replace(replaced); err != nil {
			return false, err
		}
	}

	m.generation++
	m.log.Debug("generation complete",
		"generation", m.generation, "agents", len(m.agents), "replaced", replaced)

	return true, nil
}

// scanHorizon resets the horizon and walks the agent's neighbours once:
// empty neighbours become free cells, occupied neighbours are classified
// and their game payoff added to the agent's score. The agent's own cell
// is always the first free cell.
func (m *Model) scanHorizon(agent int) error {
	h := m.horizon
	h.Reset()
	h.FreeCells = append(h.FreeCells, FreeCell{ID: agent})

	strA := Strategy(m.attrs.Strategy(agent))
	score := m.attrs.Score(agent)

	for _, nb := range m.graph.Neighbours(agent) {
		strB := Strategy(m.attrs.Strategy(nb))
		if strB == Empty {
			h.FreeCells = append(h.FreeCells, FreeCell{ID: nb})
			continue
		}

		p, err := Payoff(strA, strB)
		if err != nil {
			return err
		}
		score += p

		if strB == Cooperator {
			h.Cooperators = append(h.Cooperators, nb)
		} else {
			h.Defectors = append(h.Defectors, nb)
		}
	}

	m.attrs.SetScore(agent, score)
	return nil
}

// copyAttrs clones all attributes from src onto tgt.
func (m *Model) copyAttrs(src, tgt int) {
	m.attrs.SetStrategy(tgt, m.attrs.Strategy(src))
	m.attrs.SetActions(tgt, m.attrs.Actions(src))
	m.attrs.SetScore(tgt, m.attrs.Score(src))
}

// clearAttrs resets a cell to the empty state.
func (m *Model) clearAttrs(id int) {
	m.attrs.SetStrategy(id, int(Empty))
	m.attrs.SetActions(id, 0)
	m.attrs.SetScore(id, 0)
}

// Generation returns the number of completed generations.
func (m *Model) Generation() int { return m.generation }

// Agents returns the current agent cells. The returned slice must not be
// mutated; its order is an implementation detail.
func (m *Model) Agents() []int { return m.agents }

// EmptyCells returns the current empty cells. The returned slice must not
// be mutated.
func (m *Model) EmptyCells() []int { return m.empty.IDs() }

// Census summarizes the population at a generation boundary.
type Census struct {
	Cooperators int
	Defectors   int
	Empty       int
	MinScore    int
	MaxScore    int
	MeanScore   float64
}

// Census computes the current population summary.
func (m *Model) Census() Census {
	c := Census{Empty: m.empty.Len()}
	if len(m.agents) == 0 {
		return c
	}

	c.MinScore = math.MaxInt
	c.MaxScore = math.MinInt
	total := 0
	for _, id := range m.agents {
		if Strategy(m.attrs.Strategy(id)) == Cooperator {
			c.Cooperators++
		} else {
			c.Defectors++
		}
		score := m.attrs.Score(id)
		total += score
		if score < c.MinScore {
			c.MinScore = score
		}
		if score > c.MaxScore {
			c.MaxScore = score
		}
	}
	c.MeanScore = float64(total) / float64(len(m.agents))
	return c
}
