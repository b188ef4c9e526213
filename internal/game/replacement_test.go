package game

import (
	"sort"
	"testing"
)

func TestParseRepMode(t *testing.T) {
	if mode, err := ParseRepMode("simpleBD"); err != nil || mode != SimpleBD {
		t.Errorf("ParseRepMode(simpleBD) = %v, %v", mode, err)
	}
	if mode, err := ParseRepMode("neighbourBD"); err != nil || mode != NeighbourBD {
		t.Errorf("ParseRepMode(neighbourBD) = %v, %v", mode, err)
	}
	if _, err := ParseRepMode("moran"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSimpleBD_WorstCulledBestCloned(t *testing.T) {
	// Four agents scored [10, 8, 6, 4]: replacing half the population
	// must vacate exactly the 6 and 4 scorers and clone the 10 and 8
	// scorers, keeping the population at four.
	m, attrs := ringModel(t, 8, defaultParams(), 3)
	for id := 0; id < 4; id++ {
		place(attrs, id, Cooperator, Genome(0x10+id))
	}
	m.BeforeLoop()
	for id, score := range map[int]int{0: 10, 1: 8, 2: 6, 3: 4} {
		attrs.SetScore(id, score)
	}

	if err := m.replace(2); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if got := len(m.Agents()); got != 4 {
		t.Fatalf("population size %d, want 4", got)
	}

	scores := make([]int, 0, 4)
	for _, id := range m.Agents() {
		scores = append(scores, attrs.Score(id))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))
	want := []int{10, 10, 8, 8}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("agent scores %v, want %v (worst culled, best cloned)", scores, want)
		}
	}

	// The originals used as clone sources survive in place.
	if attrs.Score(0) != 10 || attrs.Score(1) != 8 {
		t.Error("clone sources must not be removed")
	}
	checkPartition(t, m)
}

func TestSimpleBD_ClonesInheritGenome(t *testing.T) {
	m, attrs := ringModel(t, 6, defaultParams(), 11)
	place(attrs, 0, Defector, 0xAB)
	place(attrs, 3, Cooperator, 0x01)
	m.BeforeLoop()
	attrs.SetScore(0, 9)
	attrs.SetScore(3, 1)

	if err := m.replace(1); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// The clone of the best agent carries its genome and strategy.
	found := false
	for _, id := range m.Agents() {
		if id == 0 {
			continue
		}
		if attrs.Actions(id) == 0xAB && Strategy(attrs.Strategy(id)) == Defector {
			found = true
		}
	}
	if !found {
		t.Error("expected a clone of the best agent with genome 0xAB")
	}
}

func TestNeighbourBD_PrefersParentNeighbourhood(t *testing.T) {
	// The parent at node 0 has both ring neighbours (5 and 1) empty, so
	// its clone must land on one of them, never on a distant cell.
	for seed := uint64(0); seed < 50; seed++ {
		m, attrs := ringModel(t, 6, defaultParams(), seed)
		place(attrs, 0, Cooperator, 0x42)
		place(attrs, 3, Defector, 0x00)
		m.BeforeLoop()
		attrs.SetScore(0, 10)
		attrs.SetScore(3, 1)

		m.neighbourBD(1)

		cloneAt := -1
		for _, id := range m.Agents() {
			if id != 0 {
				cloneAt = id
			}
		}
		if cloneAt != 1 && cloneAt != 5 {
			t.Fatalf("seed %d: clone landed at %d, want a neighbour of the parent (1 or 5)", seed, cloneAt)
		}
		if Strategy(attrs.Strategy(3)) != Empty {
			t.Error("worst agent's cell was not vacated")
		}
		checkPartition(t, m)
	}
}

func TestNeighbourBD_FallbackWhenNoEmptyNeighbour(t *testing.T) {
	// A saturated 4-ring: after vacating the worst agent, its cell still
	// carries the old attributes, so the parent sees no empty neighbour
	// and falls back to the global empty pool, which holds exactly the
	// vacated cell.
	m, attrs := ringModel(t, 4, defaultParams(), 17)
	for id := 0; id < 4; id++ {
		place(attrs, id, Cooperator, Genome(id))
	}
	m.BeforeLoop()
	for id, score := range map[int]int{0: 10, 1: 8, 2: 6, 3: 4} {
		attrs.SetScore(id, score)
	}

	m.neighbourBD(1)

	if got := len(m.Agents()); got != 4 {
		t.Fatalf("population size %d, want 4", got)
	}
	// Cell 3 is re-occupied by the clone of the best agent (node 0).
	if attrs.Score(3) != 10 || attrs.Actions(3) != 0 {
		t.Errorf("cell 3 holds score=%d genome=%#x, want the best agent's clone (10, 0x0)",
			attrs.Score(3), attrs.Actions(3))
	}
	checkPartition(t, m)
}

func TestReplacement_PopulationSizePreservedForAnyK(t *testing.T) {
	for _, mode := range []RepMode{SimpleBD, NeighbourBD} {
		for k := 1; k <= 6; k++ {
			m, attrs := ringModel(t, 12, Params{RepMode: mode.String(), RepRate: 0, StepsPerGen: 1}, uint64(k))
			for id := 0; id < 6; id++ {
				place(attrs, id*2, Cooperator, Genome(id))
			}
			m.BeforeLoop()
			for id := 0; id < 6; id++ {
				attrs.SetScore(id*2, 6-id)
			}

			if err := m.replace(k); err != nil {
				t.Fatalf("%v replace(%d): %v", mode, k, err)
			}
			if got := len(m.Agents()); got != 6 {
				t.Errorf("%v replace(%d): population %d, want 6", mode, k, got)
			}
			checkPartition(t, m)
		}
	}
}

func TestReplacement_VacatedCellsAreCleared(t *testing.T) {
	m, attrs := ringModel(t, 8, defaultParams(), 23)
	place(attrs, 0, Cooperator, 0x11)
	place(attrs, 4, Defector, 0x22)
	m.BeforeLoop()
	attrs.SetScore(0, 5)
	attrs.SetScore(4, 1)

	m.simpleBD(1)

	// Every cell in the empty set must be fully zeroed.
	for _, id := range m.EmptyCells() {
		if attrs.Strategy(id) != 0 || attrs.Actions(id) != 0 || attrs.Score(id) != 0 {
			t.Errorf("empty cell %d not cleared: strategy=%d actions=%#x score=%d",
				id, attrs.Strategy(id), attrs.Actions(id), attrs.Score(id))
		}
	}
}
