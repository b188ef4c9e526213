package game

import (
	"testing"

	"github.com/nvandessel/followflee/internal/random"
)

func TestCellSet_AddRemove(t *testing.T) {
	s := NewCellSet(4)

	s.Add(3)
	s.Add(7)
	s.Add(3) // duplicate is a no-op

	if s.Len() != 2 {
		t.Fatalf("expected 2 cells, got %d", s.Len())
	}
	if !s.Contains(3) || !s.Contains(7) {
		t.Error("expected set to contain 3 and 7")
	}

	s.Remove(3)
	if s.Contains(3) {
		t.Error("expected 3 to be removed")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 cell, got %d", s.Len())
	}

	s.Remove(99) // absent id is a no-op
	if s.Len() != 1 {
		t.Errorf("expected 1 cell after removing absent id, got %d", s.Len())
	}
}

func TestCellSet_SwapDeleteKeepsIndexConsistent(t *testing.T) {
	s := NewCellSet(8)
	for i := 0; i < 8; i++ {
		s.Add(i)
	}

	// Remove from the middle repeatedly; every surviving id must stay
	// reachable.
	for _, id := range []int{2, 0, 5, 7} {
		s.Remove(id)
	}
	for _, id := range []int{1, 3, 4, 6} {
		if !s.Contains(id) {
			t.Errorf("expected %d to survive, set = %v", id, s.IDs())
		}
	}
	if s.Len() != 4 {
		t.Errorf("expected 4 cells, got %d", s.Len())
	}
}

func TestCellSet_RandomIsUniform(t *testing.T) {
	s := NewCellSet(3)
	s.Add(10)
	s.Add(20)
	s.Add(30)

	src := random.NewPCG(5)
	counts := make(map[int]int)
	const trials = 3000
	for i := 0; i < trials; i++ {
		counts[s.Random(src)]++
	}

	for _, id := range []int{10, 20, 30} {
		frac := float64(counts[id]) / trials
		if frac < 0.25 || frac > 0.42 {
			t.Errorf("cell %d selected with frequency %.3f, want ~0.333", id, frac)
		}
	}
}
