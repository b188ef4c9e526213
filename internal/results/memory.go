package results

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// InMemoryRunStore implements RunStore with in-memory maps. Useful for
// tests and throwaway runs.
type InMemoryRunStore struct {
	mu          sync.RWMutex
	runs        map[string]Run
	generations map[string][]GenerationStats
}

// NewInMemoryRunStore creates an empty in-memory store.
func NewInMemoryRunStore() *InMemoryRunStore {
	return &InMemoryRunStore{
		runs:        make(map[string]Run),
		generations: make(map[string][]GenerationStats),
	}
}

// CreateRun records a new run.
func (s *InMemoryRunStore) CreateRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run already exists: %s", run.ID)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	s.runs[run.ID] = run
	return nil
}

// RecordGeneration appends a generation snapshot to a run.
func (s *InMemoryRunStore) RecordGeneration(ctx context.Context, stats GenerationStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generations[stats.RunID] = append(s.generations[stats.RunID], stats)
	return nil
}

// FinishRun records the number of generations a run completed.
func (s *InMemoryRunStore) FinishRun(ctx context.Context, id string, generations int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, exists := s.runs[id]
	if !exists {
		return fmt.Errorf("run not found: %s", id)
	}
	run.Generations = generations
	s.runs[id] = run
	return nil
}

// GetRun retrieves a run by ID.
func (s *InMemoryRunStore) GetRun(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return Run{}, fmt.Errorf("run not found: %s", id)
	}
	return run, nil
}

// ListRuns returns all runs, most recent first.
func (s *InMemoryRunStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	return runs, nil
}

// GetGenerations returns a run's snapshots in generation order.
func (s *InMemoryRunStore) GetGenerations(ctx context.Context, runID string) ([]GenerationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make([]GenerationStats, len(s.generations[runID]))
	copy(stats, s.generations[runID])
	sort.Slice(stats, func(i, j int) bool { return stats[i].Generation < stats[j].Generation })
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryRunStore) Close() error {
	return nil
}
