package results

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteRunStore implements RunStore using SQLite for persistence.
type SQLiteRunStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteRunStore creates a RunStore rooted at projectRoot. It creates
// the database at .followflee/followflee.db.
func NewSQLiteRunStore(projectRoot string) (*SQLiteRunStore, error) {
	dataDir := filepath.Join(projectRoot, ".followflee")

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .followflee directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "followflee.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRunStore{db: db}, nil
}

// CreateRun records a new run.
func (s *SQLiteRunStore) CreateRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, topology, nodes, rep_mode, rep_rate, steps_per_gen, seed, generations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Topology, run.Nodes, run.RepMode, run.RepRate,
		run.StepsPerGen, run.Seed, run.Generations, run.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// RecordGeneration appends a generation snapshot to a run.
func (s *SQLiteRunStore) RecordGeneration(ctx context.Context, stats GenerationStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generations (run_id, generation, cooperators, defectors, empty, min_score, max_score, mean_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.RunID, stats.Generation, stats.Cooperators, stats.Defectors,
		stats.Empty, stats.MinScore, stats.MaxScore, stats.MeanScore)
	if err != nil {
		return fmt.Errorf("failed to insert generation: %w", err)
	}
	return nil
}

// FinishRun records the number of generations a run completed.
func (s *SQLiteRunStore) FinishRun(ctx context.Context, id string, generations int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE runs SET generations = ? WHERE id = ?`, generations, id)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteRunStore) GetRun(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, topology, nodes, rep_mode, rep_rate, steps_per_gen, seed, generations, created_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to read run: %w", err)
	}
	return run, nil
}

// ListRuns returns all runs, most recent first.
func (s *SQLiteRunStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topology, nodes, rep_mode, rep_rate, steps_per_gen, seed, generations, created_at
		FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetGenerations returns a run's snapshots in generation order.
func (s *SQLiteRunStore) GetGenerations(ctx context.Context, runID string) ([]GenerationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, generation, cooperators, defectors, empty, min_score, max_score, mean_score
		FROM generations WHERE run_id = ? ORDER BY generation`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	var stats []GenerationStats
	for rows.Next() {
		var g GenerationStats
		if err := rows.Scan(&g.RunID, &g.Generation, &g.Cooperators, &g.Defectors,
			&g.Empty, &g.MinScore, &g.MaxScore, &g.MeanScore); err != nil {
			return nil, fmt.Errorf("failed to read generation: %w", err)
		}
		stats = append(stats, g)
	}
	return stats, rows.Err()
}

// Close closes the database.
func (s *SQLiteRunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt string
	err := row.Scan(&run.ID, &run.Topology, &run.Nodes, &run.RepMode, &run.RepRate,
		&run.StepsPerGen, &run.Seed, &run.Generations, &createdAt)
	if err != nil {
		return Run{}, err
	}
	if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
		run.CreatedAt = t
	}
	return run, nil
}
