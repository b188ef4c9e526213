package results

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the SQLite results store.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    topology TEXT NOT NULL,
    nodes INTEGER NOT NULL,
    rep_mode TEXT NOT NULL,
    rep_rate REAL NOT NULL,
    steps_per_gen INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    generations INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS generations (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    generation INTEGER NOT NULL,
    cooperators INTEGER NOT NULL,
    defectors INTEGER NOT NULL,
    empty INTEGER NOT NULL,
    min_score INTEGER NOT NULL,
    max_score INTEGER NOT NULL,
    mean_score REAL NOT NULL,
    PRIMARY KEY (run_id, generation)
);
CREATE INDEX IF NOT EXISTS idx_generations_run ON generations(run_id);

CREATE TABLE IF NOT EXISTS schema_meta (
    version INTEGER PRIMARY KEY
);
`

// InitSchema creates the schema if it does not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var version int
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_meta LIMIT 1`).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_meta (version) VALUES (?)`, SchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version > SchemaVersion:
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	return nil
}
