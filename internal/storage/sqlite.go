// Package storage provides SQLite-based persistence for rollout summaries.
// Only aggregates are stored, one row per rollout run.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one stored rollout summary.
type RunRecord struct {
	ID         int64
	EnvID      string
	Policy     string
	GridSize   int
	Episodes   int
	Successes  int
	TotalSteps int
	DurationMs int64
	Cancelled  bool
	CreatedAt  time.Time
}

// SuccessRate is the fraction of episodes that reached the target.
func (r RunRecord) SuccessRate() float64 {
	if r.Episodes == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Episodes)
}

// MeanSteps is the average episode length.
func (r RunRecord) MeanSteps() float64 {
	if r.Episodes == 0 {
		return 0
	}
	return float64(r.TotalSteps) / float64(r.Episodes)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// dbPath is used as is; expand ~ with config.ExpandHome first.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			env_id TEXT NOT NULL,
			policy TEXT NOT NULL,
			grid_size INTEGER NOT NULL,
			episodes INTEGER NOT NULL,
			successes INTEGER NOT NULL,
			total_steps INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			cancelled INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_env_id ON runs(env_id);
		CREATE INDEX IF NOT EXISTS idx_runs_policy ON runs(env_id, policy);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a rollout summary.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (env_id, policy, grid_size, episodes, successes, total_steps, duration_ms, cancelled)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.EnvID, r.Policy, r.GridSize, r.Episodes, r.Successes, r.TotalSteps, r.DurationMs, r.Cancelled,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest runs, newest first. An empty envID
// matches every environment.
func (s *Store) RecentRuns(envID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, env_id, policy, grid_size, episodes, successes, total_steps,
		        duration_ms, cancelled, created_at
		 FROM runs
		 WHERE ? = '' OR env_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		envID, envID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.EnvID, &r.Policy, &r.GridSize, &r.Episodes, &r.Successes,
			&r.TotalSteps, &r.DurationMs, &r.Cancelled, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// BestSuccessRate returns the highest success rate recorded for a policy on
// an environment. Returns 0 if no runs exist.
func (s *Store) BestSuccessRate(envID, policy string) (float64, error) {
	var rate sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT MAX(CAST(successes AS REAL) / episodes)
		 FROM runs
		 WHERE env_id = ? AND policy = ? AND episodes > 0`,
		envID, policy,
	).Scan(&rate)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best success rate: %w", err)
	}

	if !rate.Valid {
		return 0, nil
	}
	return rate.Float64, nil
}

// ClearRuns deletes all runs for the given environment.
func (s *Store) ClearRuns(envID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE env_id = ?", envID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
