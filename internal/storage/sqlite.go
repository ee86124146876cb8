// Package storage provides SQLite-based run history for blocky.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run statuses.
const (
	StatusSolved     = "solved"     // solver found an optimal solution
	StatusUnsolvable = "unsolvable" // solver proved there is none
	StatusFailed     = "failed"     // solver or generator gave up with an error
	StatusGenerated  = "generated"  // generator produced the level
	StatusWon        = "won"        // a replayed move list beat the level
	StatusLost       = "lost"       // a replayed move list did not
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded solve, verify, generate or replay of a level.
type Run struct {
	ID         string
	Set        string // level set name, "generated" for generator output
	LevelID    int
	Status     string
	Moves      int    // solution or replay length
	Solution   string // compact move string, e.g. "RDLU"
	Nodes      int    // configurations the solver explored
	DurationMs int64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			set_name TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			status TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			solution TEXT NOT NULL DEFAULT '',
			nodes INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(set_name, level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
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

// SaveRun records a run. A run without an ID gets a new random one.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, set_name, level_id, status, moves, solution, nodes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Set, r.LevelID, r.Status, r.Moves, r.Solution, r.Nodes, r.DurationMs,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r.ID, nil
}

const runColumns = `id, set_name, level_id, status, moves, solution, nodes, duration_ms, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY seq DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// LevelRuns retrieves the most recent runs of one level, newest first.
func (s *Store) LevelRuns(set string, levelID int, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE set_name = ? AND level_id = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		set, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level runs: %w", err)
	}
	return scanRuns(rows)
}

// BestRun returns the shortest solved or won run of a level.
// Returns nil if the level has none.
func (s *Store) BestRun(set string, levelID int) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE set_name = ? AND level_id = ? AND status IN (?, ?)
		 ORDER BY moves ASC, seq ASC
		 LIMIT 1`,
		set, levelID, StatusSolved, StatusWon,
	)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return &r, nil
}

// ClearRuns deletes all runs of the given set.
func (s *Store) ClearRuns(set string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE set_name = ?", set)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SetStats contains aggregated statistics for a level set.
type SetStats struct {
	Set        string
	Runs       int
	Solved     int
	Unsolvable int
	AvgMs      float64
	LastRun    time.Time
}

// GetSetStats retrieves aggregated statistics for every set with runs.
func (s *Store) GetSetStats() (map[string]*SetStats, error) {
	rows, err := s.db.Query(
		`SELECT set_name, COUNT(*),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(duration_ms), 0), MAX(created_at)
		 FROM runs
		 GROUP BY set_name`,
		StatusSolved, StatusUnsolvable,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get set stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SetStats)
	for rows.Next() {
		var st SetStats
		var lastRun any
		if err := rows.Scan(&st.Set, &st.Runs, &st.Solved, &st.Unsolvable, &st.AvgMs, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.Set] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.Set,
		&r.LevelID,
		&r.Status,
		&r.Moves,
		&r.Solution,
		&r.Nodes,
		&r.DurationMs,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles the datetime as either time.Time or string.
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
