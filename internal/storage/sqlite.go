// Package storage provides the SQLite replay journal.
// Every game records its settings, seed and the directions consumed per tick,
// which is enough to re-simulate it exactly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrRunNotFound is returned when no run matches an ID or ID prefix.
var ErrRunNotFound = errors.New("storage: run not found")

// OutcomeQuit marks a run the player abandoned before game over.
const OutcomeQuit = "quit"

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Run is one recorded game.
type Run struct {
	ID        string
	Variant   string
	Game      snake.Config
	Interval  time.Duration
	Score     int
	Ticks     uint64
	Outcome   string // Empty while in progress
	CreatedAt time.Time
}

// Finished reports whether the run reached game over.
func (r Run) Finished() bool {
	return r.Outcome != "" && r.Outcome != OutcomeQuit
}

// ShortID returns the first block of the run ID.
func (r Run) ShortID() string {
	if i := strings.IndexByte(r.ID, '-'); i > 0 {
		return r.ID[:i]
	}
	return r.ID
}

// Input is a direction consumed on a given tick.
type Input struct {
	Tick      uint64
	Direction snake.Direction
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
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			boundary TEXT NOT NULL,
			start_length INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			interval_ms INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_inputs (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			direction INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
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

// BeginRun inserts an in-progress run and returns its new ID.
func (s *Store) BeginRun(variant string, cfg snake.Config, interval time.Duration) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, variant, width, height, boundary, start_length, seed, interval_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, variant, cfg.Width, cfg.Height, cfg.Boundary.String(), cfg.StartLength, cfg.Seed,
		interval.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin run: %w", err)
	}
	return id, nil
}

// FinishRun stores the inputs and final result of a run in one transaction.
func (s *Store) FinishRun(id string, inputs []Input, score int, ticks uint64, outcome string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE runs SET score = ?, ticks = ?, outcome = ? WHERE id = ?`,
		score, ticks, outcome, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO run_inputs (run_id, tick, direction) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for _, in := range inputs {
		if _, err := stmt.Exec(id, in.Tick, int(in.Direction)); err != nil {
			return fmt.Errorf("storage: cannot save input for tick %d: %w", in.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return nil
}

const runColumns = `id, variant, width, height, boundary, start_length, seed, interval_ms,
		score, ticks, outcome, created_at`

// Run retrieves a run by full ID or unique ID prefix.
func (s *Store) Run(idOrPrefix string) (Run, error) {
	if idOrPrefix == "" {
		return Run{}, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' LIMIT 2`,
		idOrPrefix, escapeLike(idOrPrefix)+"%",
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return Run{}, err
	}

	switch len(runs) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case 1:
		return runs[0], nil
	}
	for _, r := range runs {
		if r.ID == idOrPrefix {
			return r, nil
		}
	}
	return Run{}, fmt.Errorf("storage: id prefix %q is ambiguous", idOrPrefix)
}

// Inputs returns the recorded directions of a run ordered by tick.
func (s *Store) Inputs(runID string) ([]Input, error) {
	rows, err := s.db.Query(
		`SELECT tick, direction FROM run_inputs WHERE run_id = ? ORDER BY tick`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []Input
	for rows.Next() {
		var in Input
		var dir int
		if err := rows.Scan(&in.Tick, &dir); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		in.Direction = snake.Direction(dir)
		if !in.Direction.Valid() {
			return nil, fmt.Errorf("storage: run %s has invalid direction %d at tick %d", runID, dir, in.Tick)
		}
		inputs = append(inputs, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return inputs, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// DeleteRun removes a run and its inputs.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	// Foreign keys are per connection; clear inputs explicitly as well.
	if _, err := s.db.Exec("DELETE FROM run_inputs WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var boundary string
		var intervalMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Variant,
			&r.Game.Width,
			&r.Game.Height,
			&boundary,
			&r.Game.StartLength,
			&r.Game.Seed,
			&intervalMS,
			&r.Score,
			&r.Ticks,
			&r.Outcome,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		b, err := snake.ParseBoundary(boundary)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s: %w", r.ID, err)
		}
		r.Game.Boundary = b
		r.Interval = time.Duration(intervalMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string datetimes.
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

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
