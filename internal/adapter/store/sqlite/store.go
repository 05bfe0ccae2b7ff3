// Package sqlite persists filter-run history in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/daipham1210/lintsift/internal/domain"
)

// Store implements the run-history store backed by SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a store at the given path. Use ":memory:" for an
// in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	-- One row per filter invocation
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		repository TEXT NOT NULL,
		branch TEXT,
		commit_hash TEXT,
		files_changed INTEGER NOT NULL,
		lines_staged INTEGER NOT NULL,
		lines_read INTEGER NOT NULL,
		lines_kept INTEGER NOT NULL
	);

	-- Log lines that survived filtering, in original order
	CREATE TABLE IF NOT EXISTS kept_lines (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		line TEXT NOT NULL,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// SaveRun stores a run and its kept lines in one transaction.
func (s *Store) SaveRun(ctx context.Context, run domain.Run, kept []domain.KeptLine) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, timestamp, repository, branch, commit_hash,
			files_changed, lines_staged, lines_read, lines_kept)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Timestamp.Unix(), run.Repository, run.Branch, run.CommitHash,
		run.FilesChanged, run.LinesStaged, run.LinesRead, run.LinesKept,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, line := range kept {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kept_lines (run_id, position, line) VALUES (?, ?, ?)`,
			line.RunID, line.Position, line.Text,
		)
		if err != nil {
			return fmt.Errorf("insert kept line %d: %w", line.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, timestamp, repository, branch, commit_hash,
			files_changed, lines_staged, lines_read, lines_kept
		FROM runs ORDER BY timestamp DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var run domain.Run
		var ts int64
		if err := rows.Scan(&run.ID, &ts, &run.Repository, &run.Branch, &run.CommitHash,
			&run.FilesChanged, &run.LinesStaged, &run.LinesRead, &run.LinesKept); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp = time.Unix(ts, 0).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// KeptLines returns the lines a run kept, in original log order.
func (s *Store) KeptLines(ctx context.Context, runID string) ([]domain.KeptLine, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, position, line FROM kept_lines
		WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query kept lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.KeptLine
	for rows.Next() {
		var line domain.KeptLine
		if err := rows.Scan(&line.RunID, &line.Position, &line.Text); err != nil {
			return nil, fmt.Errorf("scan kept line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kept lines: %w", err)
	}
	return lines, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
