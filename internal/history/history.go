// Package history persists a run journal in SQLite: one row per pipeline
// invocation plus one row per processed file, so past runs can be reviewed
// from the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"chaptersaw/internal/media"
)

// Run summarizes one pipeline invocation.
type Run struct {
	ID          int64
	StartedAt   time.Time
	FinishedAt  time.Time
	Mode        string
	Filter      string
	Output      string
	FilesTotal  int
	FilesFailed int
}

// FileRecord is the journaled outcome for one input file of a run.
type FileRecord struct {
	RunID             int64
	SourceFile        string
	OutputFile        string
	ChaptersFound     int
	ChaptersMatched   int
	ChaptersExtracted int
	Success           bool
	ErrorMessage      string
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    mode TEXT NOT NULL,
    filter TEXT NOT NULL,
    output TEXT NOT NULL DEFAULT '',
    files_total INTEGER NOT NULL,
    files_failed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_files (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source_file TEXT NOT NULL,
    output_file TEXT NOT NULL DEFAULT '',
    chapters_found INTEGER NOT NULL,
    chapters_matched INTEGER NOT NULL,
    chapters_extracted INTEGER NOT NULL,
    success INTEGER NOT NULL,
    error_message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init history schema: %w", err)
	}
	return nil
}

// RecordRun journals a completed invocation and its per-file outcomes in one
// transaction, returning the new run id.
func (s *Store) RecordRun(ctx context.Context, run Run, results []*media.ExtractionResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	failed := 0
	for _, result := range results {
		if !result.Success {
			failed++
		}
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO runs (started_at, finished_at, mode, filter, output, files_total, files_failed)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.Mode, run.Filter, run.Output, len(results), failed)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read run id: %w", err)
	}

	for _, result := range results {
		success := 0
		if result.Success {
			success = 1
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO run_files (run_id, source_file, output_file, chapters_found, chapters_matched, chapters_extracted, success, error_message)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, result.SourceFile, result.OutputFile,
			result.ChaptersFound, result.ChaptersMatched, len(result.ChaptersExtracted),
			success, result.ErrorMessage); err != nil {
			return 0, fmt.Errorf("insert run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit history transaction: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, finished_at, mode, filter, output, files_total, files_failed
FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.Mode, &run.Filter,
			&run.Output, &run.FilesTotal, &run.FilesFailed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunFiles returns the per-file records of one run in insertion order.
func (s *Store) RunFiles(ctx context.Context, runID int64) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, source_file, output_file, chapters_found, chapters_matched, chapters_extracted, success, error_message
FROM run_files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var record FileRecord
		var success int
		if err := rows.Scan(&record.RunID, &record.SourceFile, &record.OutputFile,
			&record.ChaptersFound, &record.ChaptersMatched, &record.ChaptersExtracted,
			&success, &record.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		record.Success = success != 0
		records = append(records, record)
	}
	return records, rows.Err()
}
