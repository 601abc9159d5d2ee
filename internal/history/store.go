package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"bindery/internal/config"
)

// Store manages boot history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database in the log directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
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

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
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

// BeginRun records the start of an orchestration run.
func (s *Store) BeginRun(ctx context.Context, runID string, total, pending int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, status, books_total, books_pending)
         VALUES (?, ?, ?, ?, ?)`,
		runID, now, RunStatusRunning, total, pending,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordInvocation appends one processor execution to the run.
func (s *Store) RecordInvocation(ctx context.Context, inv Invocation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (run_id, book, artifact_path, started_at, duration_ms, exit_ok, error)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.RunID,
		inv.Book,
		inv.ArtifactPath,
		inv.StartedAt.UTC().Format(time.RFC3339Nano),
		inv.Duration.Milliseconds(),
		boolToInt(inv.Succeeded),
		nullableString(inv.Error),
	)
	if err != nil {
		return fmt.Errorf("insert invocation: %w", err)
	}
	return nil
}

// FinishRun closes out a run with its terminal status and counters.
func (s *Store) FinishRun(ctx context.Context, runID string, status RunStatus, processed, failed int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, books_processed = ?, books_failed = ?
         WHERE run_id = ?`,
		now, status, processed, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %q not found", runID)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, started_at, finished_at, status,
                books_total, books_pending, books_processed, books_failed
         FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			finishedAt sql.NullString
			status     string
		)
		if err := rows.Scan(&run.ID, &run.RunID, &startedAt, &finishedAt, &status,
			&run.BooksTotal, &run.BooksPending, &run.BooksProcessed, &run.BooksFailed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Status = RunStatus(status)
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if finishedAt.Valid {
			parsed, err := time.Parse(time.RFC3339Nano, finishedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parse finished_at: %w", err)
			}
			run.FinishedAt = &parsed
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListInvocations returns the invocations belonging to a run in execution order.
func (s *Store) ListInvocations(ctx context.Context, runID string) ([]Invocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, book, artifact_path, started_at, duration_ms, exit_ok, error
         FROM invocations WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var invocations []Invocation
	for rows.Next() {
		var (
			inv        Invocation
			startedAt  string
			durationMS int64
			exitOK     int
			errText    sql.NullString
		)
		if err := rows.Scan(&inv.ID, &inv.RunID, &inv.Book, &inv.ArtifactPath,
			&startedAt, &durationMS, &exitOK, &errText); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		if inv.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		inv.Succeeded = exitOK == 1
		if errText.Valid {
			inv.Error = errText.String
		}
		invocations = append(invocations, inv)
	}
	return invocations, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
