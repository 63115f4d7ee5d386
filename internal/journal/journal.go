// Package journal keeps a sqlite history of translate and repair runs. It
// records what each run did, never the translations themselves.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		api_calls INTEGER NOT NULL DEFAULT 0,
		keys_updated INTEGER NOT NULL DEFAULT 0,
		keys_failed INTEGER NOT NULL DEFAULT 0,
		files_written INTEGER NOT NULL DEFAULT 0,
		dry_run INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at)`,
}

// Run is one journal row
type Run struct {
	ID           string
	Action       string
	Source       string
	Target       string
	StartedAt    time.Time
	FinishedAt   time.Time
	APICalls     int
	KeysUpdated  int
	KeysFailed   int
	FilesWritten int
	DryRun       bool
	Error        string
}

// NewRun starts a run record with a fresh id
func NewRun(action, source, target string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Action:    action,
		Source:    source,
		Target:    target,
		StartedAt: time.Now(),
	}
}

// Duration returns how long the run took
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Journal is an open history database
type Journal struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.local/state/langsync/history.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "langsync", "history.db"), nil
}

// Open opens or creates the journal at path
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialise journal: %w", err)
		}
	}

	return &Journal{db: db, path: path}, nil
}

// Path returns the database location
func (j *Journal) Path() string {
	return j.path
}

// Close closes the database
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores a finished run. A run without id gets one assigned.
func (j *Journal) Record(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx, `INSERT INTO runs (
		id, action, source, target, started_at, finished_at,
		api_calls, keys_updated, keys_failed, files_written, dry_run, error
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Action, r.Source, r.Target,
		r.StartedAt.UnixMilli(), r.FinishedAt.UnixMilli(),
		r.APICalls, r.KeysUpdated, r.KeysFailed, r.FilesWritten, r.DryRun, r.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", r.ID, err)
	}
	return nil
}

// List returns up to limit runs, most recent first. A limit of zero or
// less returns every run.
func (j *Journal) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, action, source, target, started_at, finished_at,
		api_calls, keys_updated, keys_failed, files_written, dry_run, error
		FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished int64
		)
		if err := rows.Scan(&r.ID, &r.Action, &r.Source, &r.Target, &started, &finished,
			&r.APICalls, &r.KeysUpdated, &r.KeysFailed, &r.FilesWritten, &r.DryRun, &r.Error); err != nil {
			return nil, fmt.Errorf("failed to read journal row: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		r.FinishedAt = time.UnixMilli(finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
