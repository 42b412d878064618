// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a SQLite ledger of conversion results. An
// interrupted run can leave both a converted file and its original on disk;
// the ledger says which pairs to reconcile.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ts2js/pkg/types"
)

const defaultLimit = 50

// Entry is one recorded conversion result.
type Entry struct {
	ID         int64                  `json:"id" yaml:"id"`
	RunID      string                 `json:"run_id" yaml:"run_id"`
	Status     types.ConversionStatus `json:"status" yaml:"status"`
	InputPath  string                 `json:"input_path" yaml:"input_path"`
	OutputPath string                 `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Error      string                 `json:"error,omitempty" yaml:"error,omitempty"`
	RecordedAt time.Time              `json:"recorded_at" yaml:"recorded_at"`
}

// Query filters journal entries.
type Query struct {
	// RunID restricts entries to one run.
	RunID string

	// Status restricts entries to one outcome.
	Status types.ConversionStatus

	// Limit caps the number of entries (default 50, negative for all).
	Limit int
}

// Journal records conversion results for one run.
type Journal struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

// Open opens or creates the journal database at path. Every result recorded
// through the returned Journal is tagged with a fresh run ID.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	// Conversions may record from several goroutines; serialize writers.
	db.SetMaxOpenConns(1)

	j := &Journal{db: db, runID: uuid.NewString(), now: time.Now}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// RunID returns the identifier attached to results recorded by j.
func (j *Journal) RunID() string {
	return j.runID
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			status TEXT NOT NULL,
			input_path TEXT NOT NULL,
			output_path TEXT,
			error TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores r. It satisfies convert.Recorder.
func (j *Journal) Record(ctx context.Context, r types.ConversionResult) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO conversions (run_id, status, input_path, output_path, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		j.runID, string(r.Status), r.InputPath, r.OutputPath, r.ErrorMessage(),
		j.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", r.InputPath, err)
	}
	return nil
}

// Entries returns matching entries, newest first.
func (j *Journal) Entries(ctx context.Context, q Query) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if q.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, q.RunID)
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(q.Status))
	}
	limit := q.Limit
	switch {
	case limit == 0:
		limit = defaultLimit
	case limit < 0:
		limit = -1
	}

	query := `SELECT id, run_id, status, input_path, COALESCE(output_path, ''), COALESCE(error, ''), recorded_at
		FROM conversions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			status string
			ts     string
		)
		if err := rows.Scan(&e.ID, &e.RunID, &status, &e.InputPath, &e.OutputPath, &e.Error, &ts); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.Status = types.ConversionStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Orphans returns failed entries whose output was written but whose original
// could not be removed, so both files are on disk.
func (j *Journal) Orphans(ctx context.Context) ([]Entry, error) {
	entries, err := j.Entries(ctx, Query{Status: types.ConversionFailed, Limit: -1})
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range entries {
		if e.OutputPath != "" {
			out = append(out, e)
		}
	}
	return out, nil
}
