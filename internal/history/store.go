// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of pipeline runs and the outcome of
// every image in them.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quizdoc/pkg/types"
)

// ErrRunNotFound is returned by Run for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// RunSummary is one row of ListRuns.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Document   string
	Formatted  int
	Failed     int
}

// NewStore opens or creates the database at cfg.Path and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = types.DefaultHistoryPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			document TEXT,
			formatted INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS image_results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			error_kind TEXT,
			retryable INTEGER NOT NULL DEFAULT 0,
			ocr_text TEXT,
			block TEXT,
			final_text TEXT,
			records TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a finished run and its per-image results in one transaction.
func (s *Store) Record(ctx context.Context, report *types.RunReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, document, formatted, failed) VALUES (?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Document,
		report.Formatted(),
		report.Failed(),
	); err != nil {
		return fmt.Errorf("inserting run %s: %w", report.ID, err)
	}

	for i, res := range report.Results {
		records, err := json.Marshal(res.Records)
		if err != nil {
			return fmt.Errorf("encoding records for %s: %w", res.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO image_results
				(run_id, position, name, status, error, error_kind, retryable, ocr_text, block, final_text, records)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.ID, i, res.Name, string(res.Status), res.Error, string(res.ErrorKind),
			res.Retryable, res.OCRText, res.Block, res.FinalText, string(records),
		); err != nil {
			return fmt.Errorf("inserting result %s: %w", res.Name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first. limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT id, started_at, finished_at, document, formatted, failed FROM runs ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started, finished string
		var document sql.NullString
		if err := rows.Scan(&r.ID, &started, &finished, &document, &r.Formatted, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		r.Document = document.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Run loads a full report by ID.
func (s *Store) Run(ctx context.Context, id string) (*types.RunReport, error) {
	var started, finished string
	var document sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at, finished_at, document FROM runs WHERE id = ?`, id,
	).Scan(&started, &finished, &document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}

	report := &types.RunReport{ID: id, Document: document.String}
	report.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	report.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, status, error, error_kind, retryable, ocr_text, block, final_text, records
		FROM image_results WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying results for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var res types.ImageResult
		var status, errMsg, kind, ocrText, block, finalText, records sql.NullString
		if err := rows.Scan(&res.Name, &status, &errMsg, &kind, &res.Retryable, &ocrText, &block, &finalText, &records); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		res.Status = types.ImageStatus(status.String)
		res.Error = errMsg.String
		res.ErrorKind = types.ErrorKind(kind.String)
		res.OCRText = ocrText.String
		res.Block = block.String
		res.FinalText = finalText.String
		if records.Valid && records.String != "" && records.String != "null" {
			if err := json.Unmarshal([]byte(records.String), &res.Records); err != nil {
				return nil, fmt.Errorf("decoding records for %s: %w", res.Name, err)
			}
		}
		report.Results = append(report.Results, res)
	}
	return report, rows.Err()
}
