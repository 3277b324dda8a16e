// Package store keeps a SQLite history of trace runs for comparing variants
// and thresholds over time.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"nfrtrace/internal/domain"
	"nfrtrace/internal/evaluate"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// RunRecord is one persisted variant/threshold run.
type RunRecord struct {
	ID        int64
	CreatedAt time.Time
	Source    string
	Variant   string
	Threshold float64
	FRCount   int
	Links     int
	Trace     domain.TraceMatrix
	Metrics   *evaluate.Metrics
}

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			source TEXT NOT NULL,
			variant TEXT NOT NULL,
			threshold REAL NOT NULL,
			fr_count INTEGER NOT NULL,
			links INTEGER NOT NULL,
			trace_json TEXT NOT NULL,
			metrics_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveRun inserts rec and returns its new id. A zero CreatedAt is set to now.
func (d *DB) SaveRun(ctx context.Context, rec RunRecord) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	traceJSON, err := json.Marshal(rec.Trace)
	if err != nil {
		return 0, fmt.Errorf("encoding trace: %w", err)
	}
	var metricsJSON sql.NullString
	if rec.Metrics != nil {
		b, err := json.Marshal(rec.Metrics)
		if err != nil {
			return 0, fmt.Errorf("encoding metrics: %w", err)
		}
		metricsJSON = sql.NullString{String: string(b), Valid: true}
	}
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO runs (created_at, source, variant, threshold, fr_count, links, trace_json, metrics_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UnixNano(), rec.Source, rec.Variant, rec.Threshold, rec.FRCount, rec.Links,
		string(traceJSON), metricsJSON)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

const selectRunFields = `id, created_at, source, variant, threshold, fr_count, links, trace_json, metrics_json`

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT ` + selectRunFields + ` FROM runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetRun loads one run by id.
func (d *DB) GetRun(ctx context.Context, id int64) (RunRecord, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+selectRunFields+` FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var (
		rec         RunRecord
		created     int64
		traceJSON   string
		metricsJSON sql.NullString
	)
	if err := s.Scan(&rec.ID, &created, &rec.Source, &rec.Variant, &rec.Threshold,
		&rec.FRCount, &rec.Links, &traceJSON, &metricsJSON); err != nil {
		return RunRecord{}, err
	}
	rec.CreatedAt = time.Unix(0, created)
	if err := json.Unmarshal([]byte(traceJSON), &rec.Trace); err != nil {
		return RunRecord{}, fmt.Errorf("decoding trace of run %d: %w", rec.ID, err)
	}
	if metricsJSON.Valid {
		var m evaluate.Metrics
		if err := json.Unmarshal([]byte(metricsJSON.String), &m); err != nil {
			return RunRecord{}, fmt.Errorf("decoding metrics of run %d: %w", rec.ID, err)
		}
		rec.Metrics = &m
	}
	return rec, nil
}
