// Package store persists benchmark results to a SQLite database, one row
// per run: provenance columns plus the six metric values.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/bayesbench/bayesbench/internal/metrics"
)

// DefaultTable is the results table for regression benchmarks.
const DefaultTable = "regression"

// Record is one benchmark run: the run's configuration (for provenance)
// merged with its metric values.
type Record struct {
	RunID   string
	Model   string
	Dataset string
	Split   int
	Seed    int
	Created time.Time
	Metrics metrics.Result
}

// Store wraps a SQLite results database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the results database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Table names come from config; restrict them rather than interpolating
// arbitrary strings into SQL.
var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Write inserts a run record into the named table, creating the table on
// first use. A record without a RunID is assigned one.
func (s *Store) Write(ctx context.Context, table string, rec Record) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("store: invalid table name %q", table)
	}
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.Created.IsZero() {
		rec.Created = time.Now().UTC()
	}

	if err := s.ensureTable(ctx, table); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			run_id, model, dataset, split, seed, created_at,
			test_loglik, test_loglik_unnormalized,
			test_mae, test_mae_unnormalized,
			test_rmse, test_rmse_unnormalized
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, table),
		rec.RunID, rec.Model, rec.Dataset, rec.Split, rec.Seed,
		rec.Created.Format(time.RFC3339),
		rec.Metrics[metrics.TestLogLik],
		rec.Metrics[metrics.TestLogLikUnnormalized],
		rec.Metrics[metrics.TestMAE],
		rec.Metrics[metrics.TestMAEUnnormalized],
		rec.Metrics[metrics.TestRMSE],
		rec.Metrics[metrics.TestRMSEUnnormalized],
	)
	if err != nil {
		return fmt.Errorf("store: insert into %s: %w", table, err)
	}
	return nil
}

// Runs returns every record in the named table, newest first.
func (s *Store) Runs(ctx context.Context, table string) ([]Record, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("store: invalid table name %q", table)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT run_id, model, dataset, split, seed, created_at,
			test_loglik, test_loglik_unnormalized,
			test_mae, test_mae_unnormalized,
			test_rmse, test_rmse_unnormalized
		FROM %s ORDER BY created_at DESC`, table))
	if err != nil {
		return nil, fmt.Errorf("store: query %s: %w", table, err)
	}
	defer rows.Close() //nolint:errcheck

	var records []Record
	for rows.Next() {
		var rec Record
		var created string
		m := make(metrics.Result, len(metrics.Keys))
		var ll, llu, mae, maeu, rmse, rmseu float64
		if err := rows.Scan(&rec.RunID, &rec.Model, &rec.Dataset, &rec.Split, &rec.Seed,
			&created, &ll, &llu, &mae, &maeu, &rmse, &rmseu); err != nil {
			return nil, fmt.Errorf("store: scan %s: %w", table, err)
		}
		m[metrics.TestLogLik] = ll
		m[metrics.TestLogLikUnnormalized] = llu
		m[metrics.TestMAE] = mae
		m[metrics.TestMAEUnnormalized] = maeu
		m[metrics.TestRMSE] = rmse
		m[metrics.TestRMSEUnnormalized] = rmseu
		rec.Metrics = m
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			rec.Created = t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate %s: %w", table, err)
	}
	return records, nil
}

func (s *Store) ensureTable(ctx context.Context, table string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			dataset TEXT NOT NULL,
			split INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			test_loglik REAL,
			test_loglik_unnormalized REAL,
			test_mae REAL,
			test_mae_unnormalized REAL,
			test_rmse REAL,
			test_rmse_unnormalized REAL
		)`, table))
	if err != nil {
		return fmt.Errorf("store: create table %s: %w", table, err)
	}
	return nil
}
