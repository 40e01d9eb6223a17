package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/graphbench/graphbench-go/internal/errors"
	"github.com/graphbench/graphbench-go/internal/models"
)

// SQLiteStore implements Store on a local SQLite file
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (creating if needed) the results database
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.StorageError(err, "create database directory")
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, apperrors.StorageError(err, "connect to sqlite")
	}

	db.Exec("PRAGMA journal_mode = WAL")

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, apperrors.StorageError(err, "init schema")
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS benchmark_runs (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		builder TEXT NOT NULL,
		nodes_path TEXT NOT NULL,
		edges_path TEXT NOT NULL,
		node_count INTEGER,
		edge_count INTEGER,
		stages TEXT,
		sizes TEXT,
		heap_profile_path TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON benchmark_runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_builder ON benchmark_runs(builder);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runRow is the flat table shape; stage and size lists travel as JSON text
type runRow struct {
	ID              string    `db:"id"`
	Timestamp       time.Time `db:"timestamp"`
	Builder         string    `db:"builder"`
	NodesPath       string    `db:"nodes_path"`
	EdgesPath       string    `db:"edges_path"`
	NodeCount       int       `db:"node_count"`
	EdgeCount       int       `db:"edge_count"`
	Stages          string    `db:"stages"`
	Sizes           string    `db:"sizes"`
	HeapProfilePath string    `db:"heap_profile_path"`
}

// SaveRun records one completed pipeline run
func (s *SQLiteStore) SaveRun(ctx context.Context, run *models.BenchmarkRun) error {
	stages, err := json.Marshal(run.Stages)
	if err != nil {
		return apperrors.StorageError(err, "encode stages")
	}
	sizes, err := json.Marshal(run.Sizes)
	if err != nil {
		return apperrors.StorageError(err, "encode sizes")
	}

	query := `
		INSERT OR REPLACE INTO benchmark_runs
		(id, timestamp, builder, nodes_path, edges_path,
		 node_count, edge_count, stages, sizes, heap_profile_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		run.ID, run.Timestamp, run.Builder, run.NodesPath, run.EdgesPath,
		run.NodeCount, run.EdgeCount, string(stages), string(sizes),
		run.HeapProfilePath)
	if err != nil {
		return apperrors.StorageError(err, "save run")
	}
	return nil
}

// GetRun fetches one run by id
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*models.BenchmarkRun, error) {
	var row runRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM benchmark_runs WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, apperrors.StorageError(err, "get run")
	}
	return row.toModel()
}

// ListRuns returns the most recent runs, newest first
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*models.BenchmarkRun, error) {
	var rows []runRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM benchmark_runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.StorageError(err, "list runs")
	}

	runs := make([]*models.BenchmarkRun, 0, len(rows))
	for _, row := range rows {
		run, err := row.toModel()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r runRow) toModel() (*models.BenchmarkRun, error) {
	run := &models.BenchmarkRun{
		ID:              r.ID,
		Timestamp:       r.Timestamp,
		Builder:         r.Builder,
		NodesPath:       r.NodesPath,
		EdgesPath:       r.EdgesPath,
		NodeCount:       r.NodeCount,
		EdgeCount:       r.EdgeCount,
		HeapProfilePath: r.HeapProfilePath,
	}
	if r.Stages != "" {
		if err := json.Unmarshal([]byte(r.Stages), &run.Stages); err != nil {
			return nil, apperrors.StorageError(err, fmt.Sprintf("decode stages for run %s", r.ID))
		}
	}
	if r.Sizes != "" {
		if err := json.Unmarshal([]byte(r.Sizes), &run.Sizes); err != nil {
			return nil, apperrors.StorageError(err, fmt.Sprintf("decode sizes for run %s", r.ID))
		}
	}
	return run, nil
}
