package storage

import (
	"context"
	"errors"

	"github.com/graphbench/graphbench-go/internal/models"
)

// Common errors
var (
	ErrNotFound = errors.New("not found")
)

// Store persists benchmark run results
type Store interface {
	// SaveRun records one completed pipeline run
	SaveRun(ctx context.Context, run *models.BenchmarkRun) error

	// GetRun fetches one run by id
	GetRun(ctx context.Context, id string) (*models.BenchmarkRun, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(ctx context.Context, limit int) ([]*models.BenchmarkRun, error)

	// Close connection
	Close() error
}
