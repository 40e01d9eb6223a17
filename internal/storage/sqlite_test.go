package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphbench/graphbench-go/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRun(id string, ts time.Time) *models.BenchmarkRun {
	return &models.BenchmarkRun{
		ID:        id,
		Timestamp: ts,
		Builder:   "dict",
		NodesPath: "nodes.csv",
		EdgesPath: "edges.csv",
		NodeCount: 30,
		EdgeCount: 48,
		Stages: []models.StageResult{
			{Name: "build_representation", Duration: 5 * time.Millisecond, HeapAllocDelta: 1024},
		},
		Sizes: []models.StructureSize{
			{Name: "graph", Bytes: 4096},
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testRun("run-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.SaveRun(ctx, want))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, want.Builder, got.Builder)
	assert.Equal(t, want.NodeCount, got.NodeCount)
	assert.Equal(t, want.EdgeCount, got.EdgeCount)
	require.Len(t, got.Stages, 1)
	assert.Equal(t, want.Stages[0], got.Stages[0])
	require.Len(t, got.Sizes, 1)
	assert.Equal(t, want.Sizes[0], got.Sizes[0])
}

func TestGetRunNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SaveRun(ctx, testRun("old", base.Add(-time.Hour))))
	require.NoError(t, store.SaveRun(ctx, testRun("new", base)))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[1].ID)

	limited, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestSaveRunOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := testRun("run-1", time.Now().UTC())
	require.NoError(t, store.SaveRun(ctx, run))

	run.NodeCount = 99
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 99, got.NodeCount)
}
