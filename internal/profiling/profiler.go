// Package profiling wraps pipeline stages with wall-clock and memory
// measurements. Heap profiles come from the runtime's own profiler; deep
// structure sizes from reflection-based traversal.
package profiling

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/DmitriyVTitov/size"

	"github.com/graphbench/graphbench-go/internal/models"
)

// Profiler records one StageResult per wrapped stage
type Profiler struct {
	stages  []models.StageResult
	logger  *slog.Logger
	enabled bool
}

// New creates a profiler
func New(logger *slog.Logger) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Profiler{
		stages:  make([]models.StageResult, 0, 4),
		logger:  logger.With("component", "profiler"),
		enabled: true,
	}
}

// SetEnabled toggles measurement; disabled stages still run their function
func (p *Profiler) SetEnabled(enabled bool) { p.enabled = enabled }

// Stage runs fn, recording duration and memory deltas around it
func (p *Profiler) Stage(name string, fn func() error) error {
	if !p.enabled {
		return fn()
	}

	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	err := fn()

	duration := time.Since(start)
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	result := models.StageResult{
		Name:            name,
		Duration:        duration,
		HeapAllocDelta:  int64(after.HeapAlloc) - int64(before.HeapAlloc),
		TotalAllocDelta: after.TotalAlloc - before.TotalAlloc,
		NumGC:           after.NumGC - before.NumGC,
	}
	p.stages = append(p.stages, result)

	p.logger.Debug("stage complete",
		"stage", name,
		"duration", duration,
		"heap_delta", result.HeapAllocDelta,
		"total_alloc_delta", result.TotalAllocDelta,
		"gc_cycles", result.NumGC,
	)
	return err
}

// Stages returns the recorded results in execution order
func (p *Profiler) Stages() []models.StageResult {
	out := make([]models.StageResult, len(p.stages))
	copy(out, p.stages)
	return out
}

// DeepSize measures the total in-memory footprint of a structure, pointers
// followed.
func DeepSize(v any) int64 {
	return int64(size.Of(v))
}

// WriteHeapProfile forces a GC and writes the runtime heap profile to path,
// replacing any previous profile file.
func WriteHeapProfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
