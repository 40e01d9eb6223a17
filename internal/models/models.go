package models

import (
	"time"

	"github.com/graphbench/graphbench-go/internal/props"
)

// NodeRecord is a normalized node: identifier plus decoded properties.
// When label mapping is enabled the node's label is merged into Props under
// the reserved key "node_label".
type NodeRecord struct {
	ID    string
	Props props.Map
}

// EdgeRecord is a normalized directed edge between two node identifiers.
// When label mapping is enabled the edge id and label are merged into Props
// under the reserved keys "edge_id" and "edge_label".
type EdgeRecord struct {
	Source string
	Target string
	Props  props.Map
}

// Reserved property keys used by label mapping
const (
	KeyNodeLabel = "node_label"
	KeyEdgeID    = "edge_id"
	KeyEdgeLabel = "edge_label"
)

// StageResult is one profiled pipeline stage
type StageResult struct {
	Name            string        `json:"name"`
	Duration        time.Duration `json:"duration_ns"`
	HeapAllocDelta  int64         `json:"heap_alloc_delta_bytes"`
	TotalAllocDelta uint64        `json:"total_alloc_delta_bytes"`
	NumGC           uint32        `json:"num_gc"`
}

// StructureSize is the deep in-memory footprint of one built structure
type StructureSize struct {
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
}

// BenchmarkRun captures one full pipeline invocation, from CSV read to
// assembled graph, for reporting and for the results store.
type BenchmarkRun struct {
	ID        string    `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Builder   string    `json:"builder" db:"builder"`
	NodesPath string    `json:"nodes_path" db:"nodes_path"`
	EdgesPath string    `json:"edges_path" db:"edges_path"`

	NodeCount int `json:"node_count" db:"node_count"`
	EdgeCount int `json:"edge_count" db:"edge_count"`

	Stages []StageResult   `json:"stages"`
	Sizes  []StructureSize `json:"sizes"`

	// Example entries for the report, analogous to printing the first few
	// graph nodes/edges after a profiling run.
	ExampleNodes []NodeRecord `json:"example_nodes,omitempty"`
	ExampleEdges []EdgeRecord `json:"example_edges,omitempty"`

	HeapProfilePath string `json:"heap_profile_path,omitempty" db:"heap_profile_path"`
}

// TotalDuration sums all stage durations
func (r *BenchmarkRun) TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range r.Stages {
		total += s.Duration
	}
	return total
}

// PeakHeapDelta returns the largest per-stage heap growth observed
func (r *BenchmarkRun) PeakHeapDelta() int64 {
	var peak int64
	for _, s := range r.Stages {
		if s.HeapAllocDelta > peak {
			peak = s.HeapAllocDelta
		}
	}
	return peak
}
