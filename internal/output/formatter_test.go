package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphbench/graphbench-go/internal/models"
	"github.com/graphbench/graphbench-go/internal/props"
)

func sampleRun() *models.BenchmarkRun {
	return &models.BenchmarkRun{
		ID:        "run-1",
		Builder:   "dict",
		NodesPath: "nodes.csv",
		EdgesPath: "edges.csv",
		NodeCount: 4,
		EdgeCount: 3,
		Stages: []models.StageResult{
			{Name: "build_representation", Duration: 120 * time.Millisecond, HeapAllocDelta: 2048},
			{Name: "assemble_graph", Duration: 80 * time.Millisecond, HeapAllocDelta: 4096},
		},
		Sizes: []models.StructureSize{
			{Name: "graph", Bytes: 1 << 20},
		},
		ExampleNodes: []models.NodeRecord{
			{ID: "P04637", Props: props.Map{"node_label": props.String("protein")}},
		},
	}
}

func TestTableFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(sampleRun(), &buf))

	out := buf.String()
	assert.Contains(t, out, "builder=dict")
	assert.Contains(t, out, "build_representation")
	assert.Contains(t, out, "4 nodes, 3 edges")
	assert.Contains(t, out, "1.00 MiB")
	assert.Contains(t, out, "P04637")
}

func TestTableFormatComparison(t *testing.T) {
	var buf bytes.Buffer
	runs := []*models.BenchmarkRun{sampleRun(), sampleRun()}
	runs[1].Builder = "frame"

	require.NoError(t, NewFormatter(FormatTable).FormatComparison(runs, &buf))
	assert.Contains(t, buf.String(), "dict")
	assert.Contains(t, buf.String(), "frame")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(sampleRun(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "dict", decoded["builder"])

	// property maps serialize as their literal form
	assert.Contains(t, buf.String(), `"node_label": "protein"`)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.00 KiB"},
		{3 << 20, "3.00 MiB"},
		{-2048, "-2.00 KiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}
