package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphbench/graphbench-go/internal/models"
	"github.com/graphbench/graphbench-go/internal/props"
)

func TestAddEdgeAutoCreatesEndpoints(t *testing.T) {
	g := NewDiGraph()
	g.AddEdgesFrom([]models.EdgeRecord{
		{Source: "1", Target: "2", Props: props.Map{"w": props.Number(1)}},
	})

	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 1, g.NumEdges())
	assert.True(t, g.HasEdge("1", "2"))
	assert.False(t, g.HasEdge("2", "1"))

	// auto-created endpoints carry empty properties
	assert.True(t, g.NodeProps("1").Equal(props.Map{}))
	assert.True(t, g.NodeProps("2").Equal(props.Map{}))
}

func TestDuplicateEdgeOverwrites(t *testing.T) {
	g := NewDiGraph()
	g.AddEdgesFrom([]models.EdgeRecord{
		{Source: "1", Target: "2", Props: props.Map{"w": props.Number(1)}},
		{Source: "1", Target: "2", Props: props.Map{"w": props.Number(2)}},
	})

	// one edge, later properties win
	assert.Equal(t, 1, g.NumEdges())
	assert.True(t, g.EdgeProps("1", "2").Equal(props.Map{"w": props.Number(2)}))
}

func TestDuplicateNodeOverwrites(t *testing.T) {
	g := NewDiGraph()
	g.AddNodesFrom([]models.NodeRecord{
		{ID: "1", Props: props.Map{"v": props.Number(1)}},
		{ID: "1", Props: props.Map{"v": props.Number(2)}},
	})

	assert.Equal(t, 1, g.NumNodes())
	assert.True(t, g.NodeProps("1").Equal(props.Map{"v": props.Number(2)}))
}

func TestSelfLoop(t *testing.T) {
	g := NewDiGraph()
	g.AddEdgesFrom([]models.EdgeRecord{
		{Source: "1", Target: "1", Props: props.Map{}},
	})

	assert.Equal(t, 1, g.NumNodes())
	assert.Equal(t, 1, g.NumEdges())
	assert.True(t, g.HasEdge("1", "1"))
}

func TestMaxOutDegree(t *testing.T) {
	g := NewDiGraph()
	g.AddEdgesFrom([]models.EdgeRecord{
		{Source: "1", Target: "2"},
		{Source: "1", Target: "3"},
		{Source: "2", Target: "3"},
	})

	assert.Equal(t, 2, g.MaxOutDegree())
}

type stubSource struct {
	nodes []models.NodeRecord
	edges []models.EdgeRecord
}

func (s *stubSource) Nodes() ([]models.NodeRecord, error) { return s.nodes, nil }
func (s *stubSource) Edges() ([]models.EdgeRecord, error) { return s.edges, nil }

func TestAssembleEdgeBeforeNodeOrdering(t *testing.T) {
	src := &stubSource{
		nodes: []models.NodeRecord{
			{ID: "1", Props: props.Map{"mass": props.Number(10)}},
		},
		edges: []models.EdgeRecord{
			{Source: "1", Target: "2", Props: props.Map{}},
		},
	}

	g := NewDiGraph()
	stats, err := Assemble(g, src)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Nodes)
	assert.Equal(t, 1, stats.Edges)

	// node present in both datasets carries its authored properties; the
	// edge-derived empty map must not survive
	assert.True(t, g.NodeProps("1").Equal(props.Map{"mass": props.Number(10)}))
	// node known only from the edge dataset keeps empty properties
	assert.True(t, g.NodeProps("2").Equal(props.Map{}))
}

func TestAssembleIdempotent(t *testing.T) {
	src := &stubSource{
		nodes: []models.NodeRecord{
			{ID: "1", Props: props.Map{"mass": props.Number(10)}},
		},
		edges: []models.EdgeRecord{
			{Source: "1", Target: "2", Props: props.Map{"w": props.Number(1)}},
		},
	}

	g := NewDiGraph()
	_, err := Assemble(g, src)
	require.NoError(t, err)
	_, err = Assemble(g, src)
	require.NoError(t, err)

	other := NewDiGraph()
	_, err = Assemble(other, src)
	require.NoError(t, err)

	assert.True(t, g.Equal(other), g.Diff(other))
}

func TestDiff(t *testing.T) {
	a := NewDiGraph()
	a.AddNodesFrom([]models.NodeRecord{{ID: "1", Props: props.Map{"v": props.Number(1)}}})

	b := NewDiGraph()
	b.AddNodesFrom([]models.NodeRecord{{ID: "1", Props: props.Map{"v": props.Number(2)}}})

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.Contains(t, a.Diff(b), "node 1 properties differ")
}
