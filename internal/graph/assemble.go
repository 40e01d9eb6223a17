package graph

import (
	"github.com/graphbench/graphbench-go/internal/models"
)

// Source is the iteration contract every representation variant adapts to
type Source interface {
	Nodes() ([]models.NodeRecord, error)
	Edges() ([]models.EdgeRecord, error)
}

// Assemble populates the graph from a normalized representation.
//
// Edges go in first, then nodes. The ordering matters: edge insertion
// auto-creates endpoint nodes with empty properties, and the subsequent node
// pass overwrites them with the authored properties. Reversed, a node id
// appearing in both datasets could end up with the empty auto-created map.
// Node ids referenced only by edges keep their empty properties.
func Assemble(g *DiGraph, src Source) (*BuildStats, error) {
	stats := &BuildStats{}

	edges, err := src.Edges()
	if err != nil {
		return stats, err
	}
	g.AddEdgesFrom(edges)

	nodes, err := src.Nodes()
	if err != nil {
		return stats, err
	}
	g.AddNodesFrom(nodes)

	stats.Nodes = g.NumNodes()
	stats.Edges = g.NumEdges()
	return stats, nil
}

// BuildStats tracks graph construction counts
type BuildStats struct {
	Nodes int
	Edges int
}
