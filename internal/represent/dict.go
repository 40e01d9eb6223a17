package represent

import (
	"github.com/graphbench/graphbench-go/internal/dataset"
	"github.com/graphbench/graphbench-go/internal/models"
	"github.com/graphbench/graphbench-go/internal/props"
)

// AdjacencyMap groups the edge set by source node: source id -> target id ->
// edge properties. A repeated (source, target) pair overwrites the earlier
// properties, mirroring the directed graph's own edge dedup, so this shape is
// representation-compatible with the assembled graph.
type AdjacencyMap map[string]map[string]props.Map

// EdgeCount returns the number of distinct (source, target) pairs
func (a AdjacencyMap) EdgeCount() int {
	count := 0
	for _, targets := range a {
		count += len(targets)
	}
	return count
}

// Flatten converts the adjacency map back to edge records, order unspecified
func (a AdjacencyMap) Flatten() []models.EdgeRecord {
	records := make([]models.EdgeRecord, 0, a.EdgeCount())
	for source, targets := range a {
		for target, p := range targets {
			records = append(records, models.EdgeRecord{Source: source, Target: target, Props: p})
		}
	}
	return records
}

// DictBuilder materializes the raw rows like the list variant, then groups
// nodes into an id->properties map and edges into an AdjacencyMap.
type DictBuilder struct {
	opts Options
}

// NewDictBuilder creates the dictionary-variant builder
func NewDictBuilder(opts Options) *DictBuilder {
	return &DictBuilder{opts: opts}
}

// Name returns the variant name
func (b *DictBuilder) Name() string { return VariantDict }

// Build reads both CSV files and decodes them into the map shapes. Later
// occurrences of a node id or a (source, target) pair replace earlier ones;
// no merge, no error.
func (b *DictBuilder) Build(nodesPath, edgesPath string) (Representation, error) {
	nodeRows, err := dataset.ReadAllNodes(nodesPath, b.opts.NodesHeader)
	if err != nil {
		return nil, err
	}
	edgeRows, err := dataset.ReadAllEdges(edgesPath, b.opts.EdgesHeader)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]props.Map, len(nodeRows))
	for _, row := range nodeRows {
		rec, err := decodeNodeRow(row, b.opts.MapLabels)
		if err != nil {
			return nil, err
		}
		nodes[rec.ID] = rec.Props
	}

	adjacency := make(AdjacencyMap)
	for _, row := range edgeRows {
		rec, err := decodeEdgeRow(row, b.opts.MapLabels)
		if err != nil {
			return nil, err
		}
		targets, ok := adjacency[rec.Source]
		if !ok {
			targets = make(map[string]props.Map)
			adjacency[rec.Source] = targets
		}
		targets[rec.Target] = rec.Props
	}

	return &dictRepresentation{nodes: nodes, adjacency: adjacency}, nil
}

type dictRepresentation struct {
	nodes     map[string]props.Map
	adjacency AdjacencyMap
}

// Nodes flattens the node map to records, order unspecified
func (r *dictRepresentation) Nodes() ([]models.NodeRecord, error) {
	records := make([]models.NodeRecord, 0, len(r.nodes))
	for id, p := range r.nodes {
		records = append(records, models.NodeRecord{ID: id, Props: p})
	}
	return records, nil
}

// Edges flattens the adjacency map to records, order unspecified
func (r *dictRepresentation) Edges() ([]models.EdgeRecord, error) {
	return r.adjacency.Flatten(), nil
}

// Adjacency exposes the underlying adjacency map
func (r *dictRepresentation) Adjacency() AdjacencyMap {
	return r.adjacency
}

// NodeMap exposes the underlying node map
func (r *dictRepresentation) NodeMap() map[string]props.Map {
	return r.nodes
}
