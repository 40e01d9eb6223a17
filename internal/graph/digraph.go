// Package graph holds the assembled directed property graph. Structure is
// delegated to gonum's simple.DirectedGraph; this package adds string node
// identifiers and property maps on nodes and edges, with last-write-wins
// overwrite semantics on duplicate inserts.
package graph

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/graphbench/graphbench-go/internal/models"
	"github.com/graphbench/graphbench-go/internal/props"
)

type endpoints struct {
	source string
	target string
}

// DiGraph is a directed graph whose nodes and edges carry property maps.
// Edges are keyed by (source, target); inserting an existing key overwrites
// the stored properties rather than creating a parallel edge.
type DiGraph struct {
	g     *simple.DirectedGraph
	ids   map[string]int64
	names map[int64]string
	next  int64

	nodeProps map[string]props.Map
	edgeProps map[endpoints]props.Map
}

// NewDiGraph creates an empty directed graph
func NewDiGraph() *DiGraph {
	return &DiGraph{
		g:         simple.NewDirectedGraph(),
		ids:       make(map[string]int64),
		names:     make(map[int64]string),
		nodeProps: make(map[string]props.Map),
		edgeProps: make(map[endpoints]props.Map),
	}
}

// intern maps a string identifier to the gonum node id, adding the node to
// the underlying graph on first sight.
func (d *DiGraph) intern(name string) int64 {
	if id, ok := d.ids[name]; ok {
		return id
	}
	id := d.next
	d.next++
	d.ids[name] = id
	d.names[id] = name
	d.g.AddNode(simple.Node(id))
	return id
}

// addNode inserts or overwrites one node. Auto-created endpoints hold an
// empty map until (and unless) the node dataset provides their properties.
func (d *DiGraph) addNode(id string, p props.Map) {
	d.intern(id)
	if p == nil {
		p = props.Map{}
	}
	d.nodeProps[id] = p
}

// addEdge inserts or overwrites one edge, auto-creating missing endpoints
// with empty properties.
func (d *DiGraph) addEdge(source, target string, p props.Map) {
	from := d.intern(source)
	to := d.intern(target)
	if _, ok := d.nodeProps[source]; !ok {
		d.nodeProps[source] = props.Map{}
	}
	if _, ok := d.nodeProps[target]; !ok {
		d.nodeProps[target] = props.Map{}
	}

	// simple.DirectedGraph rejects self-loops; the property map already
	// keys the edge, so only proper edges go into the structural graph.
	if from != to {
		d.g.SetEdge(d.g.NewEdge(simple.Node(from), simple.Node(to)))
	}
	if p == nil {
		p = props.Map{}
	}
	d.edgeProps[endpoints{source, target}] = p
}

// AddNodesFrom bulk-inserts nodes; repeated identifiers overwrite
func (d *DiGraph) AddNodesFrom(records []models.NodeRecord) {
	for _, rec := range records {
		d.addNode(rec.ID, rec.Props)
	}
}

// AddEdgesFrom bulk-inserts edges; repeated (source, target) pairs overwrite
func (d *DiGraph) AddEdgesFrom(records []models.EdgeRecord) {
	for _, rec := range records {
		d.addEdge(rec.Source, rec.Target, rec.Props)
	}
}

// NumNodes returns the node count
func (d *DiGraph) NumNodes() int { return len(d.nodeProps) }

// NumEdges returns the count of distinct (source, target) pairs, self-loops
// included.
func (d *DiGraph) NumEdges() int { return len(d.edgeProps) }

// HasNode reports whether the identifier is present
func (d *DiGraph) HasNode(id string) bool {
	_, ok := d.nodeProps[id]
	return ok
}

// HasEdge reports whether a (source, target) edge is present
func (d *DiGraph) HasEdge(source, target string) bool {
	_, ok := d.edgeProps[endpoints{source, target}]
	return ok
}

// NodeProps returns the properties of a node, or nil when absent
func (d *DiGraph) NodeProps(id string) props.Map {
	return d.nodeProps[id]
}

// EdgeProps returns the properties of an edge, or nil when absent
func (d *DiGraph) EdgeProps(source, target string) props.Map {
	return d.edgeProps[endpoints{source, target}]
}

// NodeIDs returns every node identifier, order unspecified
func (d *DiGraph) NodeIDs() []string {
	ids := make([]string, 0, len(d.nodeProps))
	for id := range d.nodeProps {
		ids = append(ids, id)
	}
	return ids
}

// Nodes returns every node as a record, order unspecified
func (d *DiGraph) Nodes() []models.NodeRecord {
	records := make([]models.NodeRecord, 0, len(d.nodeProps))
	for id, p := range d.nodeProps {
		records = append(records, models.NodeRecord{ID: id, Props: p})
	}
	return records
}

// Edges returns every edge as a record, order unspecified
func (d *DiGraph) Edges() []models.EdgeRecord {
	records := make([]models.EdgeRecord, 0, len(d.edgeProps))
	for ep, p := range d.edgeProps {
		records = append(records, models.EdgeRecord{Source: ep.source, Target: ep.target, Props: p})
	}
	return records
}

// MaxOutDegree returns the largest out-degree in the graph, computed on the
// underlying gonum structure (self-loops excluded).
func (d *DiGraph) MaxOutDegree() int {
	max := 0
	nodes := d.g.Nodes()
	for nodes.Next() {
		if deg := d.g.From(nodes.Node().ID()).Len(); deg > max {
			max = deg
		}
	}
	return max
}

// Equal reports whether two graphs hold the same node set and edge set with
// equal properties.
func (d *DiGraph) Equal(o *DiGraph) bool {
	return d.Diff(o) == ""
}

// Diff returns a description of the first difference between two graphs, or
// the empty string when they are identical.
func (d *DiGraph) Diff(o *DiGraph) string {
	if len(d.nodeProps) != len(o.nodeProps) {
		return fmt.Sprintf("node counts differ: %d vs %d", len(d.nodeProps), len(o.nodeProps))
	}
	if len(d.edgeProps) != len(o.edgeProps) {
		return fmt.Sprintf("edge counts differ: %d vs %d", len(d.edgeProps), len(o.edgeProps))
	}
	for id, p := range d.nodeProps {
		op, ok := o.nodeProps[id]
		if !ok {
			return fmt.Sprintf("node %s missing from second graph", id)
		}
		if !p.Equal(op) {
			return fmt.Sprintf("node %s properties differ: %s vs %s", id, p, op)
		}
	}
	for ep, p := range d.edgeProps {
		op, ok := o.edgeProps[ep]
		if !ok {
			return fmt.Sprintf("edge %s->%s missing from second graph", ep.source, ep.target)
		}
		if !p.Equal(op) {
			return fmt.Sprintf("edge %s->%s properties differ: %s vs %s", ep.source, ep.target, p, op)
		}
	}
	return ""
}
