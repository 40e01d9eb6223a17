// Package represent converts raw dataset rows into normalized node and edge
// records through three interchangeable in-memory representations: plain
// lists, adjacency-map dictionaries, and dataframes. All three satisfy the
// same contract: for identical inputs and flags they yield set-equal node
// and edge sets.
package represent

import (
	"github.com/graphbench/graphbench-go/internal/dataset"
	"github.com/graphbench/graphbench-go/internal/errors"
	"github.com/graphbench/graphbench-go/internal/models"
	"github.com/graphbench/graphbench-go/internal/props"
)

// Builder variant names
const (
	VariantList  = "list"
	VariantDict  = "dict"
	VariantFrame = "frame"
)

// Options configures a builder
type Options struct {
	// NodesHeader/EdgesHeader indicate whether the first CSV line is a header
	NodesHeader bool
	EdgesHeader bool

	// MapLabels merges the node label and the edge id/label into the decoded
	// properties under the reserved keys node_label, edge_id and edge_label.
	MapLabels bool

	// Frame holds dataframe-variant settings; ignored by the other variants
	Frame FrameOptions
}

// DefaultOptions enables headers and label mapping
func DefaultOptions() Options {
	return Options{
		NodesHeader: true,
		EdgesHeader: true,
		MapLabels:   true,
		Frame:       DefaultFrameOptions(),
	}
}

// Representation is the normalized output of a builder, consumed by the
// graph assembler. Decoding happens when Nodes/Edges is called.
type Representation interface {
	Nodes() ([]models.NodeRecord, error)
	Edges() ([]models.EdgeRecord, error)
}

// Builder turns a pair of CSV files into a Representation
type Builder interface {
	Name() string
	Build(nodesPath, edgesPath string) (Representation, error)
}

// New returns the builder for the given variant name
func New(variant string, opts Options) (Builder, error) {
	switch variant {
	case VariantList:
		return NewListBuilder(opts), nil
	case VariantDict:
		return NewDictBuilder(opts), nil
	case VariantFrame:
		return NewFrameBuilder(opts), nil
	default:
		return nil, errors.ConfigErrorf("unknown builder variant %q (want %s, %s or %s)",
			variant, VariantList, VariantDict, VariantFrame)
	}
}

// Variants lists every builder variant name
func Variants() []string {
	return []string{VariantList, VariantDict, VariantFrame}
}

// decodeNodeRow decodes one raw node row, optionally merging the label
func decodeNodeRow(row dataset.NodeRow, mapLabels bool) (models.NodeRecord, error) {
	p, err := props.Decode(row.Properties)
	if err != nil {
		return models.NodeRecord{}, decodeRowError(err, row.Line)
	}
	if mapLabels {
		p[models.KeyNodeLabel] = props.String(row.Label)
	}
	return models.NodeRecord{ID: row.ID, Props: p}, nil
}

// decodeEdgeRow decodes one raw edge row, optionally merging id and label
func decodeEdgeRow(row dataset.EdgeRow, mapLabels bool) (models.EdgeRecord, error) {
	p, err := props.Decode(row.Properties)
	if err != nil {
		return models.EdgeRecord{}, decodeRowError(err, row.Line)
	}
	if mapLabels {
		p[models.KeyEdgeID] = props.String(row.ID)
		p[models.KeyEdgeLabel] = props.String(row.Label)
	}
	return models.EdgeRecord{Source: row.Source, Target: row.Target, Props: p}, nil
}

func decodeRowError(err error, line int) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithContext("line", line)
	}
	return err
}
