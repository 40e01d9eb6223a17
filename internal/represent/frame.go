package represent

import (
	"encoding/csv"
	"io"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/graphbench/graphbench-go/internal/errors"
	"github.com/graphbench/graphbench-go/internal/models"
	"github.com/graphbench/graphbench-go/internal/props"
)

// Canonical column names expected by the graph assembler
const (
	ColSource     = "source"
	ColTarget     = "target"
	ColProperties = "properties"
)

// tempDictsCol holds the collapsed non-kept columns until they are merged
// into the properties column.
const tempDictsCol = "temp_dicts"

// FrameOptions configures the dataframe variant. Column names refer to the
// CSV headers before any renaming.
type FrameOptions struct {
	// Columns left out of the collapse step
	NodesKeepIntact []string
	EdgesKeepIntact []string

	// Final renames applied to the kept columns, mapping them to the
	// canonical names source/target/properties.
	NodesRename map[string]string
	EdgesRename map[string]string
}

// DefaultFrameOptions matches the standard dataset headers
// (id,label,properties and id,source,target,label,properties).
func DefaultFrameOptions() FrameOptions {
	return FrameOptions{
		NodesKeepIntact: []string{"id", ColProperties},
		EdgesKeepIntact: []string{ColSource, ColTarget, ColProperties},
		NodesRename:     map[string]string{"id": ColSource},
		EdgesRename:     map[string]string{},
	}
}

// Renames for the columns that label mapping folds into the properties,
// keyed by original column name.
var (
	nodeReservedRenames = map[string]string{"label": models.KeyNodeLabel}
	edgeReservedRenames = map[string]string{"id": models.KeyEdgeID, "label": models.KeyEdgeLabel}
)

// FrameBuilder loads both CSV files into dataframes and reshapes them with
// column operations: non-kept columns collapse into one dictionary-valued
// column (a JSON cell per row), the properties column is decoded and merged
// with it (collapsed side wins), and the kept columns are renamed to the
// canonical source/target/properties.
type FrameBuilder struct {
	opts Options
}

// NewFrameBuilder creates the dataframe-variant builder
func NewFrameBuilder(opts Options) *FrameBuilder {
	return &FrameBuilder{opts: opts}
}

// Name returns the variant name
func (b *FrameBuilder) Name() string { return VariantFrame }

// Build loads and reshapes both CSV files
func (b *FrameBuilder) Build(nodesPath, edgesPath string) (Representation, error) {
	nodesDF, nodesEmpty, err := readFrame(nodesPath, b.opts.NodesHeader)
	if err != nil {
		return nil, err
	}
	edgesDF, edgesEmpty, err := readFrame(edgesPath, b.opts.EdgesHeader)
	if err != nil {
		return nil, err
	}

	fo := b.opts.Frame
	if !nodesEmpty {
		nodesDF, err = b.reshape(nodesDF, fo.NodesKeepIntact, fo.NodesRename, nodeReservedRenames)
		if err != nil {
			return nil, err
		}
		if err := requireColumns(nodesDF, ColSource, ColProperties); err != nil {
			return nil, err
		}
	}
	if !edgesEmpty {
		edgesDF, err = b.reshape(edgesDF, fo.EdgesKeepIntact, fo.EdgesRename, edgeReservedRenames)
		if err != nil {
			return nil, err
		}
		if err := requireColumns(edgesDF, ColSource, ColTarget, ColProperties); err != nil {
			return nil, err
		}
	}

	return &frameRepresentation{
		nodes:      nodesDF,
		edges:      edgesDF,
		nodesEmpty: nodesEmpty,
		edgesEmpty: edgesEmpty,
	}, nil
}

// requireColumns checks that the reshaped frame carries the canonical
// columns the assembler iterates over.
func requireColumns(df dataframe.DataFrame, cols ...string) error {
	names := df.Names()
	for _, col := range cols {
		if !slices.Contains(names, col) {
			return errors.ConfigErrorf("rename map does not produce canonical column %q (columns: %v)", col, names)
		}
	}
	return nil
}

func readFrame(path string, header bool) (df dataframe.DataFrame, empty bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, false, errors.FileAccessError(err, path)
	}
	defer file.Close()

	// gota rejects zero-row frames, but a header-only file is a valid empty
	// dataset; detect that case before loading.
	empty, err = headerOnly(file, header)
	if err != nil {
		return dataframe.DataFrame{}, false, errors.MalformedRowError(err, path, 0)
	}
	if empty {
		return dataframe.DataFrame{}, true, nil
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return dataframe.DataFrame{}, false, errors.FileAccessError(err, path)
	}

	// All columns load as strings; ids must not be coerced to numbers.
	df = dataframe.ReadCSV(file,
		dataframe.HasHeader(header),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, false, errors.MalformedRowError(df.Err, path, 0)
	}
	return df, false, nil
}

// headerOnly reports whether the file holds no data rows
func headerOnly(file *os.File, header bool) (bool, error) {
	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	need := 1
	if header {
		need = 2
	}
	for read := 0; read < need; read++ {
		if _, err := r.Read(); err != nil {
			if err == io.EOF {
				return true, nil
			}
			return false, err
		}
	}
	return false, nil
}

// reshape runs the collapse / merge / rename sequence on one dataframe
func (b *FrameBuilder) reshape(df dataframe.DataFrame, keepIntact []string, rename, reserved map[string]string) (dataframe.DataFrame, error) {
	names := df.Names()
	for _, col := range keepIntact {
		if !slices.Contains(names, col) {
			return dataframe.DataFrame{}, errors.ConfigErrorf("keep-intact column %q not found (columns: %v)", col, names)
		}
	}

	// Reserved columns either fold into the properties under their mapped
	// keys, or drop out entirely when label mapping is off.
	for col, key := range reserved {
		if slices.Contains(keepIntact, col) || !slices.Contains(df.Names(), col) {
			continue
		}
		if b.opts.MapLabels {
			df = df.Rename(key, col)
		} else {
			df = df.Drop(col)
		}
		if df.Err != nil {
			return dataframe.DataFrame{}, errors.Wrap(df.Err, errors.ErrorTypeInternal, "reshape reserved columns")
		}
	}

	df, err := collapseColumns(df, keepIntact)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df, err = mergeProperties(df, ColProperties, tempDictsCol)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	for from, to := range rename {
		if from == to || !slices.Contains(df.Names(), from) {
			continue
		}
		df = df.Rename(to, from)
		if df.Err != nil {
			return dataframe.DataFrame{}, errors.Wrap(df.Err, errors.ErrorTypeInternal, "rename columns")
		}
	}
	return df, nil
}

// collapseColumns folds every column not in keepIntact into one
// dictionary-valued column (JSON-encoded cells keyed by column name), then
// drops the source columns.
func collapseColumns(df dataframe.DataFrame, keepIntact []string) (dataframe.DataFrame, error) {
	var remaining []string
	for _, name := range df.Names() {
		if !slices.Contains(keepIntact, name) {
			remaining = append(remaining, name)
		}
	}

	cells := make([]string, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		dict := make(props.Map, len(remaining))
		for _, name := range remaining {
			dict[name] = props.String(df.Col(name).Elem(i).String())
		}
		cells[i] = dict.String()
	}

	df = df.Mutate(series.New(cells, series.String, tempDictsCol))
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, errors.ErrorTypeInternal, "collapse columns")
	}
	if len(remaining) > 0 {
		df = df.Drop(remaining)
		if df.Err != nil {
			return dataframe.DataFrame{}, errors.Wrap(df.Err, errors.ErrorTypeInternal, "drop collapsed columns")
		}
	}
	return df, nil
}

// mergeProperties decodes both dictionary columns row by row, merges them
// with the collapsed side winning on key collision, writes the union back
// into the kept column and drops the collapsed one.
func mergeProperties(df dataframe.DataFrame, keep, merge string) (dataframe.DataFrame, error) {
	kept := df.Col(keep)
	collapsed := df.Col(merge)

	cells := make([]string, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		p, err := props.Decode(kept.Elem(i).String())
		if err != nil {
			return dataframe.DataFrame{}, decodeRowError(err, i+1)
		}
		c, err := props.Decode(collapsed.Elem(i).String())
		if err != nil {
			return dataframe.DataFrame{}, decodeRowError(err, i+1)
		}
		cells[i] = p.Merge(c).String()
	}

	df = df.Mutate(series.New(cells, series.String, keep))
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, errors.ErrorTypeInternal, "merge properties")
	}
	df = df.Drop(merge)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, errors.ErrorTypeInternal, "drop merged column")
	}
	return df, nil
}

type frameRepresentation struct {
	nodes dataframe.DataFrame
	edges dataframe.DataFrame

	// A header-only CSV loads as no dataframe at all, not a zero-row one.
	nodesEmpty bool
	edgesEmpty bool
}

// Nodes decodes the node dataframe into records, row order preserved
func (r *frameRepresentation) Nodes() ([]models.NodeRecord, error) {
	if r.nodesEmpty {
		return []models.NodeRecord{}, nil
	}
	ids := r.nodes.Col(ColSource)
	properties := r.nodes.Col(ColProperties)

	records := make([]models.NodeRecord, 0, r.nodes.Nrow())
	for i := 0; i < r.nodes.Nrow(); i++ {
		p, err := props.Decode(properties.Elem(i).String())
		if err != nil {
			return nil, decodeRowError(err, i+1)
		}
		records = append(records, models.NodeRecord{ID: ids.Elem(i).String(), Props: p})
	}
	return records, nil
}

// Edges decodes the edge dataframe into records, row order preserved
func (r *frameRepresentation) Edges() ([]models.EdgeRecord, error) {
	if r.edgesEmpty {
		return []models.EdgeRecord{}, nil
	}
	sources := r.edges.Col(ColSource)
	targets := r.edges.Col(ColTarget)
	properties := r.edges.Col(ColProperties)

	records := make([]models.EdgeRecord, 0, r.edges.Nrow())
	for i := 0; i < r.edges.Nrow(); i++ {
		p, err := props.Decode(properties.Elem(i).String())
		if err != nil {
			return nil, decodeRowError(err, i+1)
		}
		records = append(records, models.EdgeRecord{
			Source: sources.Elem(i).String(),
			Target: targets.Elem(i).String(),
			Props:  p,
		})
	}
	return records, nil
}

// Frames exposes the reshaped dataframes
func (r *frameRepresentation) Frames() (nodes, edges dataframe.DataFrame) {
	return r.nodes, r.edges
}
