// Package pipeline orchestrates one benchmark invocation: read the CSV
// datasets, build the configured in-memory representation, assemble the
// directed property graph, and measure every stage.
package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/graphbench/graphbench-go/internal/config"
	"github.com/graphbench/graphbench-go/internal/dataset"
	"github.com/graphbench/graphbench-go/internal/graph"
	"github.com/graphbench/graphbench-go/internal/models"
	"github.com/graphbench/graphbench-go/internal/profiling"
	"github.com/graphbench/graphbench-go/internal/represent"
	"github.com/graphbench/graphbench-go/internal/storage"
)

// Pipeline wires the stages together. The store is optional; when nil, run
// results are only reported, not persisted.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	store  storage.Store
}

// New creates a pipeline
func New(cfg *config.Config, logger *slog.Logger, store storage.Store) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger, store: store}
}

// Run executes the pipeline with the given builder variant
func (p *Pipeline) Run(ctx context.Context, variant string) (*models.BenchmarkRun, error) {
	run, _, err := p.run(ctx, variant)
	return run, err
}

func (p *Pipeline) run(ctx context.Context, variant string) (*models.BenchmarkRun, *graph.DiGraph, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, nil, err
	}

	ds := p.cfg.Datasets
	if err := dataset.CheckFiles(ds.NodesPath, ds.EdgesPath); err != nil {
		return nil, nil, err
	}

	builder, err := represent.New(variant, buildOptions(p.cfg))
	if err != nil {
		return nil, nil, err
	}

	p.logger.Info("pipeline start",
		"builder", builder.Name(),
		"nodes", ds.NodesPath,
		"edges", ds.EdgesPath,
	)

	prof := profiling.New(p.logger)

	var rep represent.Representation
	err = prof.Stage("build_representation", func() error {
		var err error
		rep, err = builder.Build(ds.NodesPath, ds.EdgesPath)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	g := graph.NewDiGraph()
	var stats *graph.BuildStats
	err = prof.Stage("assemble_graph", func() error {
		var err error
		stats, err = graph.Assemble(g, rep)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var sizes []models.StructureSize
	err = prof.Stage("measure_sizes", func() error {
		sizes = []models.StructureSize{
			{Name: "representation", Bytes: profiling.DeepSize(rep)},
			{Name: "graph", Bytes: profiling.DeepSize(g)},
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	run := &models.BenchmarkRun{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Builder:   builder.Name(),
		NodesPath: ds.NodesPath,
		EdgesPath: ds.EdgesPath,
		NodeCount: stats.Nodes,
		EdgeCount: stats.Edges,
		Stages:    prof.Stages(),
		Sizes:     sizes,
	}
	p.sampleExamples(run, g)

	if p.cfg.Results.HeapProfile {
		path := p.cfg.HeapProfilePath(builder.Name())
		if err := profiling.WriteHeapProfile(path); err != nil {
			return nil, nil, err
		}
		run.HeapProfilePath = path
		p.logger.Info("heap profile written", "path", path)
	}

	if p.store != nil {
		if err := p.store.SaveRun(ctx, run); err != nil {
			return nil, nil, err
		}
		p.logger.Debug("run persisted", "id", run.ID)
	}

	p.logger.Info("pipeline complete",
		"builder", builder.Name(),
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"duration", run.TotalDuration(),
	)
	return run, g, nil
}

// sampleExamples copies the first few nodes and edges (by sorted identifier,
// for stable output) into the run for the report.
func (p *Pipeline) sampleExamples(run *models.BenchmarkRun, g *graph.DiGraph) {
	n := p.cfg.Results.SampleSize
	if n <= 0 {
		return
	}

	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	if len(nodes) > n {
		nodes = nodes[:n]
	}
	run.ExampleNodes = nodes

	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	if len(edges) > n {
		edges = edges[:n]
	}
	run.ExampleEdges = edges
}

func buildOptions(cfg *config.Config) represent.Options {
	return represent.Options{
		NodesHeader: cfg.Datasets.NodesHeader,
		EdgesHeader: cfg.Datasets.EdgesHeader,
		MapLabels:   cfg.Mapping.MapLabels,
		Frame: represent.FrameOptions{
			NodesKeepIntact: cfg.Frame.NodesKeepIntact,
			EdgesKeepIntact: cfg.Frame.EdgesKeepIntact,
			NodesRename:     cfg.Frame.NodesRename,
			EdgesRename:     cfg.Frame.EdgesRename,
		},
	}
}
