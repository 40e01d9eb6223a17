package pipeline

import (
	"context"

	"github.com/graphbench/graphbench-go/internal/errors"
	"github.com/graphbench/graphbench-go/internal/graph"
	"github.com/graphbench/graphbench-go/internal/models"
	"github.com/graphbench/graphbench-go/internal/represent"
)

// Compare runs every builder variant over the same inputs and verifies that
// the assembled graphs are identical; the variants are alternative
// implementations of one contract, so any difference is a defect in the
// build, not an acceptable divergence.
func (p *Pipeline) Compare(ctx context.Context) ([]*models.BenchmarkRun, error) {
	var runs []*models.BenchmarkRun
	var graphs []*graph.DiGraph
	var variants []string

	for _, variant := range represent.Variants() {
		run, g, err := p.run(ctx, variant)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
		graphs = append(graphs, g)
		variants = append(variants, variant)
	}

	for i := 1; i < len(graphs); i++ {
		if diff := graphs[0].Diff(graphs[i]); diff != "" {
			return nil, errors.ComparisonErrorf("builders %s and %s disagree: %s",
				variants[0], variants[i], diff)
		}
	}

	p.logger.Info("builder variants verified identical", "variants", variants)
	return runs, nil
}
