package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/graphbench/graphbench-go/internal/models"
)

// TableFormatter renders results as console tables
type TableFormatter struct{}

// Format renders one benchmark run
func (f *TableFormatter) Format(run *models.BenchmarkRun, w io.Writer) error {
	fmt.Fprintf(w, "Run %s  builder=%s\n", run.ID, run.Builder)
	fmt.Fprintf(w, "  nodes: %s\n  edges: %s\n", run.NodesPath, run.EdgesPath)
	fmt.Fprintf(w, "  graph: %d nodes, %d edges\n", run.NodeCount, run.EdgeCount)
	if run.HeapProfilePath != "" {
		fmt.Fprintf(w, "  heap profile: %s\n", run.HeapProfilePath)
	}
	fmt.Fprintln(w)

	stages := tablewriter.NewWriter(w)
	stages.SetHeader([]string{"Stage", "Duration", "Heap Delta", "Allocated", "GC Cycles"})
	for _, s := range run.Stages {
		stages.Append([]string{
			s.Name,
			s.Duration.String(),
			formatBytes(s.HeapAllocDelta),
			formatBytes(int64(s.TotalAllocDelta)),
			fmt.Sprintf("%d", s.NumGC),
		})
	}
	stages.Append([]string{"total", run.TotalDuration().String(), "", "", ""})
	stages.Render()

	if len(run.Sizes) > 0 {
		fmt.Fprintln(w)
		sizes := tablewriter.NewWriter(w)
		sizes.SetHeader([]string{"Structure", "Deep Size"})
		for _, s := range run.Sizes {
			sizes.Append([]string{s.Name, formatBytes(s.Bytes)})
		}
		sizes.Render()
	}

	if len(run.ExampleNodes) > 0 {
		fmt.Fprintln(w, "\nExample nodes:")
		for _, n := range run.ExampleNodes {
			fmt.Fprintf(w, "  (%s, %s)\n", n.ID, n.Props)
		}
	}
	if len(run.ExampleEdges) > 0 {
		fmt.Fprintln(w, "\nExample edges:")
		for _, e := range run.ExampleEdges {
			fmt.Fprintf(w, "  (%s, %s, %s)\n", e.Source, e.Target, e.Props)
		}
	}
	return nil
}

// FormatComparison renders one row per builder variant
func (f *TableFormatter) FormatComparison(runs []*models.BenchmarkRun, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Builder", "Total Duration", "Peak Heap Delta", "Nodes", "Edges"})
	for _, run := range runs {
		table.Append([]string{
			run.Builder,
			run.TotalDuration().String(),
			formatBytes(run.PeakHeapDelta()),
			fmt.Sprintf("%d", run.NodeCount),
			fmt.Sprintf("%d", run.EdgeCount),
		})
	}
	table.Render()
	return nil
}

// formatBytes renders a byte count in binary units, keeping the sign
func formatBytes(n int64) string {
	neg := ""
	if n < 0 {
		neg = "-"
		n = -n
	}
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%s%.2f GiB", neg, float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%s%.2f MiB", neg, float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%s%.2f KiB", neg, float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%s%d B", neg, n)
	}
}
