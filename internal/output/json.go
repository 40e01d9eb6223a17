package output

import (
	"encoding/json"
	"io"

	"github.com/graphbench/graphbench-go/internal/models"
)

// JSONFormatter renders results as indented JSON for machine consumption
type JSONFormatter struct{}

// Format renders one benchmark run
func (f *JSONFormatter) Format(run *models.BenchmarkRun, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// FormatComparison renders all runs as a JSON array
func (f *JSONFormatter) FormatComparison(runs []*models.BenchmarkRun, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}
