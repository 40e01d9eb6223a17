// Package output renders benchmark results for the console.
package output

import (
	"io"

	"github.com/graphbench/graphbench-go/internal/models"
)

// Formatter defines output formatting interface
type Formatter interface {
	Format(run *models.BenchmarkRun, w io.Writer) error
	FormatComparison(runs []*models.BenchmarkRun, w io.Writer) error
}

// Format names accepted by NewFormatter
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// NewFormatter creates the formatter for the given format name, defaulting
// to the table formatter.
func NewFormatter(format string) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	default:
		return &TableFormatter{}
	}
}
