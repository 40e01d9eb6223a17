package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/graphbench/graphbench-go/internal/output"
	"github.com/graphbench/graphbench-go/internal/pipeline"
)

var compareFormat string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every builder variant and verify they produce identical graphs",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDatasetFlags()

		log, store, cleanup, err := setupRuntime()
		if err != nil {
			return err
		}
		defer cleanup()

		p := pipeline.New(cfg, log.Logger, store)
		runs, err := p.Compare(cmd.Context())
		if err != nil {
			return err
		}

		return output.NewFormatter(compareFormat).FormatComparison(runs, os.Stdout)
	},
}

func init() {
	compareCmd.Flags().StringVar(&flagNodes, "nodes", "", "path to the nodes CSV")
	compareCmd.Flags().StringVar(&flagEdges, "edges", "", "path to the edges CSV")
	compareCmd.Flags().StringVar(&compareFormat, "format", output.FormatTable, "output format: table or json")
}
