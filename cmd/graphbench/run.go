package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/graphbench/graphbench-go/internal/logging"
	"github.com/graphbench/graphbench-go/internal/output"
	"github.com/graphbench/graphbench-go/internal/pipeline"
	"github.com/graphbench/graphbench-go/internal/storage"
)

var (
	flagNodes       string
	flagEdges       string
	flagBuilder     string
	flagFormat      string
	flagHeapProfile bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline with one builder variant",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDatasetFlags()
		if flagBuilder != "" {
			cfg.Builder = flagBuilder
		}
		if flagHeapProfile {
			cfg.Results.HeapProfile = true
		}

		log, store, cleanup, err := setupRuntime()
		if err != nil {
			return err
		}
		defer cleanup()

		p := pipeline.New(cfg, log.Logger, store)
		run, err := p.Run(cmd.Context(), cfg.Builder)
		if err != nil {
			return err
		}

		return output.NewFormatter(flagFormat).Format(run, os.Stdout)
	},
}

func init() {
	runCmd.Flags().StringVar(&flagNodes, "nodes", "", "path to the nodes CSV")
	runCmd.Flags().StringVar(&flagEdges, "edges", "", "path to the edges CSV")
	runCmd.Flags().StringVar(&flagBuilder, "builder", "", "builder variant: list, dict or frame")
	runCmd.Flags().StringVar(&flagFormat, "format", output.FormatTable, "output format: table or json")
	runCmd.Flags().BoolVar(&flagHeapProfile, "heap-profile", false, "write a heap profile to the results directory")
}

func applyDatasetFlags() {
	if flagNodes != "" {
		cfg.Datasets.NodesPath = flagNodes
	}
	if flagEdges != "" {
		cfg.Datasets.EdgesPath = flagEdges
	}
}

// setupRuntime builds the process logger and, when configured, the results
// store. The returned cleanup closes both.
func setupRuntime() (*logging.Logger, storage.Store, func(), error) {
	log, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	var store storage.Store
	if cfg.Results.SQLitePath != "" {
		store, err = storage.NewSQLiteStore(cfg.Results.SQLitePath)
		if err != nil {
			log.Close()
			return nil, nil, nil, err
		}
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		log.Close()
	}
	return log, store, cleanup, nil
}
