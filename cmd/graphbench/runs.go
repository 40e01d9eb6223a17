package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/graphbench/graphbench-go/internal/errors"
	"github.com/graphbench/graphbench-go/internal/output"
	"github.com/graphbench/graphbench-go/internal/storage"
)

var (
	runsLimit  int
	runsFormat string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored benchmark runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Results.SQLitePath == "" {
			return errors.ConfigError("results.sqlite_path is not configured")
		}

		store, err := storage.NewSQLiteStore(cfg.Results.SQLitePath)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}

		return output.NewFormatter(runsFormat).FormatComparison(runs, os.Stdout)
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of runs to list")
	runsCmd.Flags().StringVar(&runsFormat, "format", output.FormatTable, "output format: table or json")
}
