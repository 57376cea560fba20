// ABOUTME: CLI commands for the extract and transform_load pipeline steps.
// ABOUTME: Downloads the source CSV, writes the subset, and full-refreshes the table.
package main

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/harperreed/nutrition/internal/etl"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Download the dataset and write the subset file",
	Long: `Download the source CSV and write a subset containing the 11 tracked
columns and at most the first 100 data rows.

FILES:

  <data-dir>/Nutrition.csv          Raw download (overwritten)
  <data-dir>/Nutrition_subset.csv   Subset file (overwritten)

A source missing any tracked column is rejected rather than written with
misaligned cells.

EXAMPLES:

  nutrition extract
  nutrition extract --data-dir /tmp/nutrition
  NUTRITION_SOURCE_URL=https://example.com/survey.csv nutrition extract`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		extractor := etl.NewExtractor(&http.Client{Timeout: cfg.HTTPTimeout}, logger)
		extractor.SubsetFile = cfg.SubsetFile
		extractor.RowLimit = cfg.RowLimit

		path, err := extractor.Extract(cmd.Context(), cfg.SourceURL, cfg.RawPath(), filepath.Dir(cfg.SubsetPath()))
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Data successfully written to: %s\n", path)
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:     "transform_load",
	Aliases: []string{"load"},
	Short:   "Load the subset file into SQLite",
	Long: `Drop and recreate the destination table, then insert every row of the
subset file.

The whole load runs in one transaction. If any row fails to parse, the
previous contents of the table are left untouched.

EXAMPLES:

  nutrition transform_load
  nutrition load --db /tmp/Nutrition.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := etl.NewLoader(cfg.DatabasePath(), cfg.Table, logger)

		path, err := loader.Load(cmd.Context(), cfg.SubsetPath())
		if err != nil {
			return fmt.Errorf("transform_load: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Data successfully loaded into %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(loadCmd)
}
