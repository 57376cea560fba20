// ABOUTME: Root Cobra command for nutrition CLI.
// ABOUTME: Loads configuration and builds the logger via PersistentPreRunE.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutrition/internal/config"
	"github.com/harperreed/nutrition/internal/logging"
	"github.com/harperreed/nutrition/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *log.Logger

	configFile string
	dbPath     string
	dataDir    string
	tableName  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Nutrition survey extract/load/query tool",
	Long: `Nutrition downloads a nutrition survey dataset, keeps a small subset of it,
loads that subset into SQLite, and runs a few fixed queries against it.

PIPELINE:

  extract          Download the CSV and write data/Nutrition_subset.csv
                   (11 columns, first 100 rows)
  transform_load   Drop and recreate the Nutrition table from the subset file
  query            Frequent soda drinkers and respondents with heart disease
  find_user <id>   Look up one respondent by ID
  crud             Walk through create/insert/update/delete on sample rows

QUICK START:

  $ nutrition extract
  $ nutrition transform_load
  $ nutrition query
  $ nutrition find_user 1005

CONFIGURATION:

  Settings come from ~/.config/nutrition/config.yaml, a .env file in the
  working directory, and NUTRITION_* environment variables, in that order.
  The --db, --data-dir and --table flags override all of them.
  'nutrition config init' saves the combined result to the config file.

MCP INTEGRATION:

  Run 'nutrition mcp' to expose the loaded table to MCP-compatible AI
  assistants over stdio.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Argument validation has already passed; runtime errors skip usage.
		cmd.SilenceUsage = true

		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if tableName != "" {
			cfg.Table = tableName
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, _ = logging.WithRun(logging.New(cmd.ErrOrStderr(), verbose))
		logger.Debug("config loaded", "db", cfg.DatabasePath(), "data_dir", cfg.DataDir, "table", cfg.Table)
		return nil
	},
}

// Execute runs the root command. An unknown command prints the root usage,
// which cobra skips while errors are silenced.
func Execute() error {
	cmd, err := rootCmd.ExecuteC()
	if err != nil && cmd == rootCmd && strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	}
	return err
}

// openDB opens a short-lived connection to the configured table.
func openDB() (*storage.DB, error) {
	return storage.Open(cfg.DatabasePath(), cfg.Table)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ~/.config/nutrition/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: Nutrition.db)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for raw and subset CSV files (default: data)")
	rootCmd.PersistentFlags().StringVar(&tableName, "table", "", "destination table name (default: Nutrition)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
