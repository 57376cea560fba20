// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the loaded nutrition table.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/nutrition/internal/mcp"
	"github.com/harperreed/nutrition/internal/storage"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and opens the database for each
request, so it always sees the latest load.

CONFIGURATION:

  {
    "mcpServers": {
      "nutrition": {
        "command": "nutrition",
        "args": ["mcp", "--db", "/path/to/Nutrition.db"]
      }
    }
  }

AVAILABLE TOOLS:

  list_records    List rows with every column
  find_record     Look up one respondent by ID
  frequent_soda   Rows with soda frequency above a threshold
  heart_disease   Rows matching a heart_disease answer
  record_count    Number of loaded rows

AVAILABLE RESOURCES:

  nutrition://summary   Row count and the first rows`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(func() (storage.Repository, error) {
			return openDB()
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Debug("mcp server starting", "db", cfg.DatabasePath())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
