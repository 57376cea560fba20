// ABOUTME: CLI command for the CRUD walkthrough.
// ABOUTME: Runs create/insert/update/delete against sample rows with tables in between.
package main

import (
	"fmt"

	"github.com/harperreed/nutrition/internal/demo"
	"github.com/spf13/cobra"
)

var crudCmd = &cobra.Command{
	Use:   "crud",
	Short: "Run the CRUD walkthrough",
	Long: `Create the table if needed, insert two sample rows (IDs 1 and 2), update
ID 1, delete ID 2, and list up to five rows after each step.

The sample IDs are inserted as new rows, so running crud twice against the
same database fails on the second insert.

EXAMPLES:

  nutrition crud
  nutrition crud --db /tmp/demo.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("crud: %w", err)
		}
		defer db.Close()

		if err := demo.Run(cmd.Context(), db, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("crud: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crudCmd)
}
