// ABOUTME: CLI commands for reading the loaded table.
// ABOUTME: Soda threshold and heart disease filters plus point lookup by ID.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/report"
	"github.com/harperreed/nutrition/internal/storage"
	"github.com/spf13/cobra"
)

var (
	sodaThreshold int64
	heartValue    string
	queryLimit    int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Show frequent soda drinkers and heart disease respondents",
	Long: `Run two filters against the loaded table and print each as a table.

FILTERS:

  Soda            rows whose soda frequency is strictly above --threshold
                  columns: ID, soda, eggs, fries
  Heart disease   rows whose heart_disease answer equals --value exactly
                  columns: ID, eggs, salad, fries, soda

Both filters return at most --limit rows. The second filter still runs when
the first one fails.

EXAMPLES:

  nutrition query
  nutrition query --threshold 5 --limit 10
  nutrition query --value No`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryLimit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", queryLimit)
		}
		out := cmd.OutOrStdout()

		sodaErr := func() error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.SodaAbove(cmd.Context(), sodaThreshold, queryLimit)
			if err != nil {
				return err
			}
			return report.SodaSummaries(out, rows)
		}()
		if sodaErr != nil {
			sodaErr = fmt.Errorf("query frequent soda: %w", sodaErr)
		}

		heartErr := func() error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.WithHeartDisease(cmd.Context(), heartValue, queryLimit)
			if err != nil {
				return err
			}
			return report.HeartSummaries(out, rows)
		}()
		if heartErr != nil {
			heartErr = fmt.Errorf("query heart disease: %w", heartErr)
		}

		return errors.Join(sodaErr, heartErr)
	},
}

var findCmd = &cobra.Command{
	Use:     "find_user <id>",
	Aliases: []string{"find"},
	Short:   "Look up one respondent by ID",
	Long: `Print every column of the respondent with the given ID, or a message
naming the ID when no such row exists.

A negative ID must follow -- so it is not read as a flag; put any flags
before the --.

EXAMPLES:

  nutrition find_user 1005
  nutrition find 1
  nutrition find_user --db /tmp/Nutrition.db -- -5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID provided: %q", args[0])
		}

		db, err := openDB()
		if err != nil {
			return fmt.Errorf("find_user: %w", err)
		}
		defer db.Close()

		record, err := db.Get(cmd.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "No user found with ID: %d\n", id)
			return nil
		}
		if err != nil {
			return fmt.Errorf("find_user: %w", err)
		}

		return report.Records(cmd.OutOrStdout(), []*models.Record{record})
	},
}

func init() {
	queryCmd.Flags().Int64Var(&sodaThreshold, "threshold", 3, "soda frequency must be strictly greater than this")
	queryCmd.Flags().StringVar(&heartValue, "value", "Yes", "heart_disease answer to match exactly")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 5, "maximum rows per filter")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(findCmd)
}
