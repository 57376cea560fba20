// ABOUTME: SQLite schema definition for the destination table.
// ABOUTME: Builds DROP/CREATE/INSERT statements from the fixed column layout.
package storage

import (
	"fmt"
	"strings"

	"github.com/harperreed/nutrition/internal/models"
)

func quoteIdent(name string) string {
	return `"` + name + `"`
}

// createTableSQL returns the DDL for the destination table.
func createTableSQL(table string, ifNotExists bool) string {
	guard := ""
	if ifNotExists {
		guard = "IF NOT EXISTS "
	}
	return fmt.Sprintf(`
	CREATE TABLE %s%s (
		ID INTEGER PRIMARY KEY,
		cancer TEXT,
		diabetes TEXT,
		heart_disease TEXT,
		EGGSFREQ INTEGER,
		GREENSALADFREQ INTEGER,
		FRIESFREQ INTEGER,
		MILKFREQ INTEGER,
		SODAFREQ INTEGER,
		COFFEEFREQ INTEGER,
		CAKESFREQ INTEGER
	)`, guard, quoteIdent(table))
}

func dropTableSQL(table string) string {
	return "DROP TABLE IF EXISTS " + quoteIdent(table)
}

func insertSQL(table string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(models.Columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(models.Columns, ", "), placeholders)
}

func patchSQL(table string, cols []string) string {
	sets := make([]string, 0, len(cols))
	for _, col := range cols {
		sets = append(sets, col+" = ?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE ID = ?", quoteIdent(table), strings.Join(sets, ", "))
}

func selectAllSQL(table string) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(models.Columns, ", "), quoteIdent(table))
}
