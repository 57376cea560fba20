// ABOUTME: Renders query results as aligned text tables.
// ABOUTME: Uses lipgloss/table with a normal box border and a header row.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/harperreed/nutrition/internal/models"
)

// Headers of the two filter projections.
var (
	SodaHeaders  = []string{"ID", "Soda Frequency", "Eggs Frequency", "Fries Frequency"}
	HeartHeaders = []string{"ID", "Eggs Frequency", "Salad Frequency", "Fries Frequency", "Soda Frequency"}
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Render writes headers and rows as a bordered table. An empty rows
// slice still renders the header.
func Render(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Records renders full-column records.
func Records(w io.Writer, records []*models.Record) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Strings())
	}
	return Render(w, models.DisplayHeaders, rows)
}

// SodaSummaries renders the soda threshold filter result.
func SodaSummaries(w io.Writer, summaries []models.SodaSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, s.Strings())
	}
	return Render(w, SodaHeaders, rows)
}

// HeartSummaries renders the heart disease filter result.
func HeartSummaries(w io.Writer, summaries []models.HeartSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, h := range summaries {
		rows = append(rows, h.Strings())
	}
	return Render(w, HeartHeaders, rows)
}
