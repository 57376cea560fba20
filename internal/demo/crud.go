// ABOUTME: Canned CRUD walkthrough against the destination table.
// ABOUTME: Creates, inserts, updates and deletes sample rows, listing the table between steps.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/report"
	"github.com/harperreed/nutrition/internal/storage"
)

// ListLimit is the number of rows shown between steps.
const ListLimit = 5

// SampleRecords are the two rows inserted by the walkthrough.
func SampleRecords() []*models.Record {
	return []*models.Record{
		{ID: 1, Cancer: "Yes", Diabetes: "No", HeartDisease: "No",
			EggsFreq: 2, GreenSaladFreq: 5, FriesFreq: 3, MilkFreq: 4, SodaFreq: 1, CoffeeFreq: 2, CakesFreq: 3},
		{ID: 2, Cancer: "No", Diabetes: "Yes", HeartDisease: "Yes",
			EggsFreq: 4, GreenSaladFreq: 3, FriesFreq: 2, MilkFreq: 5, SodaFreq: 2, CoffeeFreq: 4, CakesFreq: 1},
	}
}

// Run executes create, read, insert, read, update, read, delete, read,
// writing progress lines and tables to w. It stops at the first error.
func Run(ctx context.Context, repo storage.Repository, w io.Writer) error {
	steps := []func(context.Context, storage.Repository, io.Writer) error{
		createTable,
		readData,
		insertData,
		readData,
		updateData,
		readData,
		deleteData,
		readData,
	}
	for _, step := range steps {
		if err := step(ctx, repo, w); err != nil {
			return err
		}
	}
	return nil
}

func createTable(ctx context.Context, repo storage.Repository, w io.Writer) error {
	if err := repo.CreateTable(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w, "Table created successfully.")
	return nil
}

func readData(ctx context.Context, repo storage.Repository, w io.Writer) error {
	records, err := repo.List(ctx, ListLimit)
	if err != nil {
		return err
	}
	return report.Records(w, records)
}

func insertData(ctx context.Context, repo storage.Repository, w io.Writer) error {
	fmt.Fprintln(w, "Inserting Data")
	for _, r := range SampleRecords() {
		if err := repo.Insert(ctx, r); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "Sample data inserted successfully.")
	return nil
}

func updateData(ctx context.Context, repo storage.Repository, w io.Writer) error {
	fmt.Fprintln(w, "Updating ID 1 to 6 Eggs")
	err := repo.Patch(ctx, 1, map[string]any{
		models.ColEggsFreq: 6,
		models.ColCancer:   "No",
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Record updated successfully.")
	return nil
}

func deleteData(ctx context.Context, repo storage.Repository, w io.Writer) error {
	fmt.Fprintln(w, "Deleting Data")
	if err := repo.Delete(ctx, 2); err != nil {
		return err
	}
	fmt.Fprintln(w, "Record deleted successfully.")
	return nil
}
