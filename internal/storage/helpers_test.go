// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides isolated temp databases and the sample records used across tests.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/harperreed/nutrition/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath, "Nutrition")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRecords() []*models.Record {
	return []*models.Record{
		{ID: 1, Cancer: "Yes", Diabetes: "No", HeartDisease: "No",
			EggsFreq: 2, GreenSaladFreq: 5, FriesFreq: 3, MilkFreq: 4, SodaFreq: 1, CoffeeFreq: 2, CakesFreq: 3},
		{ID: 2, Cancer: "No", Diabetes: "Yes", HeartDisease: "Yes",
			EggsFreq: 4, GreenSaladFreq: 3, FriesFreq: 2, MilkFreq: 5, SodaFreq: 2, CoffeeFreq: 4, CakesFreq: 1},
	}
}

// iterate adapts a slice to a RecordIterator.
func iterate(records []*models.Record) RecordIterator {
	i := 0
	return func() (*models.Record, error) {
		if i >= len(records) {
			return nil, io.EOF
		}
		r := records[i]
		i++
		return r, nil
	}
}

func seed(t *testing.T, db *DB, records []*models.Record) {
	t.Helper()
	if _, err := db.Reload(context.Background(), iterate(records)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}
