// ABOUTME: Load stage: full-refresh import of the subset file into the database.
// ABOUTME: Parses each CSV row into a typed record and replaces the destination table.
package etl

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutrition/internal/etlerr"
	"github.com/harperreed/nutrition/internal/logging"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/storage"
)

// Loader imports a subset file into the configured database and table.
type Loader struct {
	DBPath string
	Table  string
	Logger *log.Logger
}

// NewLoader returns a Loader for the given database file and table.
func NewLoader(dbPath, table string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loader{DBPath: dbPath, Table: table, Logger: logger}
}

// Load drops and recreates the destination table and fills it from the
// subset file at subsetPath. It returns the database path. A failure at
// any row leaves the previous table contents untouched.
func (l *Loader) Load(ctx context.Context, subsetPath string) (string, error) {
	f, err := os.Open(subsetPath)
	if err != nil {
		return "", etlerr.WrapPath(etlerr.KindIO, "open subset file", subsetPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Row width is checked by ParseRecord, not the CSV reader.
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return "", etlerr.WrapPath(etlerr.KindCSV, "read subset header", subsetPath, err)
	}

	db, err := storage.Open(l.DBPath, l.Table)
	if err != nil {
		return "", err
	}
	defer db.Close()

	line := 1
	next := func() (*models.Record, error) {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, etlerr.WrapPath(etlerr.KindCSV, "read subset record", subsetPath, err)
		}
		line++

		r, err := models.ParseRecord(fields)
		if err != nil {
			l.Logger.Debug("rejecting row", "line", line, "err", err)
			return nil, etlerr.WrapPath(etlerr.KindParse, fmt.Sprintf("parse line %d of", line), subsetPath, err)
		}
		return r, nil
	}

	n, err := db.Reload(ctx, next)
	if err != nil {
		return "", err
	}

	l.Logger.Info("data loaded", "db", l.DBPath, "table", db.Table(), "rows", n)
	return l.DBPath, nil
}
