// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/harperreed/nutrition/internal/etlerr"
	_ "modernc.org/sqlite"
)

// DefaultTable is the destination table name used when none is configured.
const DefaultTable = "Nutrition"

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name can be used as the destination table.
func ValidTableName(name string) bool {
	return identPattern.MatchString(name)
}

// DB wraps the SQLite database connection and the destination table it serves.
type DB struct {
	db     *sql.DB
	dbPath string
	table  string
}

// Open opens or creates a SQLite database at the given path.
// The table is not created here; Reload and CreateTable own its lifecycle.
func Open(dbPath, table string) (*DB, error) {
	if table == "" {
		table = DefaultTable
	}
	if !ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, etlerr.WrapPath(etlerr.KindIO, "create data directory", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, etlerr.WrapPath(etlerr.KindDatabase, "open database", dbPath, err)
	}
	// One connection: pragmas apply to it and every operation is sequential.
	db.SetMaxOpenConns(1)

	d := &DB{db: db, dbPath: dbPath, table: table}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, etlerr.WrapPath(etlerr.KindDatabase, "configure pragmas", dbPath, err)
	}

	return d, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Table returns the destination table name.
func (d *DB) Table() string {
	return d.table
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for a single local writer.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
