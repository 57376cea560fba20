// ABOUTME: Record CRUD and filter queries against the destination table.
// ABOUTME: Point lookup, list, soda threshold and heart disease filters.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/harperreed/nutrition/internal/etlerr"
	"github.com/harperreed/nutrition/internal/models"
)

// CreateTable creates the destination table if it does not exist.
func (d *DB) CreateTable(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, createTableSQL(d.table, true)); err != nil {
		return etlerr.Wrap(etlerr.KindDatabase, "create table", err)
	}
	return nil
}

// Insert adds a new record.
func (d *DB) Insert(ctx context.Context, r *models.Record) error {
	if _, err := d.db.ExecContext(ctx, insertSQL(d.table), r.Values()...); err != nil {
		return etlerr.Wrap(etlerr.KindDatabase, fmt.Sprintf("insert record %d", r.ID), err)
	}
	return nil
}

// Patch sets the given columns of the record with the given ID in one
// UPDATE statement. Column names must come from models.Columns; ID cannot
// be changed.
func (d *DB) Patch(ctx context.Context, id int64, set map[string]any) error {
	if len(set) == 0 {
		return etlerr.New(etlerr.KindDatabase, fmt.Sprintf("patch record %d", id), "no columns to set")
	}
	cols := make([]string, 0, len(set))
	for col := range set {
		if col == models.ColID || !slices.Contains(models.Columns, col) {
			return etlerr.New(etlerr.KindDatabase, fmt.Sprintf("patch record %d", id), "unknown column %q", col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		args = append(args, set[col])
	}
	args = append(args, id)

	result, err := d.db.ExecContext(ctx, patchSQL(d.table, cols), args...)
	if err != nil {
		return etlerr.Wrap(etlerr.KindDatabase, fmt.Sprintf("patch record %d", id), err)
	}
	return requireAffected(result, id)
}

// Delete removes the record with the given ID.
func (d *DB) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE ID = ?", quoteIdent(d.table))
	result, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return etlerr.Wrap(etlerr.KindDatabase, fmt.Sprintf("delete record %d", id), err)
	}
	return requireAffected(result, id)
}

func requireAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return etlerr.Wrap(etlerr.KindDatabase, "rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Get retrieves a record by ID.
func (d *DB) Get(ctx context.Context, id int64) (*models.Record, error) {
	var r models.Record
	err := d.db.QueryRowContext(ctx, selectAllSQL(d.table)+" WHERE ID = ?", id).Scan(r.Pointers()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, etlerr.Wrap(etlerr.KindDatabase, fmt.Sprintf("get record %d", id), err)
	}
	return &r, nil
}

// List returns up to limit records. A limit of 0 or less returns all rows.
func (d *DB) List(ctx context.Context, limit int) ([]*models.Record, error) {
	query := selectAllSQL(d.table)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, etlerr.Wrap(etlerr.KindDatabase, "list records", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(r.Pointers()...); err != nil {
			return nil, etlerr.Wrap(etlerr.KindDatabase, "scan record", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, etlerr.Wrap(etlerr.KindDatabase, "list records", err)
	}
	return records, nil
}

// All returns every record ordered by ID.
func (d *DB) All(ctx context.Context) ([]*models.Record, error) {
	rows, err := d.db.QueryContext(ctx, selectAllSQL(d.table)+" ORDER BY ID")
	if err != nil {
		return nil, etlerr.Wrap(etlerr.KindDatabase, "list records", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(r.Pointers()...); err != nil {
			return nil, etlerr.Wrap(etlerr.KindDatabase, "scan record", err)
		}
		records = append(records, &r)
	}
	return records, etlerr.Wrap(etlerr.KindDatabase, "list records", rows.Err())
}

// Count returns the number of records in the destination table.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(d.table))
	if err := d.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, etlerr.Wrap(etlerr.KindDatabase, "count records", err)
	}
	return n, nil
}

// SodaAbove returns up to limit rows whose soda frequency is strictly
// greater than threshold.
func (d *DB) SodaAbove(ctx context.Context, threshold int64, limit int) ([]models.SodaSummary, error) {
	query := fmt.Sprintf(
		"SELECT ID, SODAFREQ, EGGSFREQ, FRIESFREQ FROM %s WHERE SODAFREQ > ? LIMIT ?",
		quoteIdent(d.table))

	rows, err := d.db.QueryContext(ctx, query, threshold, limit)
	if err != nil {
		return nil, etlerr.Wrap(etlerr.KindDatabase, "query soda frequency", err)
	}
	defer rows.Close()

	var out []models.SodaSummary
	for rows.Next() {
		var s models.SodaSummary
		if err := rows.Scan(&s.ID, &s.SodaFreq, &s.EggsFreq, &s.FriesFreq); err != nil {
			return nil, etlerr.Wrap(etlerr.KindDatabase, "scan soda summary", err)
		}
		out = append(out, s)
	}
	return out, etlerr.Wrap(etlerr.KindDatabase, "query soda frequency", rows.Err())
}

// WithHeartDisease returns up to limit rows whose heart_disease column
// equals value exactly.
func (d *DB) WithHeartDisease(ctx context.Context, value string, limit int) ([]models.HeartSummary, error) {
	query := fmt.Sprintf(
		"SELECT ID, EGGSFREQ, GREENSALADFREQ, FRIESFREQ, SODAFREQ FROM %s WHERE heart_disease = ? LIMIT ?",
		quoteIdent(d.table))

	rows, err := d.db.QueryContext(ctx, query, value, limit)
	if err != nil {
		return nil, etlerr.Wrap(etlerr.KindDatabase, "query heart disease", err)
	}
	defer rows.Close()

	var out []models.HeartSummary
	for rows.Next() {
		var h models.HeartSummary
		if err := rows.Scan(&h.ID, &h.EggsFreq, &h.GreenSaladFreq, &h.FriesFreq, &h.SodaFreq); err != nil {
			return nil, etlerr.Wrap(etlerr.KindDatabase, "scan heart summary", err)
		}
		out = append(out, h)
	}
	return out, etlerr.Wrap(etlerr.KindDatabase, "query heart disease", rows.Err())
}
