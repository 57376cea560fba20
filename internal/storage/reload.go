// ABOUTME: Full-refresh load of the destination table.
// ABOUTME: Drops, recreates and fills the table inside a single transaction.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/harperreed/nutrition/internal/etlerr"
	"github.com/harperreed/nutrition/internal/models"
)

// RecordIterator yields the next record to load, or io.EOF when done.
type RecordIterator func() (*models.Record, error)

// Reload replaces the destination table with the records produced by next.
// Any error rolls back the drop as well, leaving the previous contents intact.
func (d *DB) Reload(ctx context.Context, next RecordIterator) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, etlerr.Wrap(etlerr.KindDatabase, "begin load", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, dropTableSQL(d.table)); err != nil {
		return 0, etlerr.Wrap(etlerr.KindDatabase, "drop table", err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(d.table, false)); err != nil {
		return 0, etlerr.Wrap(etlerr.KindDatabase, "create table", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(d.table))
	if err != nil {
		return 0, etlerr.Wrap(etlerr.KindDatabase, "prepare insert", err)
	}
	defer stmt.Close()

	count := 0
	for {
		r, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, r.Values()...); err != nil {
			return 0, etlerr.Wrap(etlerr.KindDatabase, "insert record", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, etlerr.Wrap(etlerr.KindDatabase, "commit load", err)
	}
	return count, nil
}
