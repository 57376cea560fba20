// ABOUTME: Repository interface for nutrition record storage.
// ABOUTME: Defines the contract for record CRUD, filter queries and full-refresh load.
package storage

import (
	"context"

	"github.com/harperreed/nutrition/internal/models"
)

// Repository defines the storage interface for nutrition records.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Table lifecycle
	CreateTable(ctx context.Context) error
	Reload(ctx context.Context, next RecordIterator) (int, error)

	// Record operations
	Insert(ctx context.Context, r *models.Record) error
	Patch(ctx context.Context, id int64, set map[string]any) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Record, error)
	List(ctx context.Context, limit int) ([]*models.Record, error)
	Count(ctx context.Context) (int, error)

	// Filter queries
	SodaAbove(ctx context.Context, threshold int64, limit int) ([]models.SodaSummary, error)
	WithHeartDisease(ctx context.Context, value string, limit int) ([]models.HeartSummary, error)

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
