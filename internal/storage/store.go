// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/socom/billing-service/internal/models"
)

// ErrNotFound is returned when a requested record does not exist locally.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for bill and product item storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// SaveBill persists a new bill. The bill.ID field is populated by the
	// store; a zero BillingDate defaults to the current time.
	SaveBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by id, including its product items.
	// Returns an error wrapping ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, id int64) (*models.Bill, error)

	// ListBills retrieves all bills, each including its product items.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// SaveProductItem persists a new item against its bill. The item.ID
	// field is populated by the store. The referenced bill must exist;
	// if it does not, an error wrapping ErrNotFound is returned.
	SaveProductItem(ctx context.Context, item *models.ProductItem) error

	// ListProductItems retrieves all product items across all bills.
	ListProductItems(ctx context.Context) ([]*models.ProductItem, error)

	// IsSeeded reports whether the seed marker with the given key has
	// been recorded.
	IsSeeded(ctx context.Context, key string) (bool, error)

	// MarkSeeded records the seed marker with the given key.
	MarkSeeded(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
