package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/socom/billing-service/internal/models"
	"github.com/socom/billing-service/internal/storage"
)

// SaveProductItem persists a new product item against its bill.
func (s *SQLiteStore) SaveProductItem(ctx context.Context, item *models.ProductItem) error {
	if item.BillID == 0 {
		return fmt.Errorf("product item requires a parent bill")
	}

	// Check the bill exists up front: the driver's foreign key violation
	// is not distinguishable from other constraint errors.
	var exists int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM bills WHERE id = ?", item.BillID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("bill %d: %w", item.BillID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check bill: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO product_items (bill_id, product_id, price, quantity) VALUES (?, ?, ?, ?)",
		item.BillID, item.ProductID, item.Price, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read product item id: %w", err)
	}
	item.ID = id

	return nil
}

// ListProductItems retrieves all product items across all bills.
func (s *SQLiteStore) ListProductItems(ctx context.Context) ([]*models.ProductItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, bill_id, product_id, price, quantity FROM product_items ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list product items: %w", err)
	}
	defer rows.Close()

	var items []*models.ProductItem
	for rows.Next() {
		item := &models.ProductItem{}
		if err := rows.Scan(&item.ID, &item.BillID, &item.ProductID, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan product item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product items: %w", err)
	}

	return items, nil
}
