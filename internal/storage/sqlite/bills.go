package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/socom/billing-service/internal/models"
	"github.com/socom/billing-service/internal/storage"
)

// SaveBill persists a new bill to the database.
func (s *SQLiteStore) SaveBill(ctx context.Context, bill *models.Bill) error {
	if bill.BillingDate.IsZero() {
		bill.BillingDate = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO bills (billing_date, customer_id) VALUES (?, ?)",
		bill.BillingDate.Unix(), bill.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read bill id: %w", err)
	}
	bill.ID = id

	return nil
}

// GetBill retrieves a bill by id, including all its product items.
func (s *SQLiteStore) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	bill := &models.Bill{}
	var billingDate int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, billing_date, customer_id FROM bills WHERE id = ?",
		id,
	).Scan(&bill.ID, &billingDate, &bill.CustomerID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.BillingDate = time.Unix(billingDate, 0)

	items, err := s.itemsForBill(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	bill.Items = items

	return bill, nil
}

// ListBills retrieves all bills with their product items.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, billing_date, customer_id FROM bills ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		var billingDate int64
		if err := rows.Scan(&bill.ID, &billingDate, &bill.CustomerID); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill.BillingDate = time.Unix(billingDate, 0)
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for _, bill := range bills {
		items, err := s.itemsForBill(ctx, bill.ID)
		if err != nil {
			return nil, err
		}
		bill.Items = items
	}

	return bills, nil
}

// itemsForBill loads the product items belonging to one bill, ordered by id.
func (s *SQLiteStore) itemsForBill(ctx context.Context, billID int64) ([]models.ProductItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, bill_id, product_id, price, quantity FROM product_items WHERE bill_id = ? ORDER BY id",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get product items: %w", err)
	}
	defer rows.Close()

	var items []models.ProductItem
	for rows.Next() {
		var item models.ProductItem
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
