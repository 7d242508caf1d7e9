// Package service implements the billing operations exposed over HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/socom/billing-service/internal/models"
	"github.com/socom/billing-service/internal/remote"
	"github.com/socom/billing-service/internal/storage"
)

// BillService holds the billing use cases: plain CRUD over the local store
// and the cross-service aggregation read (GetFullBill).
type BillService struct {
	store     storage.Store
	customers remote.CustomerLookup
	products  remote.ProductLookup
}

// NewBillService creates a BillService over the given store and remote lookups.
func NewBillService(store storage.Store, customers remote.CustomerLookup, products remote.ProductLookup) *BillService {
	return &BillService{store: store, customers: customers, products: products}
}

// GetFullBill loads a bill and resolves its remote references into a FullBill:
// the customer behind bill.CustomerID and, for every item, the product behind
// item.ProductID. Stored price and quantity are preserved verbatim; the remote
// product's current price never overwrites them.
//
// Enrichment is all-or-nothing. If the bill is absent no remote call is made;
// if any lookup fails the whole operation fails and no partially hydrated
// bill is returned. Product lookups fan out concurrently, first failure wins.
func (s *BillService) GetFullBill(ctx context.Context, id int64) (*models.FullBill, error) {
	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.FindCustomerByID(ctx, bill.CustomerID)
	if err != nil {
		slog.Warn("GetFullBill: customer lookup failed",
			"bill_id", id, "customer_id", bill.CustomerID, "error", err)
		return nil, fmt.Errorf("customer %d for bill %d: %w", bill.CustomerID, id, err)
	}

	full := &models.FullBill{
		ID:          bill.ID,
		BillingDate: bill.BillingDate,
		Customer:    customer,
		Items:       make([]models.FullProductItem, len(bill.Items)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range bill.Items {
		g.Go(func() error {
			product, err := s.products.FindProductByID(gctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %d for item %d: %w", item.ProductID, item.ID, err)
			}
			// Each slot is written by exactly one goroutine, so item
			// order matches storage order regardless of completion order.
			full.Items[i] = models.FullProductItem{
				ID:       item.ID,
				Price:    item.Price,
				Quantity: item.Quantity,
				Product:  product,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Warn("GetFullBill: product enrichment failed", "bill_id", id, "error", err)
		return nil, err
	}

	slog.Debug("GetFullBill: bill enriched", "bill_id", id, "items", len(full.Items))
	return full, nil
}

// CreateBill persists a new bill.
func (s *BillService) CreateBill(ctx context.Context, bill *models.Bill) error {
	if err := s.store.SaveBill(ctx, bill); err != nil {
		return err
	}
	slog.Info("Bill created", "bill_id", bill.ID, "customer_id", bill.CustomerID)
	return nil
}

// GetBill retrieves a bill by id without remote hydration.
func (s *BillService) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	return s.store.GetBill(ctx, id)
}

// ListBills retrieves all bills without remote hydration.
func (s *BillService) ListBills(ctx context.Context) ([]*models.Bill, error) {
	return s.store.ListBills(ctx)
}

// CreateProductItem persists a new product item against an existing bill.
func (s *BillService) CreateProductItem(ctx context.Context, item *models.ProductItem) error {
	if err := s.store.SaveProductItem(ctx, item); err != nil {
		return err
	}
	slog.Info("Product item created", "item_id", item.ID, "bill_id", item.BillID, "product_id", item.ProductID)
	return nil
}

// ListProductItems retrieves all product items.
func (s *BillService) ListProductItems(ctx context.Context) ([]*models.ProductItem, error) {
	return s.store.ListProductItems(ctx)
}
