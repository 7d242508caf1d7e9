// Package seed bootstraps the database with a sample bill on first start.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/socom/billing-service/internal/models"
	"github.com/socom/billing-service/internal/remote"
	"github.com/socom/billing-service/internal/storage"
)

const (
	// markerKey records that the initial bill has been seeded, so a
	// restart does not create duplicates.
	markerKey = "initial-bill"

	seedCustomerID = 1
	seedQuantity   = 11.0
)

// Seeder creates one sample bill from live remote data: the customer with a
// fixed id and one product item per product in the current catalog, with the
// product's price captured at seed time.
type Seeder struct {
	store     storage.Store
	customers remote.CustomerLookup
	products  remote.ProductLookup
}

// New creates a Seeder over the given store and remote lookups.
func New(store storage.Store, customers remote.CustomerLookup, products remote.ProductLookup) *Seeder {
	return &Seeder{store: store, customers: customers, products: products}
}

// Run seeds the sample bill. It is idempotent: once the marker is recorded,
// subsequent runs are a no-op. Any remote or storage failure aborts the run
// and leaves the marker unset.
func (s *Seeder) Run(ctx context.Context) error {
	seeded, err := s.store.IsSeeded(ctx, markerKey)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if seeded {
		slog.Info("Seed already applied, skipping", "key", markerKey)
		return nil
	}

	customer, err := s.customers.FindCustomerByID(ctx, seedCustomerID)
	if err != nil {
		return fmt.Errorf("seed: fetch customer %d: %w", seedCustomerID, err)
	}
	slog.Info("Seeding bill for customer",
		"customer_id", customer.ID, "name", customer.Name, "email", customer.Email)

	bill := &models.Bill{
		BillingDate: time.Now(),
		CustomerID:  customer.ID,
	}
	if err := s.store.SaveBill(ctx, bill); err != nil {
		return fmt.Errorf("seed: save bill: %w", err)
	}

	page, err := s.products.FindAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("seed: fetch products: %w", err)
	}

	for _, product := range page.Content {
		item := &models.ProductItem{
			BillID:    bill.ID,
			ProductID: product.ID,
			Price:     product.Price,
			Quantity:  seedQuantity,
		}
		if err := s.store.SaveProductItem(ctx, item); err != nil {
			return fmt.Errorf("seed: save item for product %d: %w", product.ID, err)
		}
	}

	if err := s.store.MarkSeeded(ctx, markerKey); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	slog.Info("Seed complete", "bill_id", bill.ID, "items", len(page.Content))
	return nil
}
