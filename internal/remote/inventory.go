package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/socom/billing-service/internal/models"
)

// ProductLookup resolves product identifiers against the inventory service.
type ProductLookup interface {
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)

	// FindAllProducts returns one page of the product catalog. Callers
	// consume the content of that single page; multi-page traversal is
	// not implemented.
	FindAllProducts(ctx context.Context) (*models.ProductPage, error)
}

// ProductClient is the HTTP implementation of ProductLookup.
type ProductClient struct {
	baseURL string
	client  *http.Client
}

var _ ProductLookup = (*ProductClient)(nil)

// NewProductClient creates a client for the inventory service at baseURL.
// The http.Client should carry an explicit timeout.
func NewProductClient(baseURL string, client *http.Client) *ProductClient {
	return &ProductClient{baseURL: baseURL, client: client}
}

// FindProductByID fetches one product from GET /products/{id}.
func (c *ProductClient) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	if err := getJSON(ctx, c.client, "inventory", url, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAllProducts fetches one page of products from GET /products.
func (c *ProductClient) FindAllProducts(ctx context.Context) (*models.ProductPage, error) {
	var page models.ProductPage
	url := fmt.Sprintf("%s/products", c.baseURL)
	if err := getJSON(ctx, c.client, "inventory", url, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
