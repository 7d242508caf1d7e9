package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/socom/billing-service/internal/models"
)

// CustomerLookup resolves customer identifiers against the customer service.
type CustomerLookup interface {
	FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
}

// CustomerClient is the HTTP implementation of CustomerLookup.
type CustomerClient struct {
	baseURL string
	client  *http.Client
}

var _ CustomerLookup = (*CustomerClient)(nil)

// NewCustomerClient creates a client for the customer service at baseURL.
// The http.Client should carry an explicit timeout.
func NewCustomerClient(baseURL string, client *http.Client) *CustomerClient {
	return &CustomerClient{baseURL: baseURL, client: client}
}

// FindCustomerByID fetches one customer from GET /customers/{id}.
func (c *CustomerClient) FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	url := fmt.Sprintf("%s/customers/%d", c.baseURL, id)
	if err := getJSON(ctx, c.client, "customer", url, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
