package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/socom/billing-service/internal/models"
	"github.com/socom/billing-service/internal/remote"
	"github.com/socom/billing-service/internal/service"
	"github.com/socom/billing-service/internal/storage"
	"github.com/socom/billing-service/internal/storage/sqlite"
)

// setupTestServer builds the full stack: temp SQLite store, fake customer and
// inventory services over httptest, real HTTP clients, real bill service.
func setupTestServer(t *testing.T) (*Server, storage.Store) {
	t.Helper()

	remoteMux := http.NewServeMux()
	remoteMux.HandleFunc("/customers/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"name":"Alice","email":"a@x.com"}`))
	})
	remoteMux.HandleFunc("/customers/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "customer service down", http.StatusInternalServerError)
	})
	remoteMux.HandleFunc("/products/10", func(w http.ResponseWriter, r *http.Request) {
		// Current catalog price has drifted from the stored line price.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":10,"name":"Widget","price":6.0}`))
	})
	remoteMux.HandleFunc("/products/20", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":20,"name":"Gadget","price":9.0}`))
	})
	remoteServer := httptest.NewServer(remoteMux)
	t.Cleanup(remoteServer.Close)

	tempDir, err := os.MkdirTemp("", "billing-server-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	httpClient := &http.Client{Timeout: 2 * time.Second}
	customers := remote.NewCustomerClient(remoteServer.URL, httpClient)
	products := remote.NewProductClient(remoteServer.URL, httpClient)

	return New(service.NewBillService(store, customers, products)), store
}

func storeBill(t *testing.T, store storage.Store, customerID int64, items []models.ProductItem) int64 {
	t.Helper()

	ctx := context.Background()
	bill := &models.Bill{CustomerID: customerID}
	if err := store.SaveBill(ctx, bill); err != nil {
		t.Fatalf("SaveBill failed: %v", err)
	}
	for i := range items {
		items[i].BillID = bill.ID
		if err := store.SaveProductItem(ctx, &items[i]); err != nil {
			t.Fatalf("SaveProductItem failed: %v", err)
		}
	}
	return bill.ID
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("Failed to decode body %q: %v", body, err)
	}
}

func TestGetFullBillEndpoint(t *testing.T) {
	s, store := setupTestServer(t)
	billID := storeBill(t, store, 1, []models.ProductItem{
		{ProductID: 10, Price: 5.0, Quantity: 2},
		{ProductID: 20, Price: 9.0, Quantity: 1},
	})

	resp := s.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/fullBill/%d", billID), nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	decodeBody(t, resp, &body)

	if _, ok := body["customerID"]; ok {
		t.Error("customerID is write-only and must not appear in the response")
	}
	if _, ok := body["billingDate"]; !ok {
		t.Error("Expected billingDate in response")
	}

	customer, ok := body["customer"].(map[string]any)
	if !ok {
		t.Fatalf("Expected nested customer object, got %v", body["customer"])
	}
	if customer["name"] != "Alice" || customer["email"] != "a@x.com" {
		t.Errorf("Customer mismatch: %v", customer)
	}

	items, ok := body["productItems"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("Expected 2 product items, got %v", body["productItems"])
	}

	first, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("Expected item object, got %v", items[0])
	}
	if _, ok := first["productID"]; ok {
		t.Error("productID is write-only and must not appear in the response")
	}
	if first["price"] != 5.0 {
		t.Errorf("Stored price must be preserved: got %v, want 5", first["price"])
	}
	if first["quantity"] != 2.0 {
		t.Errorf("Quantity mismatch: got %v, want 2", first["quantity"])
	}

	product, ok := first["product"].(map[string]any)
	if !ok {
		t.Fatalf("Expected nested product object, got %v", first["product"])
	}
	if product["name"] != "Widget" || product["price"] != 6.0 {
		t.Errorf("Product mismatch: %v", product)
	}
}

func TestGetFullBillEndpoint_NotFound(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := s.Test(httptest.NewRequest(http.MethodGet, "/fullBill/99999", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestGetFullBillEndpoint_InvalidID(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := s.Test(httptest.NewRequest(http.MethodGet, "/fullBill/abc", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestGetFullBillEndpoint_RemoteFailure(t *testing.T) {
	s, store := setupTestServer(t)
	// Customer 500 makes the customer service answer with an error.
	billID := storeBill(t, store, 500, []models.ProductItem{
		{ProductID: 10, Price: 5.0, Quantity: 1},
	})

	resp := s.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/fullBill/%d", billID), nil))
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502 when a remote dependency fails, got %d", resp.StatusCode)
	}
}

func TestGetFullBillEndpoint_RemoteNotFound(t *testing.T) {
	s, store := setupTestServer(t)
	// Customer 7 is unknown to the customer service.
	billID := storeBill(t, store, 7, nil)

	resp := s.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/fullBill/%d", billID), nil))
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502 when the remote customer is missing, got %d", resp.StatusCode)
	}
}

func TestBillEndpoints(t *testing.T) {
	s, _ := setupTestServer(t)

	t.Run("create bill", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bills",
			strings.NewReader(`{"customerID":1,"billingDate":"2024-03-15T10:30:00Z"}`))
		req.Header.Set("Content-Type", "application/json")

		resp := s.Test(req)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}

		var bill models.Bill
		decodeBody(t, resp, &bill)
		if bill.ID == 0 {
			t.Error("Expected assigned bill id")
		}
		if bill.CustomerID != 1 {
			t.Errorf("CustomerID mismatch: got %d", bill.CustomerID)
		}

		getResp := s.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/bills/%d", bill.ID), nil))
		if getResp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", getResp.StatusCode)
		}
		var raw map[string]any
		decodeBody(t, getResp, &raw)
		if _, ok := raw["customer"]; ok {
			t.Error("Direct bill reads must not be hydrated with remote customer data")
		}
	})

	t.Run("create bill without customerID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bills", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp := s.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("list bills", func(t *testing.T) {
		resp := s.Test(httptest.NewRequest(http.MethodGet, "/bills", nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var bills []models.Bill
		decodeBody(t, resp, &bills)
		if len(bills) == 0 {
			t.Error("Expected at least one bill")
		}
	})

	t.Run("missing bill", func(t *testing.T) {
		resp := s.Test(httptest.NewRequest(http.MethodGet, "/bills/99999", nil))
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestProductItemEndpoints(t *testing.T) {
	s, store := setupTestServer(t)
	billID := storeBill(t, store, 1, nil)

	t.Run("create item", func(t *testing.T) {
		payload := fmt.Sprintf(`{"billID":%d,"productID":10,"price":5.0,"quantity":2}`, billID)
		req := httptest.NewRequest(http.MethodPost, "/productItems", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp := s.Test(req)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}

		var item models.ProductItem
		decodeBody(t, resp, &item)
		if item.ID == 0 {
			t.Error("Expected assigned item id")
		}
		if item.BillID != billID || item.ProductID != 10 {
			t.Errorf("Item mismatch: %+v", item)
		}
	})

	t.Run("create item without bill reference", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/productItems",
			strings.NewReader(`{"productID":10,"price":5.0,"quantity":2}`))
		req.Header.Set("Content-Type", "application/json")

		resp := s.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("create item against missing bill", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/productItems",
			strings.NewReader(`{"billID":99999,"productID":10,"price":5.0,"quantity":2}`))
		req.Header.Set("Content-Type", "application/json")

		resp := s.Test(req)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("list items", func(t *testing.T) {
		resp := s.Test(httptest.NewRequest(http.MethodGet, "/productItems", nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var items []models.ProductItem
		decodeBody(t, resp, &items)
		if len(items) != 1 {
			t.Errorf("Expected 1 item, got %d", len(items))
		}
	})
}

func TestHealthz(t *testing.T) {
	s, _ := setupTestServer(t)

	resp := s.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}
