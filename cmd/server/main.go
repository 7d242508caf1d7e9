package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/socom/billing-service/internal/config"
	"github.com/socom/billing-service/internal/remote"
	"github.com/socom/billing-service/internal/seed"
	"github.com/socom/billing-service/internal/server"
	"github.com/socom/billing-service/internal/service"
	"github.com/socom/billing-service/internal/storage/sqlite"
	"github.com/socom/billing-service/pkg/logging"
)

func main() {
	cfg := config.FromEnv()
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	customers := remote.NewCustomerClient(cfg.CustomerServiceURL, httpClient)
	products := remote.NewProductClient(cfg.InventoryServiceURL, httpClient)

	if cfg.SeedEnabled {
		if err := seed.New(store, customers, products).Run(context.Background()); err != nil {
			slog.Error("Seed failed", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("Seeding disabled")
	}

	srv := server.New(service.NewBillService(store, customers, products))

	// HTTP/2 without TLS for service-to-service traffic
	h2cHandler := h2c.NewHandler(srv.Handler(), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Billing server starting",
		"address", addr,
		"customer_service", cfg.CustomerServiceURL,
		"inventory_service", cfg.InventoryServiceURL,
	)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
