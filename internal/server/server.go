// Package server exposes the billing operations over HTTP.
package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/socom/billing-service/internal/models"
	"github.com/socom/billing-service/internal/remote"
	"github.com/socom/billing-service/internal/service"
	"github.com/socom/billing-service/internal/storage"
)

// Server wires the billing service into an echo HTTP surface.
type Server struct {
	e       *echo.Echo
	billSvc *service.BillService
}

// New creates the HTTP server over the given bill service.
func New(billSvc *service.BillService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{e: e, billSvc: billSvc}

	e.HTTPErrorHandler = customHTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(observabilityMiddleware())

	// Aggregation read: bill + remote customer + remote products, all or nothing.
	e.GET("/fullBill/:id", func(c echo.Context) error {
		id, err := parseID(c.Param("id"))
		if err != nil {
			return err
		}

		full, err := s.billSvc.GetFullBill(c.Request().Context(), id)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, full)
	})

	// Plain repository surface over the local records, no hydration.
	e.GET("/bills", func(c echo.Context) error {
		bills, err := s.billSvc.ListBills(c.Request().Context())
		if err != nil {
			return err
		}
		if bills == nil {
			bills = []*models.Bill{}
		}

		return c.JSON(http.StatusOK, bills)
	})

	e.GET("/bills/:id", func(c echo.Context) error {
		id, err := parseID(c.Param("id"))
		if err != nil {
			return err
		}

		bill, err := s.billSvc.GetBill(c.Request().Context(), id)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, bill)
	})

	e.POST("/bills", func(c echo.Context) error {
		var req createBillRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		if req.CustomerID == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "customerID is required")
		}

		bill := &models.Bill{CustomerID: req.CustomerID}
		if req.BillingDate != nil {
			bill.BillingDate = *req.BillingDate
		}
		if err := s.billSvc.CreateBill(c.Request().Context(), bill); err != nil {
			return err
		}

		return c.JSON(http.StatusCreated, bill)
	})

	e.GET("/productItems", func(c echo.Context) error {
		items, err := s.billSvc.ListProductItems(c.Request().Context())
		if err != nil {
			return err
		}
		if items == nil {
			items = []*models.ProductItem{}
		}

		return c.JSON(http.StatusOK, items)
	})

	e.POST("/productItems", func(c echo.Context) error {
		var req createProductItemRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		if req.BillID == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "billID is required")
		}
		if req.ProductID == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "productID is required")
		}

		item := &models.ProductItem{
			BillID:    req.BillID,
			ProductID: req.ProductID,
			Price:     req.Price,
			Quantity:  req.Quantity,
		}
		if err := s.billSvc.CreateProductItem(c.Request().Context(), item); err != nil {
			return err
		}

		return c.JSON(http.StatusCreated, item)
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Handler returns the root HTTP handler for serving.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Test serves a single request in-process, for tests.
func (s *Server) Test(req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec.Result()
}

type createBillRequest struct {
	BillingDate *time.Time `json:"billingDate"`
	CustomerID  int64      `json:"customerID"`
}

type createProductItemRequest struct {
	BillID    int64   `json:"billID"`
	ProductID int64   `json:"productID"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
}

type errorMessageResp struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// customHTTPErrorHandler maps domain errors onto HTTP statuses: a missing
// local record is the caller's 404, while any remote dependency failure
// (unreachable or not-found upstream) fails the whole request as 502.
func customHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		c.Echo().DefaultHTTPErrorHandler(err, c)
		return
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		_ = c.JSON(http.StatusNotFound, errorMessageResp{Message: "not found"})
	case errors.Is(err, remote.ErrNotFound), errors.Is(err, remote.ErrUnavailable):
		_ = c.JSON(http.StatusBadGateway, errorMessageResp{
			Message: "remote dependency failed",
			Error:   err.Error(),
		})
	default:
		_ = c.JSON(http.StatusInternalServerError, errorMessageResp{Message: "internal server error"})
	}
}
