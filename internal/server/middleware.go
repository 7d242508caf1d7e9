package server

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/socom/billing-service/internal/metrics"
)

// observabilityMiddleware assigns a request id, logs every request and
// records the HTTP metrics. Metrics are labeled with the route template
// (c.Path) to keep cardinality low.
func observabilityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}

			metrics.HTTPRequests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())

			if err != nil {
				slog.Warn("Request failed",
					"method", req.Method,
					"path", req.URL.Path,
					"status", status,
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", requestID,
					"error", err,
				)
			} else {
				slog.Info("Request completed",
					"method", req.Method,
					"path", req.URL.Path,
					"status", status,
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", requestID,
				)
			}

			return nil
		}
	}
}
