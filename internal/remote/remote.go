// Package remote implements lookup clients for the customer and inventory
// services.
//
// Both services own their data; this service only holds foreign identifiers
// and resolves them over HTTP at read time. There is no caching, no retry
// and no fallback: a failed lookup is surfaced to the caller as-is.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/socom/billing-service/internal/metrics"
)

var (
	// ErrNotFound is returned when the remote service is reachable but
	// reports no such resource.
	ErrNotFound = errors.New("remote resource not found")

	// ErrUnavailable is returned when the remote call cannot complete:
	// transport failure, timeout, or an unexpected status.
	ErrUnavailable = errors.New("remote service unavailable")
)

// getJSON performs a GET against url and decodes the JSON response into out.
// A 404 maps to ErrNotFound; any other failure maps to ErrUnavailable.
func getJSON(ctx context.Context, client *http.Client, service, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		metrics.RemoteLookups.WithLabelValues(service, "unavailable").Inc()
		return fmt.Errorf("GET %s: %v: %w", url, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.RemoteLookups.WithLabelValues(service, "not_found").Inc()
		return fmt.Errorf("GET %s: %w", url, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		metrics.RemoteLookups.WithLabelValues(service, "unavailable").Inc()
		return fmt.Errorf("GET %s: unexpected status %d: %w", url, resp.StatusCode, ErrUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RemoteLookups.WithLabelValues(service, "unavailable").Inc()
		return fmt.Errorf("GET %s: decode response: %v: %w", url, err, ErrUnavailable)
	}

	metrics.RemoteLookups.WithLabelValues(service, "ok").Inc()
	return nil
}
