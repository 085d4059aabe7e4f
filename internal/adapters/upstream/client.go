// Package upstream holds the HTTP plumbing shared by the public API clients.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"albion-guild-dashboard/internal/adapters/metrics"
)

// ErrNotFound is returned when the upstream answers 404.
var ErrNotFound = errors.New("upstream resource not found")

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// EndpointFunc names the endpoint a request path belongs to, for metrics.
type EndpointFunc func(path string) string

// NewHTTPClient returns a client whose requests are counted and timed under
// service.
func NewHTTPClient(service string, timeout time.Duration, endpoint EndpointFunc) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewMetricsRoundTripper(http.DefaultTransport, service, endpoint),
	}
}

// GetJSON issues a GET and decodes a 200 response into dest.
func GetJSON(ctx context.Context, client *http.Client, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// -- Middleware --

type MetricsRoundTripper struct {
	Proxied  http.RoundTripper
	Service  string
	Endpoint EndpointFunc
}

func NewMetricsRoundTripper(proxied http.RoundTripper, service string, endpoint EndpointFunc) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied, Service: service, Endpoint: endpoint}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	endpoint := "unknown"
	if mrt.Endpoint != nil {
		endpoint = mrt.Endpoint(req.URL.Path)
	}

	metrics.UpstreamRequestDuration.WithLabelValues(mrt.Service, endpoint, status).Observe(duration)
	metrics.UpstreamRequests.WithLabelValues(mrt.Service, endpoint, status).Inc()

	return resp, err
}
