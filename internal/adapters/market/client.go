// Package market reads daily price history from the community market data API.
package market

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"albion-guild-dashboard/internal/adapters/upstream"
	"albion-guild-dashboard/internal/core/domain"
)

const (
	DefaultBaseURL = "https://west.albion-online-data.com/api/v2/stats/history"
	timeScale      = "?time-scale=24"
)

type HistoryPoint struct {
	ItemCount int64   `json:"item_count"`
	AvgPrice  float64 `json:"avg_price"`
	// Timestamp carries no zone, e.g. "2024-05-01T00:00:00".
	Timestamp string `json:"timestamp"`
}

type History struct {
	ItemID   string         `json:"item_id"`
	Location string         `json:"location"`
	Quality  int            `json:"quality"`
	Data     []HistoryPoint `json:"data"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: upstream.NewHTTPClient("market", timeout, func(string) string { return "history" }),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// NewTestClient creates a client with custom base URL for testing.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *Client) historyURL(itemIDs []string) string {
	return c.baseURL + "/" + strings.Join(itemIDs, ",") + timeScale
}

// RequestURLLength is the length of the URL a history request for itemIDs
// would use.
func (c *Client) RequestURLLength(itemIDs []string) int {
	return len(c.historyURL(itemIDs))
}

func (c *Client) GetHistory(ctx context.Context, itemIDs []string) ([]History, error) {
	var data []History
	if err := upstream.GetJSON(ctx, c.httpClient, c.historyURL(itemIDs), &data); err != nil {
		return nil, fmt.Errorf("fetch price history: %w", err)
	}
	return data, nil
}

// FetchPriceHistory returns one series per item id, location and quality
// reported by the market. Ids the market has no data for are absent.
func (c *Client) FetchPriceHistory(ctx context.Context, itemIDs []string) ([]domain.PriceSeries, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	history, err := c.GetHistory(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	series := make([]domain.PriceSeries, 0, len(history))
	for _, h := range history {
		points := make([]float64, 0, len(h.Data))
		for _, p := range h.Data {
			points = append(points, p.AvgPrice)
		}
		series = append(series, domain.PriceSeries{ItemID: h.ItemID, Points: points})
	}
	return series, nil
}
