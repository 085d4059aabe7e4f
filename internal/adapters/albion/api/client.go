package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"albion-guild-dashboard/internal/adapters/upstream"
)

const DefaultBaseURL = "https://gameinfo.albiononline.com/api/gameinfo"

var ErrNotFound = upstream.ErrNotFound

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: upstream.NewHTTPClient("gameinfo", timeout, endpointName),
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

func (c *Client) GetEvent(ctx context.Context, eventID int64) (*EventResponse, error) {
	u := fmt.Sprintf("%s/events/%s", c.baseURL, strconv.FormatInt(eventID, 10))

	var data EventResponse
	if err := upstream.GetJSON(ctx, c.httpClient, u, &data); err != nil {
		return nil, fmt.Errorf("fetch event: %w", err)
	}
	return &data, nil
}

func (c *Client) SearchPlayers(ctx context.Context, query string) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	var data SearchResponse
	if err := upstream.GetJSON(ctx, c.httpClient, u, &data); err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return &data, nil
}

func (c *Client) GetPlayer(ctx context.Context, playerID string) (*PlayerResponse, error) {
	u := fmt.Sprintf("%s/players/%s", c.baseURL, url.PathEscape(playerID))

	var data PlayerResponse
	if err := upstream.GetJSON(ctx, c.httpClient, u, &data); err != nil {
		return nil, fmt.Errorf("fetch player: %w", err)
	}
	return &data, nil
}

func endpointName(path string) string {
	switch {
	case strings.Contains(path, "/events/"):
		return "events"
	case strings.HasSuffix(path, "/search"):
		return "search"
	case strings.Contains(path, "/players/"):
		return "players"
	}
	return "unknown"
}
