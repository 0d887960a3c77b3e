package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"polymarket-wrapped/internal/wrapped"
)

// Client fetches raw trade and position records for one account from
// the Polymarket data endpoints.
type Client struct {
	host       string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host string) *Client {
	if host == "" {
		host = "https://clob.polymarket.com"
	}
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		httpClient: httpClient,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// ListTrades returns up to limit fills where the account is the maker,
// mapped into the domain shape with provider defaults applied.
func (c *Client) ListTrades(ctx context.Context, address string, limit int) ([]wrapped.Trade, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	if limit <= 0 {
		limit = 1000
	}
	query := url.Values{}
	query.Set("maker", address)
	query.Set("limit", strconv.Itoa(limit))
	body, err := c.doRequest(ctx, "/trades", query)
	if err != nil {
		return nil, err
	}
	var raw []rawTrade
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode trades: %w", err)
	}
	trades := make([]wrapped.Trade, 0, len(raw))
	for _, r := range raw {
		trades = append(trades, r.toDomain())
	}
	return trades, nil
}

// ListPositions returns the account's current position snapshot.
func (c *Client) ListPositions(ctx context.Context, address string) ([]wrapped.Position, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	query := url.Values{}
	query.Set("user", address)
	body, err := c.doRequest(ctx, "/positions", query)
	if err != nil {
		return nil, err
	}
	var raw []rawPosition
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode positions: %w", err)
	}
	positions := make([]wrapped.Position, 0, len(raw))
	for _, r := range raw {
		positions = append(positions, r.toDomain())
	}
	return positions, nil
}
