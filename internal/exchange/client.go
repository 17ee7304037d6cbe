// Package exchange fetches the CLP/USD exchange rate from the mindicador.cl
// public API.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrEmptySeries is returned when the API answers successfully but the rate
// series carries no observations. Callers get an explicit error instead of a
// degraded 1.0 rate.
var ErrEmptySeries = errors.New("exchange rate series is empty")

// Rate represents a single dollar-rate observation
type Rate struct {
	Value float64 `json:"valor"`
	Date  *string `json:"fecha"`
}

// seriesResponse mirrors the mindicador.cl payload; only the series is used
type seriesResponse struct {
	Serie []Rate `json:"serie"`
}

// RateSource defines the operations for fetching the dollar rate
type RateSource interface {
	// LatestDollarRate returns the most recent observation (CLP per 1 USD).
	LatestDollarRate(ctx context.Context) (Rate, error)
}

// Client is an HTTP client for the rate API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a rate client against the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LatestDollarRate fetches the latest dollar observation. The series is
// ordered most recent first, so the first entry is the current rate.
func (c *Client) LatestDollarRate(ctx context.Context) (Rate, error) {
	url := c.baseURL + "/dolar"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to fetch dollar rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Rate{}, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var payload seriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Rate{}, fmt.Errorf("failed to decode rate response: %w", err)
	}

	if len(payload.Serie) == 0 {
		return Rate{}, ErrEmptySeries
	}
	return payload.Serie[0], nil
}
