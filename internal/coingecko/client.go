// Package coingecko is a client for the public CoinGecko API: the coin
// directory and historical market charts.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/cryptobot/core/httpclient"
	"github.com/m3rciful/cryptobot/internal/market"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://api.coingecko.com"

	demoKeyHeader = "x-cg-demo-api-key"
	coinsListPath = "/api/v3/coins/list"
	maxBodyBytes  = 32 << 20
)

// Client talks to the CoinGecko API.
type Client struct {
	baseURL    string
	httpClient httpclient.Doer
	header     http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient httpclient.Doer) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithDemoKey authenticates requests with a demo plan key.
func WithDemoKey(key string) Option {
	return func(c *Client) {
		if key = strings.TrimSpace(key); key != "" {
			c.header.Set(demoKeyHeader, key)
		}
	}
}

// NewClient creates a client. The public API needs no key.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{"Accept": {"application/json"}},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// CoinsList returns the full coin directory in upstream order.
func (c *Client) CoinsList(ctx context.Context) ([]market.Listing, error) {
	const op = "coingecko.coins_list"
	var coins []market.Listing
	if err := c.getJSON(ctx, op, "", coinsListPath, nil, &coins); err != nil {
		return nil, err
	}
	if len(coins) == 0 {
		return nil, market.Errorf(market.ErrUpstreamUnavailable, op, "", fmt.Errorf("empty coin list"))
	}
	return coins, nil
}

type marketChart struct {
	Prices [][]float64 `json:"prices"`
}

// MarketChart returns the USD price history of the coin id over the last days.
func (c *Client) MarketChart(ctx context.Context, id string, days int) (market.PriceSeries, error) {
	const op = "coingecko.market_chart"
	if days < 1 {
		days = 1
	}
	query := url.Values{
		"vs_currency": {"usd"},
		"days":        {strconv.Itoa(days)},
	}
	path := "/api/v3/coins/" + url.PathEscape(id) + "/market_chart"

	var chart marketChart
	if err := c.getJSON(ctx, op, id, path, query, &chart); err != nil {
		return nil, err
	}

	series := make(market.PriceSeries, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) < 2 || math.IsNaN(p[1]) {
			continue
		}
		series = append(series, market.PricePoint{
			Time:     time.UnixMilli(int64(p[0])).UTC(),
			PriceUSD: p[1],
		})
	}
	if len(series) == 0 {
		return nil, market.Errorf(market.ErrNotFound, op, id, nil)
	}
	return series, nil
}

func (c *Client) getJSON(ctx context.Context, op, symbol, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return market.Errorf(market.ErrUpstreamUnavailable, op, symbol, err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return market.Errorf(market.ErrUpstreamUnavailable, op, symbol, err)
	}
	defer resp.Body.Close()

	if kind := market.KindForStatus(resp.StatusCode); kind != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return market.Errorf(kind, op, symbol, fmt.Errorf("status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return market.Errorf(market.ErrUpstreamUnavailable, op, symbol, fmt.Errorf("decode: %w", err))
	}
	return nil
}
