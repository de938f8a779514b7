// Package coinmarketcap is a client for the CoinMarketCap Pro API: latest
// quotes, market-cap listings and price conversion.
package coinmarketcap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m3rciful/cryptobot/core/httpclient"
	"github.com/m3rciful/cryptobot/internal/market"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://pro-api.coinmarketcap.com"

	apiKeyHeader = "X-CMC_PRO_API_KEY"
	maxBodyBytes = 8 << 20
)

// Client talks to the CoinMarketCap API.
type Client struct {
	// baseURL is the API root without a trailing slash.
	baseURL string
	// httpClient sends the requests.
	httpClient httpclient.Doer
	// header is added to every request.
	header http.Header
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

// WithHeader adds headers sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a client authenticated with the given API key.
func NewClient(key string, options ...Option) (*Client, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("coinmarketcap: api key is required")
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	c.header.Set(apiKeyHeader, key)
	c.header.Set("Accept", "application/json")
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// get performs a GET request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, op, symbol, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, market.Errorf(market.ErrUpstreamUnavailable, op, symbol, err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, market.Errorf(market.ErrUpstreamUnavailable, op, symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, market.Errorf(market.ErrUpstreamUnavailable, op, symbol, err)
	}
	if kind := market.KindForStatus(resp.StatusCode); kind != nil {
		return nil, market.Errorf(kind, op, symbol, fmt.Errorf("status %d", resp.StatusCode))
	}
	return body, nil
}
