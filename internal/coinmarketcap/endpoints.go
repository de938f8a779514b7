package coinmarketcap

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/m3rciful/cryptobot/internal/market"
)

const (
	quotesPath     = "/v1/cryptocurrency/quotes/latest"
	listingsPath   = "/v1/cryptocurrency/listings/latest"
	conversionPath = "/v1/tools/price-conversion"
)

var errMalformed = errors.New("malformed response body")

// LatestQuote returns the latest USD quote for symbol.
func (c *Client) LatestQuote(ctx context.Context, symbol string) (market.Quote, error) {
	const op = "coinmarketcap.quotes"
	sym := strings.ToUpper(strings.TrimSpace(symbol))

	body, err := c.get(ctx, op, sym, quotesPath, url.Values{"symbol": {sym}})
	if err != nil {
		return market.Quote{}, err
	}
	if !gjson.ValidBytes(body) {
		return market.Quote{}, market.Errorf(market.ErrUpstreamUnavailable, op, sym, errMalformed)
	}

	entry := first(gjson.GetBytes(body, "data").Map()[sym])
	usd := entry.Get("quote.USD")
	price := usd.Get("price")
	if !isNumber(price) {
		return market.Quote{}, market.Errorf(market.ErrNotFound, op, sym, nil)
	}

	return market.Quote{
		Symbol:           sym,
		PriceUSD:         price.Float(),
		PercentChange1h:  usd.Get("percent_change_1h").Float(),
		PercentChange24h: usd.Get("percent_change_24h").Float(),
		PercentChange7d:  usd.Get("percent_change_7d").Float(),
	}, nil
}

// Listings returns limit entries of the market-cap ranking starting at start (1-based),
// in upstream order.
func (c *Client) Listings(ctx context.Context, start, limit int) ([]market.TopEntry, error) {
	const op = "coinmarketcap.listings"
	if start < 1 {
		start = 1
	}
	if limit < 1 {
		return nil, market.Errorf(market.ErrInvalidInput, op, "", errors.New("limit must be positive"))
	}

	query := url.Values{
		"start":   {strconv.Itoa(start)},
		"limit":   {strconv.Itoa(limit)},
		"convert": {"USD"},
	}
	body, err := c.get(ctx, op, "", listingsPath, query)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, market.Errorf(market.ErrUpstreamUnavailable, op, "", errMalformed)
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() || len(data.Array()) == 0 {
		return nil, market.Errorf(market.ErrNotFound, op, "", nil)
	}

	entries := make([]market.TopEntry, 0, limit)
	for _, coin := range data.Array() {
		price := coin.Get("quote.USD.price")
		if !isNumber(price) {
			return nil, market.Errorf(market.ErrNotFound, op, coin.Get("symbol").String(), nil)
		}
		entries = append(entries, market.TopEntry{
			Name:             coin.Get("name").String(),
			Symbol:           coin.Get("symbol").String(),
			PriceUSD:         price.Float(),
			PercentChange24h: coin.Get("quote.USD.percent_change_24h").Float(),
		})
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}

// Convert returns amount of from expressed in to.
func (c *Client) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	const op = "coinmarketcap.convert"
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	query := url.Values{
		"amount":  {strconv.FormatFloat(amount, 'f', -1, 64)},
		"symbol":  {from},
		"convert": {to},
	}
	body, err := c.get(ctx, op, from, conversionPath, query)
	if err != nil {
		return 0, err
	}
	if !gjson.ValidBytes(body) {
		return 0, market.Errorf(market.ErrUpstreamUnavailable, op, from, errMalformed)
	}

	data := first(gjson.GetBytes(body, "data"))
	price := data.Get("quote").Map()[to].Get("price")
	if !isNumber(price) {
		return 0, market.Errorf(market.ErrNotFound, op, from+"/"+to, nil)
	}
	return price.Float(), nil
}

// first unwraps array-shaped results to their first element.
func first(r gjson.Result) gjson.Result {
	if r.IsArray() {
		items := r.Array()
		if len(items) == 0 {
			return gjson.Result{}
		}
		return items[0]
	}
	return r
}

func isNumber(r gjson.Result) bool {
	return r.Exists() && r.Type == gjson.Number
}
