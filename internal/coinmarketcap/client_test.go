package coinmarketcap_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/m3rciful/cryptobot/core/httpclient/httpclientmock"
	"github.com/m3rciful/cryptobot/internal/coinmarketcap"
	"github.com/m3rciful/cryptobot/internal/market"
)

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

func newClient(t *testing.T, doer *httpclientmock.MockDoer) *coinmarketcap.Client {
	t.Helper()
	client, err := coinmarketcap.NewClient("secret",
		coinmarketcap.WithHTTPClient(doer),
		coinmarketcap.WithBaseURL("http://cmc.test/"),
	)
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Parallel()

	client, err := coinmarketcap.NewClient("  ")
	require.Error(t, err)
	require.Nil(t, client)
}

func TestLatestQuote(t *testing.T) {
	t.Parallel()

	// Arrange: a quote payload keyed by symbol.
	ctrl := gomock.NewController(t)
	doer := httpclientmock.NewMockDoer(ctrl)
	doer.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "secret", req.Header.Get("X-CMC_PRO_API_KEY"))
			assert.Equal(t, "/v1/cryptocurrency/quotes/latest", req.URL.Path)
			assert.Equal(t, "BTC", req.URL.Query().Get("symbol"))
			assert.True(t, strings.HasPrefix(req.URL.String(), "http://cmc.test/"))
			return respond(http.StatusOK, `{"data":{"BTC":{"quote":{"USD":{
				"price":64250.129,"percent_change_1h":0.12,"percent_change_24h":-2.456}}}}}`)(req)
		}).
		Times(1)

	// Act
	quote, err := newClient(t, doer).LatestQuote(context.Background(), " btc ")

	// Assert: missing 7d change defaults to zero.
	require.NoError(t, err)
	assert.Equal(t, market.Quote{
		Symbol:           "BTC",
		PriceUSD:         64250.129,
		PercentChange1h:  0.12,
		PercentChange24h: -2.456,
		PercentChange7d:  0,
	}, quote)
}

func TestLatestQuoteArrayShapedData(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpclientmock.NewMockDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).
		DoAndReturn(respond(http.StatusOK, `{"data":{"ETH":[{"quote":{"USD":{"price":3100.5}}}]}}`))

	quote, err := newClient(t, doer).LatestQuote(context.Background(), "eth")
	require.NoError(t, err)
	assert.InDelta(t, 3100.5, quote.PriceUSD, 1e-9)
}

func TestLatestQuoteErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		do   func(*http.Request) (*http.Response, error)
		want error
	}{
		{"missing price", respond(http.StatusOK, `{"data":{"BTC":{"quote":{"USD":{}}}}}`), market.ErrNotFound},
		{"null price", respond(http.StatusOK, `{"data":{"BTC":{"quote":{"USD":{"price":null}}}}}`), market.ErrNotFound},
		{"unknown symbol", respond(http.StatusOK, `{"data":{}}`), market.ErrNotFound},
		{"bad request", respond(http.StatusBadRequest, `{"status":{"error_code":400}}`), market.ErrNotFound},
		{"server error", respond(http.StatusInternalServerError, ``), market.ErrUpstreamUnavailable},
		{"rate limited", respond(http.StatusTooManyRequests, ``), market.ErrUpstreamUnavailable},
		{"malformed", respond(http.StatusOK, `{"data":`), market.ErrUpstreamUnavailable},
		{"transport", func(*http.Request) (*http.Response, error) {
			return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}
		}, market.ErrUpstreamUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			doer := httpclientmock.NewMockDoer(ctrl)
			doer.EXPECT().Do(gomock.Any()).DoAndReturn(tc.do)

			_, err := newClient(t, doer).LatestQuote(context.Background(), "BTC")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestListings(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpclientmock.NewMockDoer(ctrl)
	doer.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "/v1/cryptocurrency/listings/latest", req.URL.Path)
			assert.Equal(t, "1", q.Get("start"))
			assert.Equal(t, "2", q.Get("limit"))
			assert.Equal(t, "USD", q.Get("convert"))
			return respond(http.StatusOK, `{"data":[
				{"name":"Bitcoin","symbol":"BTC","quote":{"USD":{"price":64000,"percent_change_24h":1.5}}},
				{"name":"Ethereum","symbol":"ETH","quote":{"USD":{"price":3100,"percent_change_24h":-6.1}}}
			]}`)(req)
		})

	entries, err := newClient(t, doer).Listings(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []market.TopEntry{
		{Name: "Bitcoin", Symbol: "BTC", PriceUSD: 64000, PercentChange24h: 1.5},
		{Name: "Ethereum", Symbol: "ETH", PriceUSD: 3100, PercentChange24h: -6.1},
	}, entries)
}

func TestListingsEmpty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpclientmock.NewMockDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(respond(http.StatusOK, `{"data":[]}`))

	_, err := newClient(t, doer).Listings(context.Background(), 1, 5)
	require.ErrorIs(t, err, market.ErrNotFound)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpclientmock.NewMockDoer(ctrl)
	doer.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "/v1/tools/price-conversion", req.URL.Path)
			assert.Equal(t, "10", q.Get("amount"))
			assert.Equal(t, "BTC", q.Get("symbol"))
			assert.Equal(t, "USDT", q.Get("convert"))
			return respond(http.StatusOK, `{"data":{"symbol":"BTC","amount":10,
				"quote":{"USDT":{"price":642501.5}}}}`)(req)
		})

	got, err := newClient(t, doer).Convert(context.Background(), "btc", "usdt", 10)
	require.NoError(t, err)
	assert.InDelta(t, 642501.5, got, 1e-9)
}

func TestConvertArrayShapedData(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpclientmock.NewMockDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).
		DoAndReturn(respond(http.StatusOK, `{"data":[{"quote":{"ETH":{"price":0.25}}}]}`))

	got, err := newClient(t, doer).Convert(context.Background(), "BNB", "ETH", 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestConvertMissingTarget(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpclientmock.NewMockDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).
		DoAndReturn(respond(http.StatusOK, `{"data":{"quote":{"USD":{"price":1}}}}`))

	_, err := newClient(t, doer).Convert(context.Background(), "BTC", "XYZ", 1)
	require.ErrorIs(t, err, market.ErrNotFound)
}
