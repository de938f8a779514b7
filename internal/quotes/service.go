// Package quotes combines the upstream clients and the symbol directory
// into the price operations used by the conversation.
package quotes

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/cryptobot/core/logger"
	"github.com/m3rciful/cryptobot/internal/market"
)

const component = "quotes"

// QuoteSource serves latest quotes, listings and conversions.
//
//go:generate mockgen -package=quotes_test -destination=mock_sources_test.go -source=service.go QuoteSource HistorySource SymbolResolver
type QuoteSource interface {
	LatestQuote(ctx context.Context, symbol string) (market.Quote, error)
	Listings(ctx context.Context, start, limit int) ([]market.TopEntry, error)
	Convert(ctx context.Context, from, to string, amount float64) (float64, error)
}

// HistorySource serves price histories by coin id.
type HistorySource interface {
	MarketChart(ctx context.Context, id string, days int) (market.PriceSeries, error)
}

// SymbolResolver maps a ticker to a coin id.
type SymbolResolver interface {
	Resolve(ctx context.Context, symbol string) (string, error)
}

// Service answers price questions.
type Service struct {
	quotes   QuoteSource
	history  HistorySource
	resolver SymbolResolver
}

// NewService wires the sources together.
func NewService(quotes QuoteSource, history HistorySource, resolver SymbolResolver) *Service {
	return &Service{quotes: quotes, history: history, resolver: resolver}
}

// LatestQuote returns the latest quote for symbol.
func (s *Service) LatestQuote(ctx context.Context, symbol string) (market.Quote, error) {
	start := time.Now()
	sym := normalize(symbol)
	q, err := s.quotes.LatestQuote(ctx, sym)
	if err != nil {
		logFailure(ctx, "latest_quote", sym, start, err)
		return market.Quote{}, err
	}
	logger.Debug(ctx, component, "latest_quote",
		slog.String("status", "ok"),
		slog.String("symbol", sym),
		slog.Duration("duration", logger.Took(start)),
	)
	return q, nil
}

// Top returns the first n coins by market cap.
func (s *Service) Top(ctx context.Context, n int) ([]market.TopEntry, error) {
	start := time.Now()
	entries, err := s.quotes.Listings(ctx, 1, n)
	if err != nil {
		logFailure(ctx, "top", "", start, err)
		return nil, err
	}
	logger.Debug(ctx, component, "top",
		slog.String("status", "ok"),
		slog.Int("count", len(entries)),
		slog.Duration("duration", logger.Took(start)),
	)
	return entries, nil
}

// PriceSeries returns the USD history of symbol over days. An unresolvable
// symbol is reported as not found without querying the history.
func (s *Service) PriceSeries(ctx context.Context, symbol string, days int) (market.PriceSeries, error) {
	const op = "price_series"
	start := time.Now()
	sym := normalize(symbol)

	id, err := s.resolver.Resolve(ctx, sym)
	if err != nil {
		logFailure(ctx, op, sym, start, err)
		if errors.Is(err, market.ErrNotFound) {
			return nil, err
		}
		return nil, market.Errorf(market.ErrNotFound, "quotes.price_series", sym, err)
	}

	series, err := s.history.MarketChart(ctx, id, days)
	if err == nil && series.Len() == 0 {
		err = market.Errorf(market.ErrNotFound, "quotes.price_series", sym, nil)
	}
	if err != nil {
		logFailure(ctx, op, sym, start, err, slog.String("coin_id", id))
		return nil, err
	}
	logger.Debug(ctx, component, op,
		slog.String("status", "ok"),
		slog.String("symbol", sym),
		slog.String("coin_id", id),
		slog.Int("count", series.Len()),
		slog.Duration("duration", logger.Took(start)),
	)
	return series, nil
}

// Convert returns amount of from expressed in to.
func (s *Service) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	start := time.Now()
	from, to = normalize(from), normalize(to)
	result, err := s.quotes.Convert(ctx, from, to, amount)
	if err != nil {
		logFailure(ctx, "convert", from+"/"+to, start, err)
		return 0, err
	}
	logger.Debug(ctx, component, "convert",
		slog.String("status", "ok"),
		slog.String("symbol", from+"/"+to),
		slog.Duration("duration", logger.Took(start)),
	)
	return result, nil
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func logFailure(ctx context.Context, op, symbol string, start time.Time, err error, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.String("status", "fail"),
		slog.String("err", err.Error()),
		slog.Duration("duration", logger.Took(start)),
	}
	if symbol != "" {
		attrs = append(attrs, slog.String("symbol", symbol))
	}
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		attrs = append(attrs, slog.String("err_code", coded.Code()))
	}
	attrs = append(attrs, extra...)
	logger.Warn(ctx, component, op, attrs...)
}
