// Package market holds the price data types shared by the upstream clients,
// the quote service and the conversation engine.
package market

import "time"

// Listing is a single entry of the coin directory.
type Listing struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Quote is the latest USD price of a coin with its percent changes.
type Quote struct {
	Symbol           string
	PriceUSD         float64
	PercentChange1h  float64
	PercentChange24h float64
	PercentChange7d  float64
}

// TopEntry is one row of the market-cap ranking.
type TopEntry struct {
	Name             string
	Symbol           string
	PriceUSD         float64
	PercentChange24h float64
}

// PricePoint is a single sample of a price history.
type PricePoint struct {
	Time     time.Time
	PriceUSD float64
}

// PriceSeries is a time-ordered price history.
type PriceSeries []PricePoint

// Len returns the number of samples.
func (s PriceSeries) Len() int { return len(s) }

// Split returns the times and prices as parallel slices.
func (s PriceSeries) Split() ([]time.Time, []float64) {
	xs := make([]time.Time, len(s))
	ys := make([]float64, len(s))
	for i, p := range s {
		xs[i] = p.Time
		ys[i] = p.PriceUSD
	}
	return xs, ys
}
