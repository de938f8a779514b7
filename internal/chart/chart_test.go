package chart_test

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/cryptobot/internal/chart"
	"github.com/m3rciful/cryptobot/internal/market"
)

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var series market.PriceSeries
	for i := 0; i < 24; i++ {
		series = append(series, market.PricePoint{
			Time:     start.Add(time.Duration(i) * 7 * time.Hour),
			PriceUSD: 60000 + float64(i%5)*250,
		})
	}

	r := chart.NewRenderer(0, 0)
	img, err := r.Render("btc", series)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, chart.DefaultWidth, cfg.Width)
	assert.Equal(t, chart.DefaultHeight, cfg.Height)
}

func TestRenderEmptySeries(t *testing.T) {
	t.Parallel()

	r := chart.NewRenderer(640, 320)
	_, err := r.Render("BTC", nil)
	require.ErrorIs(t, err, market.ErrNoData)

	_, err = r.Render("BTC", market.PriceSeries{{Time: time.Now(), PriceUSD: 1}})
	require.ErrorIs(t, err, market.ErrNoData)
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ETH - price over 7 days", chart.Title(" eth "))
}
