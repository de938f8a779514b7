// Package chart renders price histories as PNG line charts.
package chart

import (
	"bytes"
	"fmt"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/m3rciful/cryptobot/internal/market"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

var lineColor = drawing.ColorFromHex("2e7d32")

// Renderer draws single-series charts of a fixed size.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a Renderer, substituting defaults for non-positive sizes.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{Width: width, Height: height}
}

// Title is the chart heading for symbol.
func Title(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol)) + " - price over 7 days"
}

// Render returns the PNG image of series. A series needs at least two
// points to span an axis; shorter input yields market.ErrNoData.
func (r *Renderer) Render(symbol string, series market.PriceSeries) ([]byte, error) {
	const op = "chart.render"
	if series.Len() < 2 {
		return nil, market.Errorf(market.ErrNoData, op, symbol, nil)
	}
	xs, ys := series.Split()

	graph := gochart.Chart{
		Title:  Title(symbol),
		Width:  r.Width,
		Height: r.Height,
		XAxis: gochart.XAxis{
			Name:           "Date",
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{
			Name: "USD",
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "USD",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, symbol, err)
	}
	return buf.Bytes(), nil
}
