// Package analysis turns quotes into formatted prices, trend labels and
// HTML reports. Everything here is pure.
package analysis

import (
	"math"
	"strconv"
)

// Trend classifies a percent change.
type Trend int

const (
	Stable Trend = iota
	StableIncrease
	RapidIncrease
	StableDecrease
	RapidDecrease
)

var trendLabels = map[Trend]string{
	Stable:         "stable ⚖️",
	StableIncrease: "steady growth 📈",
	RapidIncrease:  "rapid growth 🚀",
	StableDecrease: "steady decline 📉",
	RapidDecrease:  "sharp drop 🔻",
}

// Label is the user-facing description of the trend.
func (t Trend) Label() string {
	return trendLabels[t]
}

// Increase reports whether the trend is upward.
func (t Trend) Increase() bool {
	return t == StableIncrease || t == RapidIncrease
}

func (t Trend) String() string {
	switch t {
	case StableIncrease:
		return "stable_increase"
	case RapidIncrease:
		return "rapid_increase"
	case StableDecrease:
		return "stable_decrease"
	case RapidDecrease:
		return "rapid_decrease"
	default:
		return "stable"
	}
}

// ClassifyChange buckets a percent change. Bounds: above 5 is rapid
// growth, (1, 5] steady growth, [-1, 1] stable, below -5 a sharp drop and
// [-5, -1) steady decline.
func ClassifyChange(percent float64) Trend {
	switch {
	case percent > 5:
		return RapidIncrease
	case percent > 1:
		return StableIncrease
	case percent >= -1 && percent <= 1:
		return Stable
	case percent < -5:
		return RapidDecrease
	default:
		return StableDecrease
	}
}

// FormatPrice renders a USD price with 2 decimals above 100, 5 decimals in
// [1, 100] and 6 decimals below 1.
func FormatPrice(v float64) string {
	switch {
	case v > 100:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case v >= 1:
		return strconv.FormatFloat(v, 'f', 5, 64)
	default:
		return strconv.FormatFloat(v, 'f', 6, 64)
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatChange renders an already rounded percent change, with a plus
// sign for upward trends.
func FormatChange(percent float64) string {
	if percent == 0 {
		percent = 0 // drop negative zero
	}
	s := strconv.FormatFloat(percent, 'f', -1, 64)
	if ClassifyChange(percent).Increase() {
		return "+" + s
	}
	return s
}
