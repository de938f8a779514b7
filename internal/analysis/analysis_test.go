package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/cryptobot/internal/market"
)

func TestFormatPriceTiers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12345.68", FormatPrice(12345.678))
	assert.Equal(t, "45.10000", FormatPrice(45.1))
	assert.Equal(t, "0.000432", FormatPrice(0.0004321))
	assert.Equal(t, "100.00000", FormatPrice(100))
	assert.Equal(t, "100.01", FormatPrice(100.01))
	assert.Equal(t, "1.00000", FormatPrice(1))
	assert.Equal(t, "0.999999", FormatPrice(0.999999))

	decimals := func(s string) int { return len(s) - strings.IndexByte(s, '.') - 1 }
	for _, v := range []float64{100.5, 250, 99999.999} {
		assert.Equalf(t, 2, decimals(FormatPrice(v)), "v=%v", v)
	}
	for _, v := range []float64{1, 1.5, 42, 100} {
		assert.Equalf(t, 5, decimals(FormatPrice(v)), "v=%v", v)
	}
	for _, v := range []float64{0, 0.5, 0.0000001} {
		assert.Equalf(t, 6, decimals(FormatPrice(v)), "v=%v", v)
	}
}

func TestClassifyChangeBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want Trend
	}{
		{5.0, StableIncrease},
		{5.01, RapidIncrease},
		{1.0, Stable},
		{1.01, StableIncrease},
		{0, Stable},
		{-1.0, Stable},
		{-1.01, StableDecrease},
		{-5.0, StableDecrease},
		{-5.01, RapidDecrease},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, ClassifyChange(tc.in), "ClassifyChange(%v)", tc.in)
	}
}

func TestFormatChange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+6.2", FormatChange(6.2))
	assert.Equal(t, "+1.5", FormatChange(1.5))
	assert.Equal(t, "0.5", FormatChange(0.5))
	assert.Equal(t, "0", FormatChange(Round2(-0.001)))
	assert.Equal(t, "-3.25", FormatChange(-3.25))
}

func TestReport(t *testing.T) {
	t.Parallel()

	report := Report("btc", market.Quote{
		Symbol:           "BTC",
		PriceUSD:         64250.129,
		PercentChange1h:  0.123,
		PercentChange24h: 6.456,
		PercentChange7d:  -7.891,
	})

	want := "💰 <b>BTC</b>\nPrice: <b>64250.13$</b>\n" +
		"1 hour: stable ⚖️ (0.12%)\n" +
		"24 hours: rapid growth 🚀 (+6.46%)\n" +
		"7 days: sharp drop 🔻 (-7.89%)\n\n" +
		"🧠 <i>The price shows strong growth over the last day.</i>\n\n" +
		"📌 <b>Recommendation: consider buying or holding.</b>"
	assert.Equal(t, want, report)
}

func TestReportOutlookBands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		change float64
		want   outlook
	}{
		{5.004, outlookModerate},
		{5.006, outlookRapidIncrease},
		{-5.004, outlookModerate},
		{-5.006, outlookRapidDecrease},
		{0.999, outlookStable},
		{3, outlookModerate},
		{-3, outlookModerate},
	}
	for _, tc := range cases {
		report := Report("ETH", market.Quote{PriceUSD: 10, PercentChange24h: tc.change})
		require.Containsf(t, report, tc.want.commentary, "change %v", tc.change)
	}
}

func TestTopReportIsDeterministic(t *testing.T) {
	t.Parallel()

	entries := []market.TopEntry{
		{Name: "Bitcoin", Symbol: "BTC", PriceUSD: 64000.5, PercentChange24h: 1.234},
		{Name: "Ethereum", Symbol: "ETH", PriceUSD: 3100.25, PercentChange24h: -6.5},
		{Name: "Tether", Symbol: "USDT", PriceUSD: 1.0001, PercentChange24h: 0.01},
		{Name: "BNB", Symbol: "BNB", PriceUSD: 580, PercentChange24h: 5.5},
		{Name: "Dogs & <Cats>", Symbol: "DC", PriceUSD: 0.1234567, PercentChange24h: -2},
	}
	first := TopReport(entries)
	second := TopReport(entries)
	assert.Equal(t, first, second)

	assert.True(t, strings.HasPrefix(first, "🔥 <b>Top 5 cryptocurrencies:</b>\n"))
	assert.Contains(t, first, "<b>Bitcoin (BTC)</b>\nPrice: <b>64000.50$</b>\n24h: 1.23% (steady growth 📈)\n")
	assert.Contains(t, first, "24h: -6.50% (sharp drop 🔻)")
	assert.Contains(t, first, "<b>Dogs &amp; &lt;Cats&gt; (DC)</b>\nPrice: <b>0.123457$</b>")
	assert.Less(t, strings.Index(first, "Bitcoin"), strings.Index(first, "Ethereum"))
}

func TestConversionReport(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10 BTC = 642501.500000 USDT", ConversionReport("btc", "usdt", 10, 642501.5))
	assert.Equal(t, "0.5 ETH = 0.025000 BTC", ConversionReport("ETH", "BTC", 0.5, 0.025))
}
