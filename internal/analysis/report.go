package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/cryptobot/core/telegram/format"
	"github.com/m3rciful/cryptobot/internal/market"
)

type outlook struct {
	commentary     string
	recommendation string
}

var (
	outlookRapidIncrease = outlook{
		commentary:     "The price shows strong growth over the last day.",
		recommendation: "Recommendation: consider buying or holding.",
	}
	outlookRapidDecrease = outlook{
		commentary:     "The coin is going through a noticeable drop.",
		recommendation: "Recommendation: be careful.",
	}
	outlookStable = outlook{
		commentary:     "The market is relatively stable.",
		recommendation: "Recommendation: keep watching the market.",
	}
	// steady growth and steady decline share one message pair
	outlookModerate = outlook{
		commentary:     "The market shows moderate dynamics.",
		recommendation: "Recommendation: act deliberately.",
	}
)

func outlookFor(change24h float64) outlook {
	switch ClassifyChange(change24h) {
	case RapidIncrease:
		return outlookRapidIncrease
	case RapidDecrease:
		return outlookRapidDecrease
	case Stable:
		return outlookStable
	default:
		return outlookModerate
	}
}

func changeLine(label string, percent float64) string {
	rounded := Round2(percent)
	return fmt.Sprintf("%s: %s (%s%%)", label, ClassifyChange(rounded).Label(), FormatChange(rounded))
}

// Report builds the HTML analysis of a single coin.
func Report(symbol string, q market.Quote) string {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	var b strings.Builder
	fmt.Fprintf(&b, "💰 %s\nPrice: <b>%s$</b>\n", format.Bold(sym), FormatPrice(q.PriceUSD))
	b.WriteString(changeLine("1 hour", q.PercentChange1h))
	b.WriteByte('\n')
	b.WriteString(changeLine("24 hours", q.PercentChange24h))
	b.WriteByte('\n')
	b.WriteString(changeLine("7 days", q.PercentChange7d))

	o := outlookFor(Round2(q.PercentChange24h))
	fmt.Fprintf(&b, "\n\n🧠 %s\n\n📌 %s", format.Italic(o.commentary), format.Bold(o.recommendation))
	return b.String()
}

// TopReport builds the HTML ranking of entries in the given order.
func TopReport(entries []market.TopEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 <b>Top %d cryptocurrencies:</b>\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s\nPrice: <b>%s$</b>\n24h: %s%% (%s)\n",
			format.Bold(e.Name+" ("+e.Symbol+")"),
			FormatPrice(e.PriceUSD),
			strconv.FormatFloat(e.PercentChange24h, 'f', 2, 64),
			ClassifyChange(e.PercentChange24h).Label(),
		)
	}
	return b.String()
}

// ConversionReport renders the result of a conversion.
func ConversionReport(from, to string, amount, result float64) string {
	return fmt.Sprintf("%s %s = %s %s",
		strconv.FormatFloat(amount, 'f', -1, 64),
		format.EscapeHTML(strings.ToUpper(from)),
		strconv.FormatFloat(result, 'f', 6, 64),
		format.EscapeHTML(strings.ToUpper(to)),
	)
}
