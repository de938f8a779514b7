package conversation

// Reply keyboard labels. Incoming text is compared against them verbatim.
const (
	MenuTop     = "📊 Top 5"
	MenuLookup  = "🔍 Look up a coin"
	MenuConvert = "💱 Convert"
)

// MenuText accompanies the reply keyboard.
const MenuText = "Choose an action:"

// HelpText answers /start and /help.
const HelpText = "👋 <b>Crypto price bot</b>\n\n" +
	"📊 <b>Top 5</b> shows the largest coins by market cap with their 24h change.\n" +
	"🔍 <b>Look up a coin</b> sends a price analysis and a 7-day chart for a symbol such as BTC.\n" +
	"💱 <b>Convert</b> converts an amount of one asset into another.\n\n" +
	"Send /cancel at any step to return to the menu."

const (
	promptCoin       = "Enter the coin symbol (for example BTC):"
	promptFromSymbol = "Enter the symbol to convert from (for example BTC):"
	promptAmount     = "Enter the amount to convert:"
	promptToSymbol   = "Enter the symbol to convert to (for example USDT):"

	msgNumericValue     = "⚠️ Enter a numeric value."
	msgCancelled        = "Cancelled."
	msgTopFailed        = "⚠️ Failed to fetch market data."
	msgCoinNotFound     = "⚠️ Could not find information about this coin.\nCheck the spelling of the symbol.\nThe coin may also be missing from our data."
	msgChartUnavailable = "⚠️ Could not build the chart.\nThere may not be enough data for this coin yet."
	msgConvertFailed    = "⚠️ The conversion failed.\nCheck the spelling of both symbols.\nThey may also be missing from our data."
)

// MenuButtons lists the reply keyboard rows, one button per row.
func MenuButtons() [][]string {
	return [][]string{{MenuTop}, {MenuLookup}, {MenuConvert}}
}
