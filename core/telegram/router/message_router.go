package router

import (
	"time"

	tg "github.com/m3rciful/cryptobot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextRoutes builds the handler for plain text. Text matching a command name
// or alias is routed to that command; everything else goes to the registry's
// text fallback.
func TextRoutes(reg *tg.Registry, q Submitter) []tg.Route {
	handler := func(c tele.Context) error {
		if reg == nil {
			logHandlerSummary(c, "unknown_text", time.Now(), "skip", "ok", nil)
			return nil
		}
		text := c.Text()
		if isCommandText(text) {
			if cmd, ok := reg.LookupCommand(text); ok {
				return schedule(q, c, normalizeHandlerName(cmd.Name), func() error { return cmd.Handler(c) })
			}
		}
		if fb := reg.TextFallback(); fb != nil {
			return schedule(q, c, "text", func() error { return fb(c) })
		}
		logHandlerSummary(c, "unknown_text", time.Now(), "skip", "ok", nil)
		return nil
	}

	return []tg.Route{{Endpoint: tele.OnText, Handler: handler}}
}

// isCommandText keeps ordinary words such as "help" in the conversation;
// only slash-prefixed text is treated as a command here.
func isCommandText(text string) bool {
	return len(text) > 1 && text[0] == '/'
}
