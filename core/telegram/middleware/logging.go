package middleware

import (
	"log/slog"
	"sync"

	"github.com/m3rciful/cryptobot/core/logger"
	tghelpers "github.com/m3rciful/cryptobot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// updateRing remembers the last few update ids so a redelivered update is
// not logged twice.
type updateRing struct {
	mu   sync.Mutex
	ids  [128]int
	next int
}

func (r *updateRing) firstSeen(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, seen := range r.ids {
		if seen == id && id != 0 {
			return false
		}
	}
	r.ids[r.next] = id
	r.next = (r.next + 1) % len(r.ids)
	return true
}

var received updateRing

// LoggerMiddleware assigns the request id, stores the logging context on the
// update and writes a sampled "update.received" line.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		var userID int64
		if user := c.Sender(); user != nil {
			userID = user.ID
		}
		updateID := c.Update().ID
		c.Set("rid", logger.BuildRID(updateID, tghelpers.ChatID(c), userID))
		ctx := tghelpers.BuildContext(c)

		if logger.ShouldSampleDebug() && received.firstSeen(updateID) {
			logger.Debug(ctx, logger.CompTelegram, "update.received", receiptAttrs(c)...)
		}
		return next(c)
	}
}

func receiptAttrs(c tele.Context) []slog.Attr {
	attrs := []slog.Attr{slog.String("status", "ok")}
	if chat := c.Chat(); chat != nil {
		attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
	}
	if user := c.Sender(); user != nil {
		if user.Username != "" {
			attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
		}
		if user.LanguageCode != "" {
			attrs = append(attrs, slog.String("lang", user.LanguageCode))
		}
	}
	if msg := c.Update().Message; msg != nil && msg.Text != "" {
		attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(msg.Text, 256)))
	}
	return attrs
}
