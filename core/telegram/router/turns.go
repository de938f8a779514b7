package router

import (
	"errors"
	"log/slog"
	"time"

	tghelpers "github.com/m3rciful/cryptobot/core/telegram/helpers"
	"github.com/m3rciful/cryptobot/core/telegram/turns"

	tele "gopkg.in/telebot.v4"
)

// Submitter runs fn after every earlier turn of the same chat.
// *turns.Queue satisfies it.
type Submitter interface {
	Submit(chatID int64, fn func()) error
}

// schedule hands the handler to the chat lane. The update is acknowledged
// right away; the summary line is written when the turn completes. Without
// a submitter the handler runs inline.
func schedule(q Submitter, c tele.Context, name string, fn func() error) error {
	start := time.Now()
	if q == nil {
		return handleWithSummary(c, name, start, fn)
	}
	err := q.Submit(tghelpers.ChatID(c), func() {
		_ = handleWithSummary(c, name, start, fn)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, turns.ErrBacklogFull), errors.Is(err, turns.ErrClosed):
		logHandlerSummary(c, name, start, "dropped", "cancelled", nil,
			slog.String("reason", err.Error()),
		)
		return nil
	default:
		return err
	}
}
