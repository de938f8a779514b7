package helpers

import (
	"bytes"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m3rciful/cryptobot/core/logger"
	"github.com/m3rciful/cryptobot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the outbound sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func currentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

// send runs the call on the chat's sender shard and waits for the outcome.
// A saturated dispatcher degrades to a direct call.
func send(c tele.Context, action, endpoint string, run func() error) error {
	disp := currentDispatcher()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	err := disp.Do(ctx, ChatID(c), action, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) {
		logger.Warn(ctx, logger.CompSender, "queue.fallback",
			slog.String("op", action),
			slog.String("endpoint", endpoint),
			slog.String("err", err.Error()),
		)
		return run()
	}
	return err
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var sendOpts *tele.SendOptions
	if len(opts) > 0 {
		sendOpts = opts[0]
	}
	return send(c, "send.text", "sendMessage", func() error {
		if sendOpts != nil {
			return c.Send(text, sendOpts)
		}
		return c.Send(text)
	})
}

// SendHTML sends a message with HTML parse mode and optional reply markup.
func SendHTML(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return SendText(c, text, &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: rm})
}

// SendPhoto uploads a PNG image. The name only appears in logs: Telegram
// stores uploaded photos without one.
func SendPhoto(c tele.Context, png []byte, name string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	err := send(c, "send.photo", "sendPhoto", func() error {
		photo := &tele.Photo{File: tele.FromReader(bytes.NewReader(png))}
		if rm != nil {
			return c.Send(photo, rm)
		}
		return c.Send(photo)
	})
	if err == nil {
		logger.Debug(BuildContext(c), logger.CompSender, "photo",
			slog.String("file", name),
			slog.Int("bytes", len(png)),
		)
	}
	return err
}
