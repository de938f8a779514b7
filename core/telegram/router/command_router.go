package router

import (
	"context"
	"log/slog"

	"github.com/m3rciful/cryptobot/core/logger"
	tg "github.com/m3rciful/cryptobot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes binds every registered command and its aliases to a handler
// that runs on the chat's turn lane.
func CommandRoutes(reg *tg.Registry, q Submitter) []tg.Route {
	if reg == nil {
		return nil
	}

	cmds := reg.Commands()
	var routes []tg.Route
	for _, cmd := range cmds {
		name, handler := normalizeHandlerName(cmd.Name), cmd.Handler
		h := func(c tele.Context) error {
			return schedule(q, c, name, func() error { return handler(c) })
		}
		for _, ep := range cmd.Endpoints() {
			routes = append(routes, tg.Route{Endpoint: ep, Handler: h})
		}
	}

	logger.Info(context.Background(), logger.CompTelegramWire, "routes.commands",
		slog.Int("commands", len(cmds)),
		slog.Int("routes", len(routes)),
	)
	return routes
}
