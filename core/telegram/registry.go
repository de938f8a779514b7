package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/m3rciful/cryptobot/core/logger"
	"github.com/m3rciful/cryptobot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

var (
	ErrInvalidCommand   = errors.New("telegram: invalid command")
	ErrDuplicateCommand = errors.New("telegram: duplicate command")
)

// RegisteredCommand pairs a command with its canonical "/name".
type RegisteredCommand struct {
	Name string
	commands.Command
}

// Registry holds bot commands in registration order and the handler for
// free text. It is filled before the bot starts and read-only afterwards.
type Registry struct {
	entries      []RegisteredCommand
	byEndpoint   map[string]int
	textFallback tele.HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byEndpoint: make(map[string]int)}
}

// RegisterCommand adds cmd under name, which must start with a slash.
// Names and aliases share one namespace.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) error {
	if err := r.register(name, cmd); err != nil {
		logger.Warn(context.Background(), logger.CompTelegramWire, "register.command.skip",
			slog.String("name", name),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}

func (r *Registry) register(name string, cmd commands.Command) error {
	if cmd.Handler == nil || strings.TrimSpace(cmd.Description) == "" {
		return fmt.Errorf("%w: %q needs a handler and a description", ErrInvalidCommand, name)
	}
	if !strings.HasPrefix(name, "/") || commands.Endpoint(name) != name {
		return fmt.Errorf("%w: %q must look like /name", ErrInvalidCommand, name)
	}

	endpoints := []string{name}
	for _, alias := range cmd.Aliases {
		if ep := commands.Endpoint(alias); ep != "" {
			endpoints = append(endpoints, ep)
		}
	}
	for _, ep := range endpoints {
		if _, taken := r.byEndpoint[ep]; taken {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, ep)
		}
	}

	r.entries = append(r.entries, RegisteredCommand{Name: name, Command: cmd})
	for _, ep := range endpoints {
		r.byEndpoint[ep] = len(r.entries) - 1
	}
	return nil
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []RegisteredCommand {
	if r == nil {
		return nil
	}
	return append([]RegisteredCommand(nil), r.entries...)
}

// Endpoints lists every "/name" a command answers to, aliases included.
func (rc RegisteredCommand) Endpoints() []string {
	out := []string{rc.Name}
	for _, alias := range rc.Aliases {
		if ep := commands.Endpoint(alias); ep != "" {
			out = append(out, ep)
		}
	}
	return out
}

// ListCommands returns the menu entries sorted by name. Text carries no
// slash, as Telegram expects.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	list := make([]tele.Command, 0, len(r.entries))
	for _, e := range r.entries {
		if visibleOnly && e.Hidden {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(e.Name, "/"), Description: e.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand resolves a command name or alias, slash optional.
func (r *Registry) LookupCommand(name string) (RegisteredCommand, bool) {
	idx, ok := r.byEndpoint[commands.Endpoint(name)]
	if !ok {
		return RegisteredCommand{}, false
	}
	return r.entries[idx], true
}

// SetTextFallback sets the handler for text that is not a command.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.textFallback = h
}

func (r *Registry) TextFallback() tele.HandlerFunc {
	return r.textFallback
}

// SetupCommands publishes the visible commands to the Telegram command menu.
// A failure is logged; the bot keeps running without a menu.
func SetupCommands(bot *tele.Bot, reg *Registry) {
	ctx := context.Background()
	cmds := reg.ListCommands(true)
	if err := bot.SetCommands(cmds); err != nil {
		logger.Error(ctx, logger.CompTelegramWire, "register.commands",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Info(ctx, logger.CompTelegramWire, "register.commands",
		slog.String("status", "ok"),
		slog.Int("count", len(cmds)),
	)
}
