// Package commands describes slash commands understood by the bot.
package commands

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Command is a slash command. Aliases may be given with or without the
// leading slash.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// Hidden commands work but are left out of the Telegram command menu.
	Hidden  bool
	Aliases []string
}

// Endpoint returns name in the "/name" form telebot routes on, or "" for
// blank input.
func Endpoint(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "/" {
		return ""
	}
	return "/" + strings.TrimPrefix(name, "/")
}
