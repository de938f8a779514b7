// Package state keeps per-chat session values for Telegram bots.
// It is domain-agnostic; the bot decides what a session holds.
package state
