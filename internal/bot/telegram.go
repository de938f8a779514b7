package bot

import (
	"context"
	"errors"

	coretelegram "github.com/m3rciful/cryptobot/core/telegram"
	"github.com/m3rciful/cryptobot/core/telegram/commands"
	tghelpers "github.com/m3rciful/cryptobot/core/telegram/helpers"
	"github.com/m3rciful/cryptobot/core/telegram/keyboard"
	"github.com/m3rciful/cryptobot/internal/conversation"

	tele "gopkg.in/telebot.v4"
)

// responder delivers engine output to the chat of one update.
type responder struct {
	c tele.Context
}

func (r responder) Reply(_ context.Context, html string) error {
	return tghelpers.SendHTML(r.c, html)
}

func (r responder) Prompt(_ context.Context, text string) error {
	return tghelpers.SendHTML(r.c, text, keyboard.RemoveKeyboard())
}

func (r responder) Photo(_ context.Context, png []byte, filename string) error {
	return tghelpers.SendPhoto(r.c, png, filename)
}

func (r responder) Menu(_ context.Context) error {
	return tghelpers.SendHTML(r.c, conversation.MenuText, keyboard.ReplyButtons(conversation.MenuButtons()...))
}

func (a *App) buildRegistry() (*coretelegram.Registry, error) {
	reg := coretelegram.NewRegistry()
	err := errors.Join(
		reg.RegisterCommand("/start", commands.Command{
			Description: "Show the help and the main menu",
			Handler:     a.input(conversation.InputStart),
		}),
		reg.RegisterCommand("/help", commands.Command{
			Description: "How to use the bot",
			Handler:     a.input(conversation.InputStart),
		}),
		reg.RegisterCommand("/cancel", commands.Command{
			Description: "Cancel the current action",
			Handler:     a.input(conversation.InputCancel),
		}),
	)
	if err != nil {
		return nil, err
	}
	reg.SetTextFallback(a.input(conversation.InputText))
	return reg, nil
}

// input feeds the update to the engine as an input of kind.
func (a *App) input(kind conversation.InputKind) tele.HandlerFunc {
	return func(c tele.Context) error {
		in := conversation.Input{Kind: kind}
		if kind == conversation.InputText {
			in.Text = c.Text()
		}
		return a.engine.Handle(tghelpers.BuildContext(c), tghelpers.ChatID(c), in, responder{c: c})
	}
}
