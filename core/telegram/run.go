package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	coreconfig "github.com/m3rciful/cryptobot/core/config"
	"github.com/m3rciful/cryptobot/core/httpclient"
	"github.com/m3rciful/cryptobot/core/logger"
	tghelpers "github.com/m3rciful/cryptobot/core/telegram/helpers"
	tgsender "github.com/m3rciful/cryptobot/core/telegram/sender"
	"github.com/m3rciful/cryptobot/core/telegram/turns"

	tele "gopkg.in/telebot.v4"
)

const (
	// clientSlack is added to the long-poll timeout so getUpdates is never
	// cut off by the HTTP client.
	clientSlack  = 15 * time.Second
	drainTimeout = 10 * time.Second
)

// Middleware describes a global bot middleware to be registered via bot.Use.
type Middleware struct {
	Name string
	Use  func(next tele.HandlerFunc) tele.HandlerFunc
}

// Route declares a single bot handler bound to an arbitrary endpoint.
// Endpoint values are passed directly to tele.Bot.Handle.
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// RunOptions controls the behaviour of RunTelegram.
type RunOptions struct {
	Config   *coreconfig.Config
	Registry *Registry

	DispatcherOptions tgsender.Options
	Dispatcher        *tgsender.Dispatcher
	Turns             *turns.Queue

	Middlewares []Middleware
	Routes      []Route

	OnStart func(ctx context.Context, rt Runtime) error
	OnStop  func(ctx context.Context, rt Runtime) error
}

// Runtime exposes runtime components to lifecycle hooks.
type Runtime struct {
	Bot        *tele.Bot
	Dispatcher *tgsender.Dispatcher
	Turns      *turns.Queue
	Registry   *Registry
}

// RunTelegram composes and runs a Telegram bot until the provided context is done.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Config == nil {
		return fmt.Errorf("telegram: nil config provided")
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}

	started := time.Now()
	bot, err := newBot(opts.Config)
	if err != nil {
		return err
	}
	logMode(ctx, bot, opts.Config, time.Since(started))

	rt := Runtime{
		Bot:        bot,
		Dispatcher: opts.Dispatcher,
		Turns:      opts.Turns,
		Registry:   opts.Registry,
	}
	if rt.Dispatcher == nil {
		rt.Dispatcher = tgsender.NewDispatcher(opts.DispatcherOptions)
	}
	if rt.Turns == nil {
		rt.Turns = turns.New(opts.Config.Turns.Backlog)
	}
	tghelpers.SetDispatcher(rt.Dispatcher)
	wire(bot, opts)

	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, rt); err != nil {
			shutdown(rt)
			return err
		}
	}

	runErr := serve(ctx, bot)

	var stopErr error
	if opts.OnStop != nil {
		stopErr = opts.OnStop(context.WithoutCancel(ctx), rt)
	}
	shutdown(rt)

	if stopErr != nil {
		return stopErr
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func newBot(cfg *coreconfig.Config) (*tele.Bot, error) {
	wait := longPollTimeout(cfg.Telegram.LongPollTimeoutSeconds) + clientSlack
	bot, err := tele.NewBot(tele.Settings{
		Token: cfg.Telegram.Token,
		Poller: BuildPoller(PollerOptions{
			RunMode:                cfg.Telegram.RunMode,
			LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
			Webhook: WebhookOptions{
				Listen: cfg.Webhook.Listen,
				Port:   cfg.Webhook.Port,
				URL:    cfg.Webhook.URL,
			},
		}),
		Client: httpclient.New(httpclient.Options{Timeout: wait, ResponseTimeout: wait}),
		// handlers only enqueue turns
		Synchronous: true,
		OnError:     logBotError,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	return bot, nil
}

func logBotError(err error, c tele.Context) {
	ctx := context.Background()
	if c != nil {
		ctx = tghelpers.BuildContext(c)
	}
	logger.Error(ctx, logger.CompTelegram, "bot.error",
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
}

// logMode reports how updates arrive. Long polling also clears any webhook
// left over from an earlier deployment, since Telegram refuses getUpdates
// while one is set.
func logMode(ctx context.Context, bot *tele.Bot, cfg *coreconfig.Config, took time.Duration) {
	if wh, ok := bot.Poller.(*tele.Webhook); ok {
		logger.Info(ctx, logger.CompTelegram, "mode",
			slog.String("mode", RunModeWebhook),
			slog.String("listen", wh.Listen),
			slog.String("public_url", wh.Endpoint.PublicURL),
			slog.Duration("duration", took),
		)
		return
	}
	logger.Info(ctx, logger.CompTelegram, "mode",
		slog.String("mode", "polling"),
		slog.Duration("timeout", longPollTimeout(cfg.Telegram.LongPollTimeoutSeconds)),
		slog.Duration("duration", took),
	)
	if err := bot.RemoveWebhook(false); err != nil {
		logger.Warn(ctx, logger.CompTelegram, "delete_webhook",
			slog.String("status", "fail"),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return
	}
	logger.Info(ctx, logger.CompTelegram, "delete_webhook", slog.String("status", "ok"))
}

func wire(bot *tele.Bot, opts RunOptions) {
	for _, mw := range opts.Middlewares {
		if mw.Use != nil {
			bot.Use(mw.Use)
		}
	}
	for _, route := range opts.Routes {
		if route.Endpoint != nil && route.Handler != nil {
			bot.Handle(route.Endpoint, route.Handler)
		}
	}
	SetupCommands(bot, opts.Registry)
}

// serve blocks until the poller stops on its own or ctx is done.
func serve(ctx context.Context, bot *tele.Bot) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		bot.Start()
	}()
	select {
	case <-ctx.Done():
		bot.Stop()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

// shutdown lets queued turns finish before the dispatcher stops, so their
// replies still go out.
func shutdown(rt Runtime) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := rt.Turns.Close(ctx); err != nil {
		logger.Warn(ctx, logger.CompTurns, "drain",
			slog.String("status", "fail"),
			slog.Int("backlog", rt.Turns.Pending()),
			slog.String("err", err.Error()),
		)
	}
	rt.Dispatcher.Close()
	tghelpers.SetDispatcher(nil)
}
