// Package bot assembles the price bot: upstream clients, the symbol
// directory, the conversation engine and the Telegram wiring around them.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/cryptobot/core/bootstrap"
	coreconfig "github.com/m3rciful/cryptobot/core/config"
	coredatabase "github.com/m3rciful/cryptobot/core/database"
	"github.com/m3rciful/cryptobot/core/httpclient"
	"github.com/m3rciful/cryptobot/core/logger"
	coretelegram "github.com/m3rciful/cryptobot/core/telegram"
	"github.com/m3rciful/cryptobot/core/telegram/router"
	tgsender "github.com/m3rciful/cryptobot/core/telegram/sender"
	"github.com/m3rciful/cryptobot/core/telegram/state"
	"github.com/m3rciful/cryptobot/core/telegram/turns"
	"github.com/m3rciful/cryptobot/internal/chart"
	"github.com/m3rciful/cryptobot/internal/coingecko"
	"github.com/m3rciful/cryptobot/internal/coinmarketcap"
	"github.com/m3rciful/cryptobot/internal/conversation"
	"github.com/m3rciful/cryptobot/internal/directory"
	"github.com/m3rciful/cryptobot/internal/quotes"
)

const stopTimeout = 5 * time.Second

// App is the assembled bot. It satisfies the runner's TelegramApp.
type App struct {
	cfg       *coreconfig.Config
	infra     *bootstrap.Result
	resolver  *directory.Resolver
	refresher *directory.Refresher
	engine    *conversation.Engine
	registry  *coretelegram.Registry
}

// New builds the application from cfg. infra carries the database opened by
// bootstrap, if any.
func New(ctx context.Context, cfg *coreconfig.Config, infra *bootstrap.Result) (*App, error) {
	if cfg == nil {
		return nil, errors.New("bot: nil config")
	}
	if infra == nil {
		infra = &bootstrap.Result{}
	}

	httpClient := NewHTTPClient(cfg)
	cmc, err := coinmarketcap.NewClient(cfg.API.CoinMarketCapKey,
		coinmarketcap.WithBaseURL(cfg.API.CoinMarketCapURL),
		coinmarketcap.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, err
	}
	gecko := NewCoinGecko(cfg, httpClient)

	resolver, _, err := OpenDirectory(ctx, cfg, gecko, infra.DB)
	if err != nil {
		return nil, err
	}

	var refresher *directory.Refresher
	if cfg.Directory.RefreshCron != "" {
		if refresher, err = directory.NewRefresher(resolver, cfg.Directory.RefreshCron); err != nil {
			return nil, err
		}
	}

	engine := conversation.NewEngine(
		quotes.NewService(cmc, gecko, resolver),
		chart.NewRenderer(cfg.Chart.Width, cfg.Chart.Height),
		state.NewMemory[conversation.State](),
	)
	return newApp(cfg, infra, resolver, refresher, engine)
}

func newApp(cfg *coreconfig.Config, infra *bootstrap.Result, resolver *directory.Resolver, refresher *directory.Refresher, engine *conversation.Engine) (*App, error) {
	a := &App{
		cfg:       cfg,
		infra:     infra,
		resolver:  resolver,
		refresher: refresher,
		engine:    engine,
	}
	reg, err := a.buildRegistry()
	if err != nil {
		return nil, err
	}
	a.registry = reg
	return a, nil
}

// NewHTTPClient returns the client shared by the upstream APIs.
func NewHTTPClient(cfg *coreconfig.Config) httpclient.Doer {
	return httpclient.New(httpclient.Options{
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	})
}

// NewCoinGecko returns the CoinGecko client described by cfg.
func NewCoinGecko(cfg *coreconfig.Config, httpClient httpclient.Doer) *coingecko.Client {
	return coingecko.NewClient(
		coingecko.WithBaseURL(cfg.API.CoinGeckoURL),
		coingecko.WithDemoKey(cfg.API.CoinGeckoKey),
		coingecko.WithHTTPClient(httpClient),
	)
}

// OpenDirectory builds the snapshot store selected by the directory backend
// and a resolver over it. db is required for the database backend.
func OpenDirectory(ctx context.Context, cfg *coreconfig.Config, lister directory.Lister, db *sqlx.DB) (*directory.Resolver, directory.Store, error) {
	store, err := openStore(ctx, cfg, db)
	if err != nil {
		return nil, nil, err
	}
	resolver := directory.NewResolver(lister,
		directory.WithStore(store),
		directory.WithTTL(time.Duration(cfg.Directory.TTLSeconds)*time.Second),
	)
	logger.Info(ctx, logger.CompApp, "directory.open",
		slog.String("backend", cfg.Directory.Backend),
		slog.Duration("ttl", resolver.TTL()),
		slog.String("schedule", cfg.Directory.RefreshCron),
	)
	return resolver, store, nil
}

func openStore(ctx context.Context, cfg *coreconfig.Config, db *sqlx.DB) (directory.Store, error) {
	switch cfg.Directory.Backend {
	case coreconfig.BackendMemory:
		return directory.NewMemoryStore(), nil
	case coreconfig.BackendDatabase:
		if db == nil {
			return nil, errors.New("bot: directory backend \"database\" needs a database connection")
		}
		store := directory.NewSQLStore(db)
		if cfg.Database.Driver == coredatabase.DriverSQLite {
			if err := store.EnsureSchema(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil
	case coreconfig.BackendFile, "":
		return directory.NewFileStore(cfg.Directory.Path), nil
	default:
		return nil, fmt.Errorf("bot: unknown directory backend %q", cfg.Directory.Backend)
	}
}

// TelegramRunOptions wires the registry, routes and lifecycle hooks.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	queue := turns.New(a.cfg.Turns.Backlog)
	routes := router.CommandRoutes(a.registry, queue)
	routes = append(routes, router.TextRoutes(a.registry, queue)...)

	return coretelegram.RunOptions{
		Config:   a.cfg,
		Registry: a.registry,
		Turns:    queue,
		DispatcherOptions: tgsender.Options{
			QueueSize:  a.cfg.Sender.QueueSize,
			Workers:    a.cfg.Sender.Workers,
			MaxRetries: a.cfg.Sender.MaxRetries,
		},
		Middlewares: coretelegram.DefaultMiddlewares(),
		Routes:      routes,
		OnStart:     a.start,
		OnStop:      a.stop,
	}, nil
}

func (a *App) start(ctx context.Context, _ coretelegram.Runtime) error {
	if a.refresher != nil {
		a.refresher.Start()
	}
	return nil
}

func (a *App) stop(ctx context.Context, _ coretelegram.Runtime) error {
	if a.refresher != nil {
		stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
		defer cancel()
		a.refresher.Stop(stopCtx)
	}
	return nil
}

// Close releases the infrastructure opened by bootstrap.
func (a *App) Close() error {
	return a.infra.Close()
}
