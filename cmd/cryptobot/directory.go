package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/m3rciful/cryptobot/core/bootstrap"
	corecmd "github.com/m3rciful/cryptobot/core/cmd"
	coreconfig "github.com/m3rciful/cryptobot/core/config"
	"github.com/m3rciful/cryptobot/core/logger"
	"github.com/m3rciful/cryptobot/internal/bot"
	"github.com/m3rciful/cryptobot/internal/directory"
	"github.com/m3rciful/cryptobot/migrations"
)

// directoryEnv is the directory wiring shared by the subcommands.
type directoryEnv struct {
	cfg      *coreconfig.Config
	infra    *bootstrap.Result
	resolver *directory.Resolver
	store    directory.Store
}

func (e *directoryEnv) Close() {
	_ = e.infra.Close()
	_ = logger.Shutdown()
}

func openDirectory(ctx context.Context, configPath string) (*directoryEnv, error) {
	path, err := corecmd.ResolveConfigPath(configPath, corecmd.DefaultConfigEnvVar, defaultConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	infra, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:     cfg,
		Migrations: migrations.FS,
		// keep command output readable
		LoggerInit: func(o logger.Options) error {
			o.Level = "warn"
			return logger.Init(o)
		},
	})
	if err != nil {
		return nil, err
	}
	gecko := bot.NewCoinGecko(cfg, bot.NewHTTPClient(cfg))
	resolver, store, err := bot.OpenDirectory(ctx, cfg, gecko, infra.DB)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	return &directoryEnv{cfg: cfg, infra: infra, resolver: resolver, store: store}, nil
}

func newDirectoryCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Inspect and refresh the cached coin directory",
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the coin list now and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openDirectory(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			start := time.Now()
			snap, err := env.resolver.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s coins in %s (%s backend).\n",
				humanize.Comma(int64(len(snap.Coins))), time.Since(start).Round(time.Millisecond), env.cfg.Directory.Backend)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openDirectory(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			snap, err := env.store.Get(cmd.Context())
			if err != nil {
				if errors.Is(err, directory.ErrCacheMiss) {
					fmt.Fprintln(cmd.OutOrStdout(), "No snapshot stored yet.")
					return nil
				}
				return err
			}
			printStatus(cmd.OutOrStdout(), env, snap, time.Now())
			return nil
		},
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve SYMBOL",
		Short: "Print the CoinGecko id of a ticker symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openDirectory(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			id, err := env.resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.AddCommand(refreshCmd, statusCmd, resolveCmd)
	return cmd
}

func printStatus(w io.Writer, env *directoryEnv, snap directory.Snapshot, now time.Time) {
	ttl := env.resolver.TTL()
	state := "fresh"
	if !snap.Valid(now, ttl) {
		state = "expired"
	}
	fmt.Fprintf(w, "Backend:  %s\n", env.cfg.Directory.Backend)
	if env.cfg.Directory.Backend == coreconfig.BackendFile {
		if fi, err := os.Stat(env.cfg.Directory.Path); err == nil {
			fmt.Fprintf(w, "File:     %s (%s)\n", env.cfg.Directory.Path, humanize.Bytes(uint64(fi.Size())))
		}
	}
	fmt.Fprintf(w, "Coins:    %s\n", humanize.Comma(int64(len(snap.Coins))))
	fmt.Fprintf(w, "Fetched:  %s (%s)\n", snap.FetchedAt.Format(time.RFC3339), humanize.RelTime(snap.FetchedAt, now, "ago", "from now"))
	fmt.Fprintf(w, "TTL:      %s, %s\n", ttl, state)
}
