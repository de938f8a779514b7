package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/m3rciful/cryptobot/core/bootstrap"
	corecmd "github.com/m3rciful/cryptobot/core/cmd"
	coreconfig "github.com/m3rciful/cryptobot/core/config"
	"github.com/m3rciful/cryptobot/internal/bot"
	"github.com/m3rciful/cryptobot/migrations"
)

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return corecmd.Run(corecmd.Options{
				ConfigPath:        *configPath,
				DefaultConfigPath: defaultConfigPath,
				LoadConfig:        coreconfig.Load,
				Bootstrap:         bootstrapApp,
			})
		},
	}
}

func bootstrapApp(ctx context.Context, cfg *coreconfig.Config) (corecmd.TelegramApp, error) {
	infra, err := bootstrap.Run(ctx, bootstrap.Options{Config: cfg, Migrations: migrations.FS})
	if err != nil {
		return nil, err
	}
	app, err := bot.New(ctx, cfg, infra)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	return app, nil
}
