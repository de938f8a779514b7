package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/cryptobot/core/config"
	coredatabase "github.com/m3rciful/cryptobot/core/database"
	"github.com/m3rciful/cryptobot/core/logger"
)

func noLogger(logger.Options) error { return nil }

func TestRunSkipsDatabaseForFileBackend(t *testing.T) {
	t.Parallel()

	cfg := &coreconfig.Config{
		Logging:   coreconfig.LoggingConfig{Level: "debug", Format: "kv", BotFile: "bot.log"},
		Directory: coreconfig.DirectoryConfig{Backend: coreconfig.BackendFile},
	}
	var got logger.Options
	res, err := Run(context.Background(), Options{
		Config:     cfg,
		LoggerInit: func(o logger.Options) error { got = o; return nil },
		Connect: func(context.Context, coredatabase.Config) (*sqlx.DB, error) {
			t.Fatal("connect must not be called")
			return nil, nil
		},
	})
	require.NoError(t, err)
	assert.Nil(t, res.DB)
	assert.NoError(t, res.Close())
	assert.Equal(t, "debug", got.Level)
	assert.Equal(t, "kv", got.Format)
	assert.Equal(t, "bot.log", got.File)
}

func TestRunConnectsAndMigrates(t *testing.T) {
	t.Parallel()

	dbCfg := coredatabase.Config{Driver: coredatabase.DriverSQLite, Path: filepath.Join(t.TempDir(), "bot.db")}
	require.NoError(t, coredatabase.Normalize(&dbCfg))
	cfg := &coreconfig.Config{
		Directory: coreconfig.DirectoryConfig{Backend: coreconfig.BackendDatabase},
		Database:  dbCfg,
	}
	migrations := fstest.MapFS{"0001_x.up.sql": {Data: []byte("SELECT 1;")}}

	var migrated bool
	res, err := Run(context.Background(), Options{
		Config:     cfg,
		Migrations: migrations,
		LoggerInit: noLogger,
		Migrate: func(_ context.Context, c coredatabase.Config, fsys fs.FS) error {
			migrated = true
			assert.Equal(t, coredatabase.DriverSQLite, c.Driver)
			assert.NotNil(t, fsys)
			return nil
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.DB)
	assert.True(t, migrated)
	require.NoError(t, res.DB.PingContext(context.Background()))
	require.NoError(t, res.Close())
}

func TestRunFailures(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{})
	require.Error(t, err)

	boom := errors.New("boom")
	_, err = Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		LoggerInit: func(logger.Options) error { return boom },
	})
	require.ErrorIs(t, err, boom)

	_, err = Run(context.Background(), Options{
		Config:     &coreconfig.Config{Directory: coreconfig.DirectoryConfig{Backend: coreconfig.BackendDatabase}},
		LoggerInit: noLogger,
		Connect: func(context.Context, coredatabase.Config) (*sqlx.DB, error) {
			return nil, boom
		},
	})
	require.ErrorIs(t, err, boom)
}
