package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coredatabase "github.com/m3rciful/cryptobot/core/database"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir" envconfig:"LOG_DIR"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// APIConfig holds upstream price API credentials and endpoints.
type APIConfig struct {
	CoinMarketCapKey string `yaml:"coinmarketcap_key" envconfig:"CMC_API_KEY"`
	CoinMarketCapURL string `yaml:"coinmarketcap_url" envconfig:"CMC_BASE_URL"`
	CoinGeckoKey     string `yaml:"coingecko_key" envconfig:"COINGECKO_API_KEY"`
	CoinGeckoURL     string `yaml:"coingecko_url" envconfig:"COINGECKO_BASE_URL"`
	TimeoutSeconds   int    `yaml:"timeout_seconds" envconfig:"API_TIMEOUT_SECONDS"`
}

// DirectoryConfig controls the cached symbol directory.
type DirectoryConfig struct {
	Backend     string `yaml:"backend" envconfig:"DIRECTORY_BACKEND"`
	Path        string `yaml:"path" envconfig:"DIRECTORY_CACHE_PATH"`
	TTLSeconds  int    `yaml:"ttl_seconds" envconfig:"DIRECTORY_TTL_SECONDS"`
	RefreshCron string `yaml:"refresh_cron" envconfig:"DIRECTORY_REFRESH_CRON"`
}

// ChartConfig sets the rendered chart size in pixels.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SenderConfig tunes the outbound message dispatcher.
type SenderConfig struct {
	QueueSize  int `yaml:"queue_size"`
	Workers    int `yaml:"workers"`
	MaxRetries int `yaml:"max_retries"`
}

// TurnsConfig bounds the per-chat inbound backlog.
type TurnsConfig struct {
	Backlog int `yaml:"backlog"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// BackendFile stores the directory in a local JSON file.
	BackendFile = "file"
	// BackendMemory keeps the directory in process memory only.
	BackendMemory = "memory"
	// BackendDatabase stores the directory through the database section.
	BackendDatabase = "database"
)

const (
	defaultCoinMarketCapURL = "https://pro-api.coinmarketcap.com"
	defaultCoinGeckoURL     = "https://api.coingecko.com"
	defaultCachePath        = "coingecko_cache.json"
	defaultDirectoryTTL     = 3600
	defaultAPITimeout       = 15
)

// Config aggregates the bot configuration.
type Config struct {
	Telegram  TelegramConfig      `yaml:"telegram"`
	Webhook   WebhookConfig       `yaml:"webhook"`
	Logging   LoggingConfig       `yaml:"logging"`
	API       APIConfig           `yaml:"api"`
	Directory DirectoryConfig     `yaml:"directory"`
	Database  coredatabase.Config `yaml:"database"`
	Chart     ChartConfig         `yaml:"chart"`
	Sender    SenderConfig        `yaml:"sender"`
	Turns     TurnsConfig         `yaml:"turns"`
}

// Load reads configuration from a YAML file and environment variables.
// A missing file is tolerated so the bot can run from the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if strings.TrimSpace(cfg.API.CoinMarketCapKey) == "" {
		return fmt.Errorf("api.coinmarketcap_key is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" {
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if err := normalizeAPI(&cfg.API); err != nil {
		return err
	}
	if err := normalizeDirectory(&cfg.Directory); err != nil {
		return err
	}
	if cfg.Directory.Backend == BackendDatabase {
		if err := coredatabase.Normalize(&cfg.Database); err != nil {
			return err
		}
	}

	if cfg.Chart.Width < 0 || cfg.Chart.Height < 0 {
		return fmt.Errorf("chart.width and chart.height must be >= 0")
	}
	if cfg.Turns.Backlog < 0 {
		return fmt.Errorf("turns.backlog must be >= 0")
	}
	return nil
}

func normalizeAPI(api *APIConfig) error {
	api.CoinMarketCapURL = strings.TrimRight(strings.TrimSpace(api.CoinMarketCapURL), "/")
	if api.CoinMarketCapURL == "" {
		api.CoinMarketCapURL = defaultCoinMarketCapURL
	}
	api.CoinGeckoURL = strings.TrimRight(strings.TrimSpace(api.CoinGeckoURL), "/")
	if api.CoinGeckoURL == "" {
		api.CoinGeckoURL = defaultCoinGeckoURL
	}
	if api.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must be >= 0")
	}
	if api.TimeoutSeconds == 0 {
		api.TimeoutSeconds = defaultAPITimeout
	}
	return nil
}

func normalizeDirectory(dir *DirectoryConfig) error {
	backend := strings.ToLower(strings.TrimSpace(dir.Backend))
	if backend == "" {
		backend = BackendFile
	}
	switch backend {
	case BackendFile:
		if strings.TrimSpace(dir.Path) == "" {
			dir.Path = defaultCachePath
		}
	case BackendMemory, BackendDatabase:
	default:
		return fmt.Errorf("invalid directory.backend %q; allowed: file, memory, database", dir.Backend)
	}
	dir.Backend = backend

	if dir.TTLSeconds < 0 {
		return fmt.Errorf("directory.ttl_seconds must be >= 0")
	}
	if dir.TTLSeconds == 0 {
		dir.TTLSeconds = defaultDirectoryTTL
	}
	dir.RefreshCron = strings.TrimSpace(dir.RefreshCron)
	return nil
}
