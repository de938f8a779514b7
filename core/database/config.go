package database

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DriverPostgres connects through lib/pq.
	DriverPostgres = "postgres"
	// DriverSQLite opens a local file through modernc.org/sqlite.
	DriverSQLite = "sqlite"

	defaultSQLitePath = "cryptobot.db"
)

// Config holds database connection settings.
type Config struct {
	Driver         string `yaml:"driver" envconfig:"DB_DRIVER"`
	Path           string `yaml:"path" envconfig:"DB_PATH"`
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Normalize validates cfg and fills driver-specific defaults.
func Normalize(cfg *Config) error {
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch cfg.Driver {
	case "", DriverSQLite, "sqlite3":
		cfg.Driver = DriverSQLite
		if strings.TrimSpace(cfg.Path) == "" {
			cfg.Path = defaultSQLitePath
		}
		// one writer keeps sqlite free of SQLITE_BUSY
		cfg.MaxConnections = 1
	case DriverPostgres, "postgresql":
		cfg.Driver = DriverPostgres
		if strings.TrimSpace(cfg.Host) == "" || strings.TrimSpace(cfg.Name) == "" {
			return fmt.Errorf("database.host and database.name are required for the postgres driver")
		}
		if cfg.Port == "" {
			cfg.Port = "5432"
		}
		if cfg.SSLMode == "" {
			cfg.SSLMode = "disable"
		}
		if cfg.MaxConnections <= 0 {
			cfg.MaxConnections = 4
		}
	default:
		return fmt.Errorf("invalid database.driver %q; allowed: postgres, sqlite", cfg.Driver)
	}
	return nil
}

// DSN is the connection string passed to sqlx.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// URL is the postgres:// form used by migrations.
func (c Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
