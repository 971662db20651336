// Package config loads petu's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Storage backends.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// DefaultJWTSecret is the development signing key; production refuses it.
const DefaultJWTSecret = "change-me-in-production"

// Config holds all application configuration.
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Storage    string         `env:"PETU_STORAGE" envDefault:"sqlite"`
	SQLitePath string         `env:"SQLITE_PATH" envDefault:"./database.db"`
	Postgres   PostgresConfig `envPrefix:"DB_"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ExampleFallback bool     `env:"EXAMPLE_FALLBACK" envDefault:"false"`
	DefaultHostName string   `env:"DEFAULT_HOST_NAME" envDefault:"Usuario Petu"`

	Redis RedisConfig `envPrefix:"REDIS_"`
}

// PostgresConfig holds connection settings for the hosted backend.
// URL wins over the individual parts when set.
type PostgresConfig struct {
	URL      string `env:"URL"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"petu"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// RedisConfig configures the optional event-list cache. An empty Addr
// disables it.
type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}

// DSN builds a libpq-compatible connection string.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	// DATABASE_URL is the conventional name hosted providers hand out.
	if cfg.Postgres.URL == "" {
		cfg.Postgres.URL = os.Getenv("DATABASE_URL")
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations the type system cannot.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for sqlite storage"))
		}
	case StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("PETU_STORAGE must be %q or %q, got %q", StorageSQLite, StoragePostgres, c.Storage))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		errs = append(errs, errors.New("REDIS_CACHE_TTL must be positive"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
