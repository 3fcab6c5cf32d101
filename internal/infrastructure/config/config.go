// Package config loads the storefront configuration from the environment.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/shopspring/decimal"
)

// DefaultSecretKey signs sessions when SECRET_KEY is unset. It is only fit
// for local development.
const DefaultSecretKey = "nothingspecial"

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	SecretKey string `env:"SECRET_KEY, default=nothingspecial"`

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Catalog  CatalogConfig
	Store    StoreConfig
}

type DatabaseConfig struct {
	// URI selects the backend by scheme: postgres://, mysql://, sqlite:// or
	// mongodb://.
	URI string `env:"DB_URI,   default=sqlite:///books.db"`
	// Mongo is the database used with a mongodb:// URI that names none.
	Mongo string `env:"MONGO_DB, default=bookstore"`
}

type RedisConfig struct {
	// URL, e.g. rediss://:pw@host:6380/0, overrides the fields below.
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SessionConfig struct {
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
}

type CatalogConfig struct {
	BaseURL string        `env:"CATALOG_BASE_URL, default=https://www.googleapis.com/books/v1"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT,  default=5s"`
	APIKey  string        `env:"CATALOG_API_KEY"`
}

type StoreConfig struct {
	DatasetPath    string          `env:"DATASET_PATH"`
	PriceRate      decimal.Decimal `env:"PRICE_RATE,       default=83"`
	PriceCurrency  string          `env:"PRICE_CURRENCY,   default=INR"`
	HomeSampleSize int             `env:"HOME_SAMPLE_SIZE, default=4"`
	// AuthRateLimit is the per-IP request rate allowed on login and
	// registration submissions, in requests per second.
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT, default=5"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("config: SESSION_TTL must be positive")
	}
	if !cfg.Store.PriceRate.IsPositive() {
		return nil, fmt.Errorf("config: PRICE_RATE must be positive")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// UsesMongo reports whether DB_URI names a MongoDB deployment.
func (c *Config) UsesMongo() bool {
	return strings.HasPrefix(c.Database.URI, "mongodb://") ||
		strings.HasPrefix(c.Database.URI, "mongodb+srv://")
}
