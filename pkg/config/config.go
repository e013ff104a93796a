package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "storefront"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageBackendSQLite = "sqlite"
	StorageBackendRedis  = "redis"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL  string        `envconfig:"STOREFRONT_API_BASE_URL" default:"https://localhost:7263/api"`
	Timeout  time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"30s"`
	PageSize int           `envconfig:"STOREFRONT_API_PAGE_SIZE" default:"6"`
}

func (a APIConfig) validate() error {
	if strings.TrimSpace(a.BaseURL) == "" {
		return fmt.Errorf("api base url is required")
	}
	parsed, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api base url must be http or https, got %q", parsed.Scheme)
	}
	if a.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	return nil
}

type StorageConfig struct {
	Backend string `envconfig:"STOREFRONT_STORAGE_BACKEND" default:"sqlite"`
	Path    string `envconfig:"STOREFRONT_STORAGE_PATH" default:".storefront/session.db"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendSQLite:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("storage path is required for the sqlite backend")
		}
	case StorageBackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}
