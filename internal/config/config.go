package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config application configuration, populated from environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"Marketplace API"`
	Environment string `env:"APP_ENV" envDefault:"development"` // development, staging, production
	Port        string `env:"APP_PORT" envDefault:"8080"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"marketplace"`
	Password string `env:"DB_PASSWORD" envDefault:"secret"`
	Name     string `env:"DB_NAME" envDefault:"marketplace_dev"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MaxConns          int32         `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConns          int32         `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"5m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"1m"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MaxRetries        int           `env:"DB_MAX_RETRIES" envDefault:"5"`
	RetryDelay        time.Duration `env:"DB_RETRY_DELAY" envDefault:"1s"`
	ConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" envDefault:"marketplace"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

type RedisConfig struct {
	Host     string        `env:"REDIS_HOST" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	Enabled  bool          `env:"REDIS_ENABLED" envDefault:"true"`
	StatsTTL time.Duration `env:"RATING_CACHE_TTL" envDefault:"5m"`
}

type JWTConfig struct {
	Secret            string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`
	AccessTokenExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`
	BcryptCost        int           `env:"BCRYPT_COST" envDefault:"12"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"postgres"` // postgres | mongo
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that would make the process unsafe or unusable
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", c.Storage.Driver, DriverPostgres, DriverMongo)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Storage.Driver == DriverPostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
