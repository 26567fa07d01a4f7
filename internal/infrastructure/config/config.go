package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// Timezone decides which calendar day a clock-in belongs to.
	Timezone string `env:"TIMEZONE,  default=UTC"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET, required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,       default=168h"`
	AppURL        string        `env:"APP_URL,         default=http://localhost:3000"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL, default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=timeclock"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST,      default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT,      default=465"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	FromName string `env:"SMTP_FROM_NAME, default=Time Clock"`
	Workers  int    `env:"MAIL_WORKERS,   default=2"`
}

// Enabled reports whether SMTP credentials were provided.
func (c SMTPConfig) Enabled() bool {
	return c.Username != ""
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Location resolves Timezone into a *time.Location.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
