// Package config loads process settings from the environment.
package config

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/knight-api/internal/errors"
)

// Store backends selectable through KNIGHT_API_STORE
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Log formats selectable through KNIGHT_API_LOG_FORMAT
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds every setting the server reads at startup
type Config struct {
	HTTPPort int `env:"KNIGHT_API_HTTP_PORT" envDefault:"8080"`
	GRPCPort int `env:"KNIGHT_API_GRPC_PORT" envDefault:"50051"`

	Store string `env:"KNIGHT_API_STORE" envDefault:"redis"`

	RedisAddr         string   `env:"KNIGHT_API_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisClusterAddrs []string `env:"KNIGHT_API_REDIS_CLUSTER_ADDRS" envSeparator:","`
	RedisPoolSize     int      `env:"KNIGHT_API_REDIS_POOL_SIZE" envDefault:"10"`

	DatabaseURL string `env:"KNIGHT_API_DATABASE_URL"`

	LogLevel  string `env:"KNIGHT_API_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"KNIGHT_API_LOG_FORMAT" envDefault:"text"`
}

// Load reads .env files when present, then parses the environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to load env file")
	}

	return Parse()
}

// Parse builds a Config from the current environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ports, the store choice and logging settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("KNIGHT_API_HTTP_PORT", c.HTTPPort, 1, 65535, vb)
	errors.ValidateRange("KNIGHT_API_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	if c.HTTPPort == c.GRPCPort {
		vb.Field("KNIGHT_API_GRPC_PORT", "must differ from KNIGHT_API_HTTP_PORT")
	}

	errors.ValidateEnum("KNIGHT_API_STORE", c.Store, []string{StoreRedis, StorePostgres, StoreMemory}, vb)
	switch c.Store {
	case StoreRedis:
		if len(c.RedisClusterAddrs) == 0 {
			errors.ValidateRequired("KNIGHT_API_REDIS_ADDR", c.RedisAddr, vb)
		}
		if c.RedisPoolSize < 1 {
			vb.Field("KNIGHT_API_REDIS_POOL_SIZE", "must be positive")
		}
	case StorePostgres:
		errors.ValidateRequired("KNIGHT_API_DATABASE_URL", c.DatabaseURL, vb)
	}

	errors.ValidateEnum("KNIGHT_API_LOG_LEVEL", strings.ToLower(c.LogLevel),
		[]string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("KNIGHT_API_LOG_FORMAT", strings.ToLower(c.LogFormat),
		[]string{LogFormatText, LogFormatJSON}, vb)

	return vb.Build()
}
