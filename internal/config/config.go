// Package config loads runtime configuration from environment variables
// prefixed with BLOCKSCOPE and validates it before anything is wired up.
package config

import (
	"time"

	"github.com/blockscope/blockscope/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every environment variable the application reads,
// e.g. BLOCKSCOPE_RPC_ENDPOINT.
const envPrefix = "blockscope"

// Config holds every runtime setting of the application.
type Config struct {
	// RPCEndpoint is the Ethereum JSON-RPC endpoint to inspect.
	RPCEndpoint string `envconfig:"RPC_ENDPOINT" validate:"required,url"`

	// LogLevel selects the minimum log severity (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// PollInterval is how often the live monitor checks for new blocks.
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"3s" validate:"gt=0"`

	// TelemetryEnabled turns OTLP trace, metric, and log export on.
	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`

	// RedisAddr enables checkpoint persistence for the live monitor when
	// set. Leaving it empty keeps checkpointing in-process only.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
