package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/mcoot/connectn-go/internal/validator"
)

// DefaultEnvFile is read, when present, before the environment
const DefaultEnvFile = ".env"

// Config holds every setting the connectn binary reads from the environment.
// Command-line flags override these values.
type Config struct {
	LogLevel    string `env:"CONNECTN_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	LogFormat   string `env:"CONNECTN_LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	Output      string `env:"CONNECTN_OUTPUT" env-default:"text" validate:"oneof=text json"`
	Verbose     bool   `env:"CONNECTN_VERBOSE"`
	StorageType string `env:"CONNECTN_STORAGE" env-default:"memory" validate:"oneof=memory redis"`
	Preset      string `env:"CONNECTN_PRESET" env-default:"tictactoe" validate:"required"`
	Seed        uint64 `env:"CONNECTN_SEED"`
	Trace       bool   `env:"CONNECTN_TRACE"`
	Redis       Redis  `env-prefix:"CONNECTN_REDIS_"`
}

// Redis holds connection settings used when StorageType is redis
type Redis struct {
	URL          string        `env:"URL" env-default:"redis://localhost:6379" validate:"required"`
	PoolSize     int           `env:"POOL_SIZE" env-default:"10" validate:"gt=0"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" env-default:"2" validate:"gte=0"`
	PresetTTL    time.Duration `env:"PRESET_TTL" env-default:"0s" validate:"gte=0"`
}

// Load reads envFile (if it exists) into the process environment and then
// builds a Config from the environment
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
