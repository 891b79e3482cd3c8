// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Prefix is prepended to every environment variable name
const Prefix = "LUDO_"

// Store names accepted for LUDO_STORE
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds every setting the commands read from the environment
type Config struct {
	// Store selects the session store, memory or redis
	Store string `env:"STORE" envDefault:"memory"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// SessionTTL is how long an untouched game stays in redis
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// DiceSeed makes rolls reproducible, zero seeds from the clock
	DiceSeed int64 `env:"DICE_SEED" envDefault:"0"`

	// RollBagCopies enables bag rolling when positive
	RollBagCopies int `env:"ROLL_BAG_COPIES" envDefault:"0"`

	// BotWeights is an optional YAML file overriding the bot weights
	BotWeights string `env:"BOT_WEIGHTS"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Players and Bots size the simulated game
	Players int `env:"PLAYERS" envDefault:"4"`
	Bots    int `env:"BOTS" envDefault:"4"`
}

// Load reads the given .env files, when present, then parses the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env cannot check on its own
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl cannot be negative: %s", c.SessionTTL)
	}
	if c.RollBagCopies < 0 {
		return fmt.Errorf("roll bag copies cannot be negative: %d", c.RollBagCopies)
	}
	if c.Players < 2 || c.Players > 4 {
		return fmt.Errorf("players must be between 2 and 4, got %d", c.Players)
	}
	if c.Bots < 0 || c.Bots > c.Players {
		return fmt.Errorf("bots must be between 0 and %d, got %d", c.Players, c.Bots)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}
