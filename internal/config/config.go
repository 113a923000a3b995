// Package config handles loading and validating gateway configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Gemini GeminiConfig `koanf:"gemini"`
	Retry  RetryConfig  `koanf:"retry"`
	Logger LoggerConfig `koanf:"logger"`
	Redis  RedisConfig  `koanf:"redis"`
}

type ServerConfig struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// GeminiConfig names the default model and the static fallback chain.
// Fallbacks maps a model to the model substituted once its retry budget is
// exhausted; a missing entry terminates the chain.
type GeminiConfig struct {
	DefaultModel string            `koanf:"default_model"`
	Fallbacks    map[string]string `koanf:"fallbacks"`
}

type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	BaseDelay   time.Duration `koanf:"base_delay"`
}

// LoggerConfig points at the external log/content sink. An empty URL
// disables shipping entirely.
type LoggerConfig struct {
	URL       string `koanf:"url"`
	AuthToken string `koanf:"auth_token"`
	AppName   string `koanf:"app_name"`
	QueueSize int    `koanf:"queue_size"`
}

type RedisConfig struct {
	Addr string `koanf:"addr"`
}

// Load reads the YAML config file, layers ROKUFUN_ environment variable
// overrides on top, and returns a validated Config. The Gemini API key is
// deliberately not part of this struct: it is read from the raw environment
// at wiring time so its absence surfaces per request, not at startup.
func Load(path string) (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	// "/" as the key delimiter: model names like "gemini-2.0-flash" appear
	// as map keys, and the default "." would split them apart.
	k := koanf.New("/")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	// ROKUFUN_SERVER_PORT -> server/port
	if err := k.Load(env.Provider("ROKUFUN_", "/", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "ROKUFUN_")),
			"_", "/",
		)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Gemini.DefaultModel == "" {
		return fmt.Errorf("gemini.default_model must be set")
	}
	// The dispatcher does not detect chain cycles at request time; reject
	// the trivial one here. Longer cycles remain an operator invariant.
	for model, fallback := range c.Gemini.Fallbacks {
		if model == fallback {
			return fmt.Errorf("gemini.fallbacks: model %q falls back to itself", model)
		}
	}
	return nil
}
