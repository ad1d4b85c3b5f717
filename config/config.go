// Package config stores environment-driven settings for the demo binaries.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config stores environment-driven settings for the router demo.
type Config struct {
	// Provider selects the model provider.
	Provider string `env:"ROTEIRO_PROVIDER" envDefault:"anthropic" validate:"oneof=anthropic openai"`
	// Model is the provider model identifier.
	Model string `env:"ROTEIRO_MODEL" envDefault:"claude-sonnet-4-20250514" validate:"required"`
	// AnthropicAPIKey authenticates against Anthropic.
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	// OpenAIAPIKey authenticates against OpenAI.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	// DatabasePath is where the demo SQLite file lives.
	DatabasePath string `env:"ROTEIRO_DB_PATH" envDefault:"data/demo.db" validate:"required"`
	// RulesPath optionally overrides the built-in selector keyword table.
	RulesPath string `env:"ROTEIRO_RULES_PATH"`
	// LogLevel sets the logger level.
	LogLevel string `env:"ROTEIRO_LOG_LEVEL" envDefault:"info"`
}

// APIKey returns the key for the configured provider.
func (c Config) APIKey() string {
	if c.Provider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.AnthropicAPIKey
}

// Load parses environment variables into Config and validates them. A
// missing API key for the chosen provider is a configuration error.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate configuration: %w", err)
	}
	if cfg.APIKey() == "" {
		return Config{}, fmt.Errorf("missing API key for provider %s", cfg.Provider)
	}
	return cfg, nil
}
