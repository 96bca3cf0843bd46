package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"ABSURD_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	SaveDir      string `env:"ABSURD_SAVE_DIR" envDefault:".saves"`
	HTTPAddr     string `env:"ABSURD_HTTP_ADDR" envDefault:":3001"`
	DBPath       string `env:"ABSURD_DB_PATH"`
	ContentPath  string `env:"ABSURD_CONTENT"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// RequireGeminiKey reports an error when no Gemini key is configured.
func (c *Config) RequireGeminiKey() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
