// Package config loads runtime settings from the environment
package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all settings the assistant reads from the environment.
// Command-line flags parsed in main take precedence over these values.
type Config struct {
	BaseURL     string `env:"OLLAMA_BASE_URL" envDefault:"http://127.0.0.1:11434/v1"`
	APIKey      string `env:"OPENAI_API_KEY"`
	Model       string `env:"MODEL_NAME" envDefault:"qwen2.5-coder:14b"`
	SessionFile string `env:"SESSION_FILE"`
	Debug       bool   `env:"DEBUG"`
}

// Load reads an optional .env file, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
