package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`
	Model        string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"amelie.db"`
	SessionPath  string `env:"SESSION_PATH" envDefault:"session.db"`

	// Bot behavior
	BotName         string `env:"BOT_NAME" envDefault:"Amelie"`
	MaxHistoryPairs int    `env:"MAX_HISTORY_PAIRS" envDefault:"500"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
