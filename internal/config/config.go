package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"ELDRITCH_MODEL" envDefault:"gemini-2.5-flash"`

	// DataDir overrides the embedded card data when set.
	DataDir    string `env:"ELDRITCH_DATA_DIR"`
	Seed       int64  `env:"ELDRITCH_SEED"`
	Players    int    `env:"ELDRITCH_PLAYERS" envDefault:"1"`
	AncientOne string `env:"ELDRITCH_ANCIENT_ONE" envDefault:"yog_sothoth"`

	ReserveSize    int `env:"ELDRITCH_RESERVE_SIZE" envDefault:"4"`
	ActionsPerTurn int `env:"ELDRITCH_ACTIONS_PER_TURN" envDefault:"2"`
	DoomPerMythos  int `env:"ELDRITCH_DOOM_PER_MYTHOS" envDefault:"1"`

	LogFile  string `env:"ELDRITCH_LOG_FILE" envDefault:"eldritch.log"`
	LogLevel string `env:"ELDRITCH_LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"ELDRITCH_DEBUG"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Players < 1 {
		return nil, fmt.Errorf("ELDRITCH_PLAYERS must be at least 1, got %d", cfg.Players)
	}
	if cfg.ActionsPerTurn < 1 {
		return nil, fmt.Errorf("ELDRITCH_ACTIONS_PER_TURN must be at least 1, got %d", cfg.ActionsPerTurn)
	}
	if cfg.ReserveSize < 0 {
		return nil, fmt.Errorf("ELDRITCH_RESERVE_SIZE must not be negative, got %d", cfg.ReserveSize)
	}
	return &cfg, nil
}

// RequireGemini reports an error when no Gemini API key is configured.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
