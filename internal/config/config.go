package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads the optional .env file and then parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return Parse()
}

// Parse reads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Rating.KFactor <= 0 || cfg.Rating.ProvisionalKFactor <= 0 {
		return Config{}, fmt.Errorf("rating k factors must be positive, got %d and %d", cfg.Rating.KFactor, cfg.Rating.ProvisionalKFactor)
	}
	if cfg.InvitationTTL <= 0 || cfg.ChallengeTTL <= 0 {
		return Config{}, fmt.Errorf("invitation and challenge ttl must be positive")
	}
	return cfg, nil
}
