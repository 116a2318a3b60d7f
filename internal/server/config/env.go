package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotenvFiles are loaded, when present, before the environment is read.
// Variables already set in the process environment take precedence.
var dotenvFiles = []string{".env"}

// parseEnv overlays environment variables. NODE_ENV=production turns on
// Production.
func parseEnv(cfg *Config) error {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Environment == "production" {
		cfg.Production = true
	}
	return nil
}
