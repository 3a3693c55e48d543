package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally seeded from a
// .env file. A missing .env file is not an error; the process environment
// always wins.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
