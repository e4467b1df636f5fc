package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment onto the Config.
// A .env file in the working directory is loaded first when present,
// matching the reference deployment. Variables that are not set leave the
// existing values untouched.
func parseEnv(config *Config) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
