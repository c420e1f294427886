package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`
	// BaseURL is the public URL the health checker probes.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// HealthInterval is the spacing between health probes.
	HealthInterval time.Duration `env:"HEALTH_INTERVAL" envDefault:"10m"`
	// StartPacing spaces the game-start reveal phases for the clients'
	// animations. Zero makes the start pipeline synchronous.
	StartPacing time.Duration `env:"START_PACING" envDefault:"500ms"`
}

// Load reads configuration from the environment, with a best-effort .env
// file on top for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
