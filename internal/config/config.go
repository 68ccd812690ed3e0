// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings for both the web client and the bills API.
type Config struct {
	// WebAddr is the listen address of the employee web client.
	WebAddr string `env:"WEB_ADDR" envDefault:":8080"`

	// APIAddr is the listen address of the bills API.
	APIAddr string `env:"API_ADDR" envDefault:":8081"`

	// APIBaseURL is where the web client reaches the bills API, and
	// the prefix under which attachment URLs are minted.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8081"`

	// SessionSecret signs session tokens. It must match the secret of
	// the login service that issues them.
	SessionSecret string `env:"SESSION_SECRET"`

	// SessionTTL is how long issued session tokens stay valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// DBPath is the SQLite database file of the bills API.
	DBPath string `env:"DB_PATH" envDefault:"./data/bills.db"`

	// UploadDir is where the bills API keeps receipt attachments.
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./data/uploads"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
