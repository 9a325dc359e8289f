package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server
	ServerPort string

	// Database; empty disables analysis history
	DatabaseURL string

	// Pricing
	Region         string
	PriceTablePath string

	// CORS
	CORSAllowOrigin string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      envOrDefault("SERVER_PORT", "8080"),
		DatabaseURL:     envOrDefault("DATABASE_URL", ""),
		Region:          envOrDefault("GCP_REGION", "us-east4"),
		PriceTablePath:  envOrDefault("PRICE_TABLE_PATH", ""),
		CORSAllowOrigin: envOrDefault("CORS_ALLOW_ORIGIN", "http://localhost:5173"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
