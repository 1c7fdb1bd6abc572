package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the agenda backend.
type Config struct {
	DBPath             string
	Port               string
	CORSAllowedOrigins []string
	GinMode            string
}

// Load reads configuration from the environment, with an optional .env file.
// A missing .env is not an error; explicit environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:  getEnv("DB_PATH", "agenda.db"),
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", ""),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
