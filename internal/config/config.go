package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment. All values are read
// once at startup; handlers never touch os.Getenv directly.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Upstream completion API. An empty key disables the optimize feature
	// instead of failing requests.
	OpenRouterAPIKey string
	OpenRouterAPIURL string
	OpenRouterModel  string

	// ServerURL is where the terminal client reaches the API.
	ServerURL string
}

const (
	defaultAPIURL = "https://openrouter.ai/api/v1"
	defaultModel  = "z-ai/glm-4.5-air:free"
)

func Load() Config {
	// Best effort; a missing .env just means everything comes from the
	// real environment.
	_ = godotenv.Load()

	return Config{
		Port:             envOr("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterAPIURL: envOr("OPENROUTER_API_URL", defaultAPIURL),
		OpenRouterModel:  envOr("OPENROUTER_MODEL", defaultModel),
		ServerURL:        envOr("JOTTER_SERVER", "http://localhost:8080"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
