// Package config loads the gateway's runtime configuration: per-vendor API
// keys and numeric limits. Values come from the environment, optionally
// seeded from a .env file. The resulting Config is owned by the caller and
// passed by reference into the provider registry; adapters never mutate it.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultMaxTokens is the fallback output token budget applied when a model
// entry does not carry its own limit and MAX_TOKENS is unset.
const DefaultMaxTokens = 4096

// Config carries the credentials and limits consumed by provider adapters.
type Config struct {
	GeminiAPIKey     string
	OpenRouterAPIKey string
	FalAPIKey        string
	MaxTokens        int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win over
// file values. Environment variables:
//   - GEMINI_API_KEY
//   - OPENROUTER_API_KEY
//   - FAL_API_KEY
//   - MAX_TOKENS (optional, defaults to DefaultMaxTokens)
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be populated directly.
	_ = godotenv.Load()

	config := &Config{
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		FalAPIKey:        os.Getenv("FAL_API_KEY"),
		MaxTokens:        DefaultMaxTokens,
	}

	if raw := os.Getenv("MAX_TOKENS"); raw != "" {
		maxTokens, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_TOKENS %q: %w", raw, err)
		}
		if maxTokens <= 0 {
			return nil, fmt.Errorf("MAX_TOKENS must be positive, got %d", maxTokens)
		}
		config.MaxTokens = maxTokens
	}

	return config, nil
}
