package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port        string
	OpenAIKey   string
	OpenAIModel string
	SiteBaseURL string
	CORSOrigin  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		SiteBaseURL: os.Getenv("SITE_BASE_URL"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
	}

	// Validate required environment variables
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required. Please set it as environment variable:\n  Linux/Mac: export OPENAI_API_KEY=\"your_key\"\n  Windows PowerShell: $env:OPENAI_API_KEY=\"your_key\"")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
