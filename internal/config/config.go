package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. The core services take these
// values through their constructors; nothing inside the core reads the
// environment directly.
type Config struct {
	MongoURI string
	RedisURL string

	// Generation provider (OpenAI-compatible endpoint)
	ProviderBaseURL   string
	ProviderAPIKey    string
	ProviderModel     string
	GenerationTimeout time.Duration

	// AI call admission control
	MaxAICalls int
	RateWindow time.Duration

	// Context derivation
	HistoryWindowDays int

	// Rate limiter idle sweep
	SweepInterval time.Duration
}

// Load loads configuration from the environment with defaults. A .env file in
// the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017/auramind"),
		RedisURL: getEnv("REDIS_URL", ""),

		ProviderBaseURL:   getEnv("PROVIDER_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		ProviderAPIKey:    getEnv("PROVIDER_API_KEY", ""),
		ProviderModel:     getEnv("PROVIDER_MODEL", "gemini-2.0-flash"),
		GenerationTimeout: getDurationEnv("GENERATION_TIMEOUT", 60*time.Second),

		MaxAICalls: getIntEnv("AI_MAX_CALLS", 20),
		RateWindow: getDurationEnv("AI_RATE_WINDOW", 60*time.Minute),

		HistoryWindowDays: getIntEnv("HISTORY_WINDOW_DAYS", 7),

		SweepInterval: getDurationEnv("RATE_SWEEP_INTERVAL", 15*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
