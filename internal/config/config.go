// package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// remote applicant gateway
	GatewayBaseURL    string
	GatewayTimeoutSec int

	// local snapshot store
	SnapshotPath string

	// nats
	NatsURL string

	// linkedin sync pacing
	SyncRPS   float64
	SyncBurst int

	// cv import
	SkillVocabFile string

	// server
	HTTPPort int

	// logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		GatewayBaseURL:    getEnv("GATEWAY_BASE_URL", "http://localhost:8080"),
		GatewayTimeoutSec: getEnvInt("GATEWAY_TIMEOUT_SECONDS", 10),
		SnapshotPath:      getEnv("SNAPSHOT_PATH", "./data/talenttrack.db"),
		NatsURL:           getEnv("NATS_URL", "nats://localhost:4222"),
		SyncBurst:         getEnvInt("SYNC_BURST", 1),
		SkillVocabFile:    getEnv("SKILL_VOCAB_FILE", ""),
		HTTPPort:          getEnvInt("HTTP_PORT", 3200),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
	}

	cfg.SyncRPS = getEnvFloat("SYNC_RPS", 2.0)

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
