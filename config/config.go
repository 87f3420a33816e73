// Package config holds service configuration loaded from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// datasetFileName is the tabular training-set export
	datasetFileName = "dga_dataset_train.csv"
	// artifactFileName is the portable leader-model artifact
	artifactFileName = "dga_leader.json"
	// leaderboardFileName is the ranked candidate export
	leaderboardFileName = "leaderboard.csv"
)

// Config holds service configuration
type Config struct {
	// Listen is the serve-mode bind address
	Listen          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodySize     int64

	// DataDir receives the dataset export
	DataDir string
	// ModelDir receives the model artifact and leaderboard
	ModelDir string

	// GenAIAPIKey authenticates playbook generation; GOOGLE_API_KEY is the
	// conventional variable, DGAHOUND_GENAI_API_KEY overrides it
	GenAIAPIKey string
	// GenAIModel selects the text-generation model; empty keeps the default
	GenAIModel string
	// GenAITimeout bounds one playbook request
	GenAITimeout time.Duration

	// SlackWebhookURL enables serve-mode alerting when set
	SlackWebhookURL string
	SlackTimeout    time.Duration

	// DNSServer is the resolver for live-DNS context lookups
	DNSServer  string
	DNSTimeout time.Duration
}

// New creates a new configuration from environment variables
func New() *Config {
	return &Config{
		Listen:          getEnv("DGAHOUND_LISTEN", ":8080"),
		ReadTimeout:     getDurationEnv("DGAHOUND_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getDurationEnv("DGAHOUND_WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDurationEnv("DGAHOUND_SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxBodySize:     getInt64Env("DGAHOUND_MAX_BODY_SIZE", 100*1024), // 100KB

		DataDir:  getEnv("DGAHOUND_DATA_DIR", "data"),
		ModelDir: getEnv("DGAHOUND_MODEL_DIR", "model"),

		GenAIAPIKey:  getEnv("DGAHOUND_GENAI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GenAIModel:   os.Getenv("DGAHOUND_GENAI_MODEL"),
		GenAITimeout: getDurationEnv("DGAHOUND_GENAI_TIMEOUT", 60*time.Second),

		SlackWebhookURL: os.Getenv("DGAHOUND_SLACK_WEBHOOK_URL"),
		SlackTimeout:    getDurationEnv("DGAHOUND_SLACK_TIMEOUT", 10*time.Second),

		DNSServer:  getEnv("DGAHOUND_DNS_SERVER", "8.8.8.8:53"),
		DNSTimeout: getDurationEnv("DGAHOUND_DNS_TIMEOUT", 5*time.Second),
	}
}

// DatasetPath is the training-set export location
func (c *Config) DatasetPath() string {
	return filepath.Join(c.DataDir, datasetFileName)
}

// ArtifactPath is the well-known leader artifact location
func (c *Config) ArtifactPath() string {
	return filepath.Join(c.ModelDir, artifactFileName)
}

// LeaderboardPath is the leaderboard export location
func (c *Config) LeaderboardPath() string {
	return filepath.Join(c.ModelDir, leaderboardFileName)
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable with a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getInt64Env gets an int64 environment variable with a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
