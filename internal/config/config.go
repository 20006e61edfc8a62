// ABOUTME: Centralized configuration for the voicedesk assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/voicedesk/voicedesk/internal/util"
)

// Config holds all configuration for the assistant
type Config struct {
	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	MaxBackoff     time.Duration

	// Routing and escalation thresholds
	RoutingThreshold   float64
	KnowledgeThreshold float64
	StreakThreshold    float64
	StreakWindow       int

	// Retrieval settings
	TopK            int
	VectorDimension int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:             getEnv("VOICEDESK_DB_PATH", ""),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		ChatModel:          getEnv("VOICEDESK_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:     getEnv("VOICEDESK_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:            getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		MaxBackoff:         getEnvDuration("OPENAI_MAX_BACKOFF", util.DefaultMaxBackoff),
		RoutingThreshold:   getEnvFloat("VOICEDESK_ROUTING_THRESHOLD", 0.6),
		KnowledgeThreshold: getEnvFloat("VOICEDESK_KNOWLEDGE_THRESHOLD", 0.4),
		StreakThreshold:    getEnvFloat("VOICEDESK_STREAK_THRESHOLD", 0.7),
		StreakWindow:       getEnvInt("VOICEDESK_STREAK_WINDOW", 3),
		TopK:               getEnvInt("VOICEDESK_TOP_K", 3),
		VectorDimension:    getEnvInt("VECTOR_DIMENSION", 1536),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.RoutingThreshold < 0 || c.RoutingThreshold > 1 {
		return fmt.Errorf("VOICEDESK_ROUTING_THRESHOLD must be 0-1, got %f", c.RoutingThreshold)
	}
	if c.KnowledgeThreshold < 0 || c.KnowledgeThreshold > 1 {
		return fmt.Errorf("VOICEDESK_KNOWLEDGE_THRESHOLD must be 0-1, got %f", c.KnowledgeThreshold)
	}
	if c.StreakThreshold < 0 || c.StreakThreshold > 1 {
		return fmt.Errorf("VOICEDESK_STREAK_THRESHOLD must be 0-1, got %f", c.StreakThreshold)
	}
	if c.StreakWindow < 1 || c.StreakWindow > 20 {
		return fmt.Errorf("VOICEDESK_STREAK_WINDOW must be 1-20, got %d", c.StreakWindow)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxBackoff <= 0 || c.MaxBackoff > time.Minute {
		return fmt.Errorf("OPENAI_MAX_BACKOFF must be positive and at most 1m, got %s", c.MaxBackoff)
	}
	if c.TopK < 1 || c.TopK > 50 {
		return fmt.Errorf("VOICEDESK_TOP_K must be 1-50, got %d", c.TopK)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
