package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends
const (
	StoreBackendMemory    = "memory"
	StoreBackendFirestore = "firestore"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string
	Location  string

	// Server
	Port    string
	Debug   bool
	LogJSON bool

	// AI backends
	AIEnabled      bool
	GeminiModel    string
	GeminiAPIKey   string
	EmbeddingModel string
	AITimeout      time.Duration

	// Generation parameters
	MaxOutputTokens   int
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64

	// Embedding cache
	RedisURL          string
	EmbeddingCacheTTL time.Duration

	// Persistence
	StoreBackend    string
	PostsBucketName string

	// Authentication
	JWTSecret      string
	JWTExpiryHours int
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", "us-central1"),

		// Server
		Port:    getEnv("PORT", "8080"),
		Debug:   getEnvBool("DEBUG", false),
		LogJSON: getEnvBool("LOG_JSON", false),

		// AI backends
		AIEnabled:      getEnvBool("AI_ENABLED", true),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		AITimeout:      getEnvDuration("AI_TIMEOUT", 30*time.Second),

		// Generation parameters
		MaxOutputTokens:   getEnvInt("GEN_MAX_OUTPUT_TOKENS", 800),
		Temperature:       getEnvFloat("GEN_TEMPERATURE", 0.7),
		TopP:              getEnvFloat("GEN_TOP_P", 0.9),
		RepetitionPenalty: getEnvFloat("GEN_REPETITION_PENALTY", 1.1),

		// Embedding cache
		RedisURL:          getEnv("REDIS_URL", ""),
		EmbeddingCacheTTL: getEnvDuration("EMBEDDING_CACHE_TTL", 24*time.Hour),

		// Persistence
		StoreBackend:    getEnv("STORE_BACKEND", StoreBackendMemory),
		PostsBucketName: getEnv("POSTS_BUCKET_NAME", ""),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return &ConfigError{Field: "PORT", Message: fmt.Sprintf("PORT must be numeric, got %q", c.Port)}
	}

	if c.JWTSecret == "" {
		return &ConfigError{Field: "JWT_SECRET", Message: "JWT_SECRET is required"}
	}
	if c.JWTExpiryHours <= 0 {
		return &ConfigError{Field: "JWT_EXPIRY_HOURS", Message: "JWT_EXPIRY_HOURS must be positive"}
	}

	switch c.StoreBackend {
	case StoreBackendMemory:
	case StoreBackendFirestore:
		// Firestore needs a project
		if c.ProjectID == "" {
			return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for the firestore store backend"}
		}
	default:
		return &ConfigError{Field: "STORE_BACKEND", Message: fmt.Sprintf("unknown STORE_BACKEND %q", c.StoreBackend)}
	}

	if c.MaxOutputTokens <= 0 {
		return &ConfigError{Field: "GEN_MAX_OUTPUT_TOKENS", Message: "GEN_MAX_OUTPUT_TOKENS must be positive"}
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return &ConfigError{Field: "GEN_TEMPERATURE", Message: "GEN_TEMPERATURE must be within [0, 2]"}
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return &ConfigError{Field: "GEN_TOP_P", Message: "GEN_TOP_P must be within (0, 1]"}
	}
	if c.RepetitionPenalty < 1 || c.RepetitionPenalty > 3 {
		return &ConfigError{Field: "GEN_REPETITION_PENALTY", Message: "GEN_REPETITION_PENALTY must be within [1, 3]"}
	}
	if c.AITimeout <= 0 {
		return &ConfigError{Field: "AI_TIMEOUT", Message: "AI_TIMEOUT must be positive"}
	}

	return nil
}

// AIConfigured reports whether enough settings exist to reach the AI backends.
// Text generation runs on Vertex AI and needs a project. GEMINI_API_KEY only
// switches embeddings to the Gemini API.
func (c *Config) AIConfigured() bool {
	return c.AIEnabled && c.ProjectID != ""
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("45s") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
