// ABOUTME: Centralized configuration for the chatstore services
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backend selectors.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

// Config holds all configuration for the chatstore services. Table names and
// backend choice are explicit here and passed into constructors; nothing
// reads them ambiently at call time.
type Config struct {
	// Store settings
	Backend           string
	ConversationTable string
	PromptTable       string
	SQLitePath        string
	CharmHost         string
	CharmDBName       string
	AutoSync          bool
	StoreMaxRetries   int
	StoreRetryDelay   time.Duration

	// Caller identity resolved at the boundary. Repository calls only ever
	// see this value, never a user id from a request payload.
	UserID string

	// OpenAI settings for title proposals
	OpenAIKey  string
	ChatModel  string
	MaxRetries int
	RetryDelay time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Backend:           getEnv("CHATSTORE_BACKEND", BackendSQLite),
		ConversationTable: getEnv("CONVERSATION_TABLE", "Conversations"),
		PromptTable:       getEnv("PROMPT_TABLE", "Prompts"),
		SQLitePath:        getEnv("CHATSTORE_DB_PATH", ""),
		CharmHost:         getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:       getEnv("CHARM_DB", "chatstore"),
		AutoSync:          getEnvBool("CHARM_AUTO_SYNC", true),
		StoreMaxRetries:   getEnvInt("CHATSTORE_STORE_RETRIES", 2),
		StoreRetryDelay:   getEnvDuration("CHATSTORE_STORE_RETRY_DELAY", 200*time.Millisecond),
		UserID:            getEnv("CHATSTORE_USER", ""),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		ChatModel:         getEnv("CHATSTORE_OPENAI_MODEL", "gpt-4o-mini"),
		MaxRetries:        getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:        getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendCharm:
	default:
		return fmt.Errorf("invalid CHATSTORE_BACKEND %q (want memory, sqlite or charm)", c.Backend)
	}
	if c.ConversationTable == "" || c.PromptTable == "" {
		return fmt.Errorf("table names cannot be empty")
	}
	if c.StoreMaxRetries < 0 {
		return fmt.Errorf("CHATSTORE_STORE_RETRIES cannot be negative")
	}
	if c.UserID == "" {
		return fmt.Errorf("CHATSTORE_USER is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
