// Package config assembles process configuration from the environment at
// startup. The resulting value is passed explicitly into component
// constructors; no component reads ambient global state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hireoo/extraction-service/internal/llm"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8000
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultMaxTextLength  = 50000
	DefaultRequestTimeout = 30 * time.Second
	DefaultBatchLimit     = 10
	DefaultLogLevel       = "info"
)

// Config holds every runtime setting for the service.
type Config struct {
	// HTTP
	Host string
	Port int

	// LLM backend
	Provider llm.Provider
	APIKey   string
	Model    string

	// Processing
	MaxTextLength  int
	RequestTimeout time.Duration
	BatchLimit     int

	// Logging
	LogLevel string
}

// FromEnv builds a Config from environment variables. Call godotenv.Load
// before this if a .env file should participate.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Host:           envOr("API_HOST", DefaultHost),
		Provider:       llm.Provider(envOr("LLM_PROVIDER", string(llm.ProviderGemini))),
		MaxTextLength:  DefaultMaxTextLength,
		RequestTimeout: DefaultRequestTimeout,
		BatchLimit:     DefaultBatchLimit,
		LogLevel:       envOr("LOG_LEVEL", DefaultLogLevel),
	}

	port, err := envIntOr("API_PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if v, err := envIntOr("MAX_TEXT_LENGTH", DefaultMaxTextLength); err != nil {
		return nil, err
	} else {
		cfg.MaxTextLength = v
	}

	if v, err := envIntOr("BATCH_LIMIT", DefaultBatchLimit); err != nil {
		return nil, err
	} else {
		cfg.BatchLimit = v
	}

	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: REQUEST_TIMEOUT must be an integer number of seconds: %q", raw)
		}
		cfg.RequestTimeout = time.Duration(secs) * time.Second
	}

	switch cfg.Provider {
	case llm.ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.Model = envOr("OPENAI_MODEL", DefaultOpenAIModel)
	default:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		cfg.Model = envOr("GEMINI_MODEL", DefaultGeminiModel)
	}

	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.Provider != llm.ProviderGemini && c.Provider != llm.ProviderOpenAI {
		return fmt.Errorf("config error: unknown LLM provider %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("config error: API key is required (set GEMINI_API_KEY or OPENAI_API_KEY)")
	}
	if c.Model == "" {
		return fmt.Errorf("config error: model name is required")
	}
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("config error: MAX_TEXT_LENGTH must be positive")
	}
	if c.BatchLimit <= 0 {
		return fmt.Errorf("config error: BATCH_LIMIT must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config error: REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer: %q", key, raw)
	}
	return v, nil
}
