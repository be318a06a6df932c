package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireoo/extraction-service/internal/llm"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"API_HOST", "API_PORT", "LLM_PROVIDER", "MAX_TEXT_LENGTH",
		"BATCH_LIMIT", "REQUEST_TIMEOUT", "LOG_LEVEL",
		"GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.Equal(t, DefaultGeminiModel, cfg.Model)
	assert.Equal(t, DefaultMaxTextLength, cfg.MaxTextLength)
	assert.Equal(t, DefaultBatchLimit, cfg.BatchLimit)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
}

func TestFromEnv_OpenAIProviderSelection(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("MAX_TEXT_LENGTH", "1000")
	t.Setenv("BATCH_LIMIT", "3")
	t.Setenv("REQUEST_TIMEOUT", "60")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 1000, cfg.MaxTextLength)
	assert.Equal(t, 3, cfg.BatchLimit)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestFromEnv_RejectsNonIntegerPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "eight thousand")

	_, err := FromEnv()

	assert.Error(t, err)
}

func TestValidate_RequiresAPIKey(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)

	err = cfg.Validate()

	assert.ErrorContains(t, err, "API key")
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.ErrorContains(t, cfg.Validate(), "unknown LLM provider")
}

func TestValidate_RejectsPortOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "70000")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.ErrorContains(t, cfg.Validate(), "out of range")
}
