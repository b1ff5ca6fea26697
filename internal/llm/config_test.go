package llm

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ARISE_LLM_PROVIDER", "ARISE_LLM_MODEL", "ARISE_LLM_API_KEY", "ARISE_LLM_BASE_URL",
		"ARISE_LLM_TIMEOUT", "ARISE_LLM_RETRY_ATTEMPTS", "ARISE_LLM_RETRY_WAIT", "ARISE_LLM_RETRY_MAX_WAIT",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		// envconfig rejects set-but-empty numeric values, so unset instead.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfig_NothingConfigured(t *testing.T) {
	clearLLMEnv(t)
	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoadConfig_DiscoversVendorKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider, "openai is probed before anthropic")
	assert.Equal(t, "o-key", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, RetryConfig{Attempts: 3, Wait: time.Second, MaxWait: 10 * time.Second}, cfg.Retry)
}

func TestLoadConfig_ExplicitProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ARISE_LLM_PROVIDER", "anthropic")
	t.Setenv("ARISE_LLM_MODEL", "sonnet")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ARISE_LLM_RETRY_ATTEMPTS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "a-key", cfg.APIKey)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Model)
	assert.Equal(t, 5, cfg.Retry.Attempts)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"ARISE_LLM_PROVIDER": "llama"}},
		{"missing key", map[string]string{"ARISE_LLM_PROVIDER": "gemini"}},
		{"zero attempts", map[string]string{"ARISE_LLM_PROVIDER": "openai", "ARISE_LLM_API_KEY": "k", "ARISE_LLM_RETRY_ATTEMPTS": "0"}},
		{"bad duration", map[string]string{"ARISE_LLM_PROVIDER": "openai", "ARISE_LLM_API_KEY": "k", "ARISE_LLM_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLLMEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotConfigured)
		})
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		provider, model, want string
	}{
		{ProviderGemini, "", "gemini-2.0-flash"},
		{ProviderGemini, "flash-lite", "gemini-2.0-flash-lite"},
		{ProviderOpenAI, "nano", "gpt-4.1-nano"},
		{ProviderOpenAI, "gpt-5-mini", "gpt-5-mini"},
		{ProviderOpenRouter, "", "google/gemini-2.0-flash-001"},
		{ProviderMock, "", ""},
	}
	for _, tt := range tests {
		got := Config{Provider: tt.provider, Model: tt.model}.resolveModel()
		assert.Equal(t, tt.want, got, "%s/%s", tt.provider, tt.model)
	}
}
