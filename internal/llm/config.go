package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Provider names accepted by ARISE_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects one provider. Parsed from ARISE_LLM_* variables.
type Config struct {
	Provider string `envconfig:"LLM_PROVIDER"`
	// Model is a provider model ID or one of the aliases in models.
	Model   string `envconfig:"LLM_MODEL"`
	APIKey  string `envconfig:"LLM_API_KEY"`
	BaseURL string `envconfig:"LLM_BASE_URL"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
	Retry   RetryConfig   `envconfig:"LLM_RETRY"`
}

// RetryConfig is parsed from ARISE_LLM_RETRY_*.
type RetryConfig struct {
	Attempts int           `envconfig:"ATTEMPTS" default:"3"`
	Wait     time.Duration `envconfig:"WAIT" default:"1s"`
	MaxWait  time.Duration `envconfig:"MAX_WAIT" default:"10s"`
}

// vendorKeys lists the conventional API key variables in discovery order.
var vendorKeys = []struct{ provider, env string }{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// models holds the cheap default and the short aliases for each provider.
// Classification needs a small, fast model.
var models = map[string]struct {
	fallback string
	aliases  map[string]string
}{
	ProviderAnthropic: {"claude-haiku-4-5", map[string]string{
		"haiku":  "claude-haiku-4-5",
		"sonnet": "claude-sonnet-4-5",
	}},
	ProviderOpenAI: {"gpt-4o-mini", map[string]string{
		"mini": "gpt-4o-mini",
		"nano": "gpt-4.1-nano",
	}},
	ProviderGemini: {"gemini-2.0-flash", map[string]string{
		"flash":      "gemini-2.0-flash",
		"flash-lite": "gemini-2.0-flash-lite",
	}},
	ProviderOpenRouter: {"google/gemini-2.0-flash-001", nil},
}

// LoadConfig reads ARISE_LLM_* and fills the gaps from the vendor key
// variables. With no provider selected, the first vendor key found picks
// the provider; with none found it returns ErrNotConfigured.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("ARISE", &cfg); err != nil {
		return cfg, fmt.Errorf("LLM config: %w", err)
	}

	if cfg.Provider == "" {
		for _, vk := range vendorKeys {
			if k := os.Getenv(vk.env); k != "" {
				cfg.Provider, cfg.APIKey = vk.provider, k
				break
			}
		}
		if cfg.Provider == "" {
			return cfg, ErrNotConfigured
		}
	}
	if cfg.APIKey == "" {
		for _, vk := range vendorKeys {
			if vk.provider == cfg.Provider {
				cfg.APIKey = os.Getenv(vk.env)
			}
		}
	}

	cfg.Model = cfg.resolveModel()
	return cfg, cfg.Validate()
}

// Validate checks the provider name and that a key is present.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%s provider needs ARISE_LLM_API_KEY", c.Provider)
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("invalid LLM_RETRY_ATTEMPTS: %d", c.Retry.Attempts)
	}
	return nil
}

// resolveModel maps an alias to its model ID and an empty Model to the
// provider's default. Unknown names pass through as raw IDs.
func (c Config) resolveModel() string {
	m, ok := models[c.Provider]
	if !ok {
		return c.Model
	}
	if c.Model == "" {
		return m.fallback
	}
	if id, ok := m.aliases[c.Model]; ok {
		return id
	}
	return c.Model
}
