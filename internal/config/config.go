package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Classifier backends selectable through ARISE_CLASSIFIER.
const (
	ClassifierAuto        = "auto"
	ClassifierLLM         = "llm"
	ClassifierHuggingFace = "huggingface"
	ClassifierKeyword     = "keyword"
)

// Config holds the service configuration.
// Environment variables are parsed from the ARISE_ prefix.
type Config struct {
	HTTPPort int    `envconfig:"HTTP_PORT" default:"3001"`
	DB       string `envconfig:"DB" default:""`
	Timezone string `envconfig:"TIMEZONE" default:"Local"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	Classifier      string        `envconfig:"CLASSIFIER" default:"auto"`
	ClassifyTimeout time.Duration `envconfig:"CLASSIFY_TIMEOUT" default:"10s"`

	HuggingFaceAPIKey  string `envconfig:"HUGGINGFACE_API_KEY" default:""`
	HuggingFaceBaseURL string `envconfig:"HUGGINGFACE_BASE_URL" default:"https://api-inference.huggingface.co"`

	QuestResetSpec string `envconfig:"QUEST_RESET_SPEC" default:"0 0 * * *"`
}

// New creates a Config by parsing ARISE_* environment variables.
// Example: ARISE_HTTP_PORT, ARISE_TIMEZONE.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("ARISE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated and parsed fields.
func (c *Config) Validate() error {
	switch c.Classifier {
	case ClassifierAuto, ClassifierLLM, ClassifierHuggingFace, ClassifierKeyword:
	default:
		return fmt.Errorf("unsupported CLASSIFIER: %s", c.Classifier)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.ClassifyTimeout <= 0 {
		return fmt.Errorf("invalid CLASSIFY_TIMEOUT: %s", c.ClassifyTimeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(c.QuestResetSpec); err != nil {
		return fmt.Errorf("invalid QUEST_RESET_SPEC %q: %w", c.QuestResetSpec, err)
	}
	return nil
}

// Location resolves Timezone. "Local" and empty map to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// NewForTesting returns defaults without reading the environment.
func NewForTesting() *Config {
	return &Config{
		HTTPPort:           3001,
		Timezone:           "UTC",
		LogLevel:           "debug",
		Classifier:         ClassifierKeyword,
		ClassifyTimeout:    time.Second,
		HuggingFaceBaseURL: "http://localhost",
		QuestResetSpec:     "0 0 * * *",
	}
}
