package classify

import (
	"fmt"
	"time"

	"github.com/abhisek/arise/internal/llm"
	"github.com/abhisek/arise/internal/metrics"
	"github.com/rs/zerolog"
)

// Deps selects and wires a classifier.
type Deps struct {
	// Kind is "auto", "llm", "huggingface" or "keyword".
	Kind        string
	Provider    llm.Provider
	HuggingFace HuggingFaceConfig
	Timeout     time.Duration
	Log         zerolog.Logger
	Metrics     *metrics.Metrics
}

// New builds the configured primary classifier wrapped in Resilient with
// the keyword classifier as fallback. "auto" prefers the LLM, then
// Hugging Face, then keywords alone.
func New(d Deps) (*Resilient, error) {
	keyword := NewKeywordClassifier()

	var primary Classifier
	switch d.Kind {
	case "", "auto":
		switch {
		case d.Provider != nil:
			primary = NewLLMClassifier(d.Provider, DefaultLLMConfig())
		case d.HuggingFace.APIKey != "":
			hf, err := NewHuggingFaceClassifier(d.HuggingFace)
			if err != nil {
				return nil, err
			}
			primary = hf
		default:
			primary = keyword
		}
	case "llm":
		if d.Provider == nil {
			return nil, fmt.Errorf("llm classifier requires a configured LLM provider")
		}
		primary = NewLLMClassifier(d.Provider, DefaultLLMConfig())
	case "huggingface":
		hf, err := NewHuggingFaceClassifier(d.HuggingFace)
		if err != nil {
			return nil, err
		}
		primary = hf
	case "keyword":
		primary = keyword
	default:
		return nil, fmt.Errorf("unknown classifier: %q", d.Kind)
	}

	opts := []Option{WithTimeout(d.Timeout), WithLogger(d.Log), WithMetrics(d.Metrics)}
	if primary != keyword {
		opts = append(opts, WithFallback(keyword))
	}
	return NewResilient(primary, opts...), nil
}
