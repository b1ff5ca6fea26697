package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/arise/internal/metrics"
	"github.com/abhisek/arise/internal/store"
)

// Options are the collaborators New wires around the provider.
type Options struct {
	Events  store.EventRepo
	Log     zerolog.Logger
	Metrics *metrics.Metrics
}

// New builds the provider cfg selects, composed as
// Retrier → Recorder → provider so each attempt is recorded.
func New(ctx context.Context, cfg Config, opts Options) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = newAnthropic(cfg)
	case ProviderOpenAI, ProviderOpenRouter:
		base, err = newOpenAI(cfg)
	case ProviderGemini:
		base, err = newGemini(ctx, cfg)
	case ProviderMock:
		base = NewMock()
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	log := opts.Log.With().Str("provider", cfg.Provider).Logger()
	recorded := Record(base, cfg.Provider, opts.Events, log, opts.Metrics)
	return WithRetry(recorded, cfg.Retry, cfg.Timeout), nil
}

// FromEnv is LoadConfig followed by New.
func FromEnv(ctx context.Context, opts Options) (Provider, Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, cfg, err
	}
	p, err := New(ctx, cfg, opts)
	return p, cfg, err
}
