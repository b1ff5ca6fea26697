package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/arise/internal/classify"
	"github.com/abhisek/arise/internal/config"
	"github.com/abhisek/arise/internal/engine"
	"github.com/abhisek/arise/internal/llm"
	"github.com/abhisek/arise/internal/logger"
	"github.com/abhisek/arise/internal/metrics"
	"github.com/abhisek/arise/internal/store"
	"github.com/abhisek/arise/internal/transcribe"
)

// runtime holds everything a command needs to drive the engine.
type runtime struct {
	cfg         *config.Config
	log         zerolog.Logger
	store       *store.Store
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	classifier  classify.Classifier
	transcriber transcribe.Transcriber
	eng         *engine.Engine
}

// openRuntime loads configuration, opens the store, and builds the engine
// with its classifier and optional transcriber.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}

	level := cfg.LogLevel
	if v, _ := cmd.Flags().GetBool("verbose"); !v && cmd.Name() != "serve" {
		level = "warn"
	}
	log := logger.NewWithWriter(os.Stderr, "arise", level)

	dbPath := cfg.DB
	if dbPath == "" {
		if dbPath, err = resolveDBPath(cmd); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		st.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNew(reg)

	c, err := newClassifier(ctx, cfg, st.EventRepo(), log, m)
	if err != nil {
		st.Close()
		return nil, err
	}

	rt := &runtime{
		cfg:        cfg,
		log:        log,
		store:      st,
		registry:   reg,
		metrics:    m,
		classifier: c,
	}

	if cfg.HuggingFaceAPIKey != "" {
		tr, err := transcribe.NewWhisperTranscriber(transcribe.WhisperConfig{
			APIKey:  cfg.HuggingFaceAPIKey,
			BaseURL: cfg.HuggingFaceBaseURL,
		})
		if err != nil {
			st.Close()
			return nil, err
		}
		rt.transcriber = tr
	}

	rt.eng = engine.New(st.KV(),
		engine.WithClassifier(c),
		engine.WithClassifyTimeout(cfg.ClassifyTimeout),
		engine.WithLocation(loc),
		engine.WithLogger(log),
		engine.WithMetrics(m),
		engine.WithVersion(version),
	)

	log.Debug().
		Str("db", dbPath).
		Str("classifier", c.Name()).
		Bool("transcription", rt.transcriber != nil).
		Str("timezone", loc.String()).
		Msg("runtime ready")
	return rt, nil
}

// newClassifier builds the configured classifier. An unconfigured LLM is
// not an error in auto mode; the keyword classifier is used instead.
func newClassifier(ctx context.Context, cfg *config.Config, repo store.EventRepo, log zerolog.Logger, m *metrics.Metrics) (classify.Classifier, error) {
	var provider llm.Provider
	if cfg.Classifier == config.ClassifierAuto || cfg.Classifier == config.ClassifierLLM {
		p, llmCfg, err := llm.FromEnv(ctx, llm.Options{Events: repo, Log: log, Metrics: m})
		switch {
		case err == nil:
			provider = p
			log.Debug().Str("provider", llmCfg.Provider).Str("model", llmCfg.Model).Msg("LLM classifier enabled")
		case errors.Is(err, llm.ErrNotConfigured):
			log.Debug().Msg("no LLM provider configured")
		case cfg.Classifier == config.ClassifierLLM:
			return nil, fmt.Errorf("LLM provider: %w", err)
		default:
			log.Warn().Err(err).Msg("LLM provider unavailable, falling back")
		}
	}

	return classify.New(classify.Deps{
		Kind:     cfg.Classifier,
		Provider: provider,
		HuggingFace: classify.HuggingFaceConfig{
			APIKey:  cfg.HuggingFaceAPIKey,
			BaseURL: cfg.HuggingFaceBaseURL,
		},
		Timeout: cfg.ClassifyTimeout,
		Log:     log,
		Metrics: m,
	})
}

func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.log.Warn().Err(err).Msg("close store")
	}
}

// withRuntime opens a runtime for the duration of fn.
func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, rt)
}
