package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/arise/internal/classify"
	"github.com/abhisek/arise/internal/config"
	"github.com/abhisek/arise/internal/llm"
	"github.com/abhisek/arise/internal/logger"
	"github.com/abhisek/arise/internal/scoring"
	"github.com/abhisek/arise/internal/skills"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Preview classification and XP for a text (no database)",
	Long: `Classify text against the skill categories and show the XP it would earn.

This is a stateless developer tool: no database, no users, no events.
Without arguments, each line read from stdin is classified in turn.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("classifier", "", "Classifier: auto, llm, huggingface or keyword (overrides ARISE_CLASSIFIER)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if kind, _ := cmd.Flags().GetString("classifier"); kind != "" {
		cfg.Classifier = kind
	}

	level := "warn"
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = cfg.LogLevel
	}
	log := logger.NewWithWriter(os.Stderr, "arise", level)

	// No EventRepo; LLM call logging is skipped.
	ctx := context.Background()
	c, err := previewClassifier(ctx, cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Classifier: %s\n\n", c.Name())

	if len(args) > 0 {
		return classifyOne(ctx, out, c, strings.Join(args, " "))
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := classifyOne(ctx, out, c, line); err != nil {
			fmt.Fprintf(out, "error: %v\n\n", err)
		}
	}
	return scanner.Err()
}

func previewClassifier(ctx context.Context, cfg *config.Config, log zerolog.Logger) (classify.Classifier, error) {
	var provider llm.Provider
	if cfg.Classifier == config.ClassifierAuto || cfg.Classifier == config.ClassifierLLM {
		p, _, err := llm.FromEnv(ctx, llm.Options{Log: log})
		switch {
		case err == nil:
			provider = p
		case errors.Is(err, llm.ErrNotConfigured) && cfg.Classifier == config.ClassifierAuto:
		default:
			return nil, fmt.Errorf("LLM provider: %w", err)
		}
	}

	// The preview shows the primary classifier's own output, so failures
	// surface instead of falling back.
	switch cfg.Classifier {
	case config.ClassifierKeyword:
		return classify.NewKeywordClassifier(), nil
	case config.ClassifierHuggingFace:
		return classify.NewHuggingFaceClassifier(classify.HuggingFaceConfig{
			APIKey:  cfg.HuggingFaceAPIKey,
			BaseURL: cfg.HuggingFaceBaseURL,
		})
	case config.ClassifierLLM:
		return classify.NewLLMClassifier(provider, classify.DefaultLLMConfig()), nil
	}
	if provider != nil {
		return classify.NewLLMClassifier(provider, classify.DefaultLLMConfig()), nil
	}
	if cfg.HuggingFaceAPIKey != "" {
		return classify.NewHuggingFaceClassifier(classify.HuggingFaceConfig{
			APIKey:  cfg.HuggingFaceAPIKey,
			BaseURL: cfg.HuggingFaceBaseURL,
		})
	}
	return classify.NewKeywordClassifier(), nil
}

func classifyOne(ctx context.Context, out io.Writer, c classify.Classifier, text string) error {
	if err := classify.ValidateText(text); err != nil {
		return err
	}

	start := time.Now()
	analysis, err := c.Classify(ctx, text)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	res := scoring.Score(text, analysis)

	fmt.Fprintf(out, "── %s\n", truncate(oneLine(text), 70))
	for _, k := range skills.All() {
		conf, ok := analysis[k]
		if !ok {
			continue
		}
		xp := "below threshold"
		if v, ok := res.PerSkill[k]; ok {
			xp = fmt.Sprintf("+%d XP", v)
		}
		fmt.Fprintf(out, "  %-24s %3d%%  %s\n", k.DisplayName(), conf, xp)
	}
	fmt.Fprintf(out, "  base %d XP, total %d XP (%dms)\n\n", res.BaseXP, res.XPEarned, elapsed.Milliseconds())
	return nil
}
