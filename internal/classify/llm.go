package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/llm"
	"github.com/abhisek/arise/internal/skills"
)

// LLMConfig holds generation settings for the LLM classifier.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns sensible defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:   256,
		Temperature: 0,
	}
}

// LLMClassifier asks an llm.Provider to rate the entry per skill.
type LLMClassifier struct {
	provider llm.Provider
	cfg      LLMConfig
}

// NewLLMClassifier creates an LLM-backed classifier.
func NewLLMClassifier(provider llm.Provider, cfg LLMConfig) *LLMClassifier {
	return &LLMClassifier{provider: provider, cfg: cfg}
}

func (c *LLMClassifier) Name() string { return "llm" }

type analysisOutput struct {
	Scores map[string]int `json:"scores"`
}

// Classify sends text to the provider. Zero scores are dropped.
func (c *LLMClassifier) Classify(ctx context.Context, text string) (Analysis, error) {
	ctx = llm.WithPurpose(ctx, "skill-analysis")

	userMsg, err := buildAnalysisMessage(text)
	if err != nil {
		return nil, fmt.Errorf("build analysis prompt: %w", err)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      analysisSystemPrompt,
		Prompt:      userMsg,
		Schema:      AnalysisSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, &apperr.UpstreamUnavailableError{Service: "llm classifier", Err: err}
	}

	var raw analysisOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	out := Analysis{}
	for name, score := range raw.Scores {
		k := skills.Key(name)
		if !k.Valid() {
			continue
		}
		if score = clampConfidence(score); score > 0 {
			out[k] = score
		}
	}
	return out, nil
}

// AnalysisSchema constrains LLM output to per-skill integer scores.
var AnalysisSchema = buildAnalysisSchema()

func buildAnalysisSchema() *llm.Schema {
	props := make(map[string]any, len(skills.All()))
	required := make([]any, 0, len(skills.All()))
	for _, k := range skills.All() {
		required = append(required, string(k))
		props[string(k)] = map[string]any{
			"type":        "integer",
			"minimum":     0,
			"maximum":     100,
			"description": Description(k),
		}
	}
	return &llm.Schema{
		Name:        "skill-analysis",
		Description: "Confidence (0-100) that a journal entry demonstrates each skill",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"scores": map[string]any{
					"type":                 "object",
					"properties":           props,
					"required":             required,
					"additionalProperties": false,
				},
			},
			"required":             []any{"scores"},
			"additionalProperties": false,
		},
	}
}

const analysisSystemPrompt = `You rate personal journal entries against a fixed set of skill categories.

Instructions:
- For each category the entry clearly demonstrates, give a confidence from 0 to 100.
- Give 0 to every category the entry does not touch.
- Use only the category keys listed.
- Judge what the writer did or practised, not what they merely mention.`

var analysisUserTemplate = template.Must(template.New("analysis").Parse(`Categories:
{{range .Categories}}- {{.Key}}: {{.Description}}
{{end}}
Journal entry:
{{.Text}}`))

type analysisCategory struct {
	Key         skills.Key
	Description string
}

func buildAnalysisMessage(text string) (string, error) {
	data := struct {
		Categories []analysisCategory
		Text       string
	}{Text: text}
	for _, k := range skills.All() {
		data.Categories = append(data.Categories, analysisCategory{Key: k, Description: Description(k)})
	}

	var buf bytes.Buffer
	if err := analysisUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
