package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/skills"
	"github.com/go-resty/resty/v2"
)

// Zero-shot defaults.
const (
	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"
	DefaultZeroShotModel      = "facebook/bart-large-mnli"
	HypothesisTemplate        = "This text is about {}"

	// ZeroShotThreshold is the minimum label score kept.
	ZeroShotThreshold = 0.3
)

// HuggingFaceConfig configures the zero-shot client.
type HuggingFaceConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// HuggingFaceClassifier runs zero-shot classification on the Hugging Face
// inference API with the skill keys as candidate labels.
type HuggingFaceClassifier struct {
	client *resty.Client
	model  string
}

// NewHuggingFaceClassifier creates a classifier. An empty API key is an error.
func NewHuggingFaceClassifier(cfg HuggingFaceConfig) (*HuggingFaceClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface API key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultHuggingFaceBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultZeroShotModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := resty.New().
		SetBaseURL(base).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &HuggingFaceClassifier{client: c, model: model}, nil
}

func (c *HuggingFaceClassifier) Name() string { return "huggingface" }

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	HypothesisTemplate string   `json:"hypothesis_template"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify keeps labels scoring at least ZeroShotThreshold as
// round(score*100). When none qualify, the single best label is kept.
func (c *HuggingFaceClassifier) Classify(ctx context.Context, text string) (Analysis, error) {
	labels := make([]string, 0, len(skills.All()))
	for _, k := range skills.All() {
		labels = append(labels, string(k))
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&zeroShotRequest{
			Inputs: text,
			Parameters: zeroShotParameters{
				CandidateLabels:    labels,
				HypothesisTemplate: HypothesisTemplate,
			},
		}).
		Post("/models/" + c.model)
	if err != nil {
		return nil, &apperr.UpstreamUnavailableError{Service: "huggingface", Err: err}
	}
	if err := statusError(resp); err != nil {
		return nil, err
	}

	zs, err := decodeZeroShot(resp.Body())
	if err != nil {
		return nil, err
	}
	return zeroShotAnalysis(zs), nil
}

// decodeZeroShot accepts both the object and single-element array forms.
func decodeZeroShot(body []byte) (*zeroShotResponse, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []zeroShotResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode zero-shot response: %w", err)
		}
		if len(list) == 0 {
			return &zeroShotResponse{}, nil
		}
		return &list[0], nil
	}
	var zs zeroShotResponse
	if err := json.Unmarshal(body, &zs); err != nil {
		return nil, fmt.Errorf("decode zero-shot response: %w", err)
	}
	return &zs, nil
}

func zeroShotAnalysis(zs *zeroShotResponse) Analysis {
	out := Analysis{}
	n := min(len(zs.Labels), len(zs.Scores))

	best := -1
	for i := 0; i < n; i++ {
		k := skills.Key(zs.Labels[i])
		if !k.Valid() {
			continue
		}
		if best < 0 || zs.Scores[i] > zs.Scores[best] {
			best = i
		}
		if zs.Scores[i] >= ZeroShotThreshold {
			out[k] = toConfidence(zs.Scores[i])
		}
	}
	if len(out) == 0 && best >= 0 {
		out[skills.Key(zs.Labels[best])] = toConfidence(zs.Scores[best])
	}
	return out
}

func toConfidence(score float64) int {
	return clampConfidence(int(math.Round(score * 100)))
}

// statusError maps inference API failures. Rate limits, quota and
// server-side errors are upstream outages; other non-2xx are plain errors.
func statusError(resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests, code == http.StatusPaymentRequired, code >= 500:
		return &apperr.UpstreamUnavailableError{
			Service: "huggingface",
			Err:     fmt.Errorf("status %d: %s", code, resp.String()),
		}
	default:
		return fmt.Errorf("huggingface status %d: %s", code, resp.String())
	}
}
