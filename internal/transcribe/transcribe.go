// Package transcribe validates uploaded audio and turns it into text.
package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/go-resty/resty/v2"
)

// MaxAudioSize is the largest accepted upload, in bytes.
const MaxAudioSize = 25 * 1024 * 1024

// DefaultWhisperModel is the speech model used on the inference API.
const DefaultWhisperModel = "openai/whisper-base"

var supportedMIME = map[string]bool{
	"audio/wav":  true,
	"audio/mp3":  true,
	"audio/mpeg": true,
	"audio/ogg":  true,
	"audio/webm": true,
	"audio/m4a":  true,
}

// Transcriber converts audio bytes to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// ValidateAudio checks size and content type. Content-type parameters
// such as "; codecs=opus" are ignored.
func ValidateAudio(size int64, mimeType string) error {
	if size <= 0 {
		return &apperr.ValidationError{Field: "audio", Reason: "file is empty"}
	}
	if size > MaxAudioSize {
		return &apperr.ValidationError{Field: "audio", Reason: "file too large, maximum size is 25MB"}
	}
	if !supportedMIME[baseMIME(mimeType)] {
		return &apperr.ValidationError{
			Field:  "audio",
			Reason: "unsupported format, use WAV, MP3, OGG, WebM, or M4A",
		}
	}
	return nil
}

func baseMIME(mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// WhisperConfig configures the Whisper client.
type WhisperConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// WhisperTranscriber posts audio to the Hugging Face inference API.
type WhisperTranscriber struct {
	client *resty.Client
	model  string
}

// NewWhisperTranscriber creates a transcriber. An empty API key is an error.
func NewWhisperTranscriber(cfg WhisperConfig) (*WhisperTranscriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface API key is required for transcription")
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://api-inference.huggingface.co"
	}
	model := cfg.Model
	if model == "" {
		model = DefaultWhisperModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	c := resty.New().
		SetBaseURL(base).
		SetAuthToken(cfg.APIKey).
		SetTimeout(timeout)

	return &WhisperTranscriber{client: c, model: model}, nil
}

type whisperResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Transcribe validates and uploads audio, returning the trimmed transcript.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if err := ValidateAudio(int64(len(audio)), mimeType); err != nil {
		return "", err
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", baseMIME(mimeType)).
		SetBody(audio).
		Post("/models/" + w.model)
	if err != nil {
		return "", &apperr.UpstreamUnavailableError{Service: "transcription", Err: err}
	}

	var out whisperResponse
	_ = json.Unmarshal(resp.Body(), &out)

	code := resp.StatusCode()
	switch {
	case code == http.StatusTooManyRequests, code == http.StatusPaymentRequired, code >= 500,
		isQuotaMessage(out.Error):
		return "", &apperr.UpstreamUnavailableError{
			Service: "transcription",
			Err:     fmt.Errorf("status %d: %s", code, resp.String()),
		}
	case code < 200 || code >= 300:
		return "", fmt.Errorf("failed to transcribe audio: status %d: %s", code, resp.String())
	}
	return strings.TrimSpace(out.Text), nil
}

func isQuotaMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota")
}
