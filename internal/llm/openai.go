package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// openaiProvider also serves OpenRouter, which speaks the same API.
type openaiProvider struct {
	name   string
	client *openai.Client
	model  string
}

func newOpenAI(cfg Config) (*openaiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: API key is required", cfg.Provider)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		oc.BaseURL = cfg.BaseURL
	case cfg.Provider == ProviderOpenRouter:
		oc.BaseURL = openRouterBaseURL
	}
	name := cfg.Provider
	if name == "" {
		name = ProviderOpenAI
	}
	return &openaiProvider{name: name, client: openai.NewClientWithConfig(oc), model: cfg.Model}, nil
}

func (p *openaiProvider) ModelID() string { return p.model }

func (p *openaiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, p.mapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &InvalidOutputError{Schema: schemaName(req.Schema), Err: errors.New("no choices in reply")}
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonLength {
		return nil, ErrTruncated
	}

	content := json.RawMessage(choice.Message.Content)
	if err := validate(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{
		Content: content,
		Model:   resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

func (p *openaiProvider) mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fromStatus(p.name, apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fromStatus(p.name, reqErr.HTTPStatusCode, nil, err)
	}
	return fromStatus(p.name, 0, nil, err)
}
