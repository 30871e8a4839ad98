package providers

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI calls the OpenAI chat completions API, or any server that speaks it.
type OpenAI struct {
	client      *openai.Client
	name        string
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAI creates an OpenAI client. opts.BaseURL overrides the API
// endpoint.
func NewOpenAI(opts Options) *OpenAI {
	return newOpenAICompatible("openai", opts)
}

func newOpenAICompatible(name string, opts Options) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &OpenAI{
		client:      openai.NewClientWithConfig(cfg),
		name:        name,
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		maxTokens:   opts.MaxOutputTokens,
	}
}

func (o *OpenAI) Name() string { return o.name }

func (o *OpenAI) Call(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		return "", wrap(o.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", formatError(o.name, "response contained no choices")
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", formatError(o.name, "response contained no text")
	}
	return text, nil
}
