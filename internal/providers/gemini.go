package providers

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini calls Google's Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGemini creates a Gemini client. opts.BaseURL overrides the API endpoint.
func NewGemini(ctx context.Context, opts Options) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("initializing gemini client: %w", err)
	}
	return &Gemini{
		client: client,
		model:  opts.Model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(opts.Temperature)),
			TopK:            genai.Ptr(float32(40)),
			TopP:            genai.Ptr(float32(0.95)),
			MaxOutputTokens: int32(opts.MaxOutputTokens),
		},
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Call(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", wrap(g.Name(), err)
	}
	text := resp.Text()
	if text == "" {
		return "", formatError(g.Name(), "response contained no text")
	}
	return text, nil
}
