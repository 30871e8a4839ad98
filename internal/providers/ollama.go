package providers

import (
	"os"
	"strings"
)

const defaultOllamaURL = "http://localhost:11434"

// NewOllama creates a client for Ollama or LM Studio through their
// OpenAI-compatible endpoint. The server comes from opts.BaseURL, then
// OLLAMA_HOST, then the Ollama default. No API key is required.
func NewOllama(opts Options) *OpenAI {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_HOST")
	}
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	opts.BaseURL = normalizeOllamaURL(baseURL)
	if opts.APIKey == "" {
		opts.APIKey = "ollama"
	}
	return newOpenAICompatible("ollama", opts)
}

// normalizeOllamaURL accepts a bare host, a /v1 URL, or a full chat
// completions URL and returns the /v1 base.
func normalizeOllamaURL(u string) string {
	if !strings.Contains(u, "://") {
		u = "http://" + u
	}
	u = strings.TrimRight(u, "/")
	u = strings.TrimSuffix(u, "/v1/chat/completions")
	u = strings.TrimSuffix(u, "/v1")
	return u + "/v1"
}
