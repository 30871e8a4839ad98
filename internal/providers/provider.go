package providers

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Client sends one prompt and returns the model's text response. The
// credential is bound at construction.
type Client interface {
	Call(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Options configures a Client.
type Options struct {
	Model           string
	APIKey          string
	BaseURL         string
	Temperature     float64
	MaxOutputTokens int
}

// New creates a client by provider name.
func New(ctx context.Context, provider string, opts Options) (Client, error) {
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = 8192
	}
	switch provider {
	case "gemini", "google":
		return NewGemini(ctx, opts)
	case "openai":
		return NewOpenAI(opts), nil
	case "anthropic":
		return NewAnthropic(opts), nil
	case "ollama", "lmstudio":
		return NewOllama(opts), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

var keyEnv = map[string][]string{
	"gemini":    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"google":    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"openai":    {"OPENAI_API_KEY"},
	"anthropic": {"ANTHROPIC_API_KEY"},
	"ollama":    {"LGTM_OLLAMA_API_KEY"},
	"lmstudio":  {"LGTM_OLLAMA_API_KEY"},
}

// KeyEnv returns the environment variables consulted for provider's API key,
// in lookup order.
func KeyEnv(provider string) []string {
	return keyEnv[provider]
}

// ResolveKey returns flagValue when set, otherwise the first non-empty
// environment variable for provider.
func ResolveKey(provider, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	for _, env := range keyEnv[provider] {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}

// RequiresKey reports whether provider refuses to run without an API key.
func RequiresKey(provider string) bool {
	return provider != "ollama" && provider != "lmstudio"
}

// ValidateKey does a loose format check on key. It only catches obviously
// wrong values; the provider performs the real validation.
func ValidateKey(provider, key string) error {
	if !RequiresKey(provider) {
		return nil
	}
	if key == "" {
		return fmt.Errorf("no API key: pass --api-key or set %s", strings.Join(keyEnv[provider], " or "))
	}
	if len(key) <= 20 {
		return fmt.Errorf("API key for %s looks invalid (too short)", provider)
	}
	return nil
}
