// Package providers implements the LLM [Client] each review step and Q&A
// exchange calls.
//
// Supported providers: Google Gemini (default) through the genai SDK, OpenAI
// through go-openai, Anthropic through its official SDK, and Ollama or any
// other OpenAI-compatible local server.
//
// Every failure is returned as an [*Error] carrying a [Kind] so that callers
// can report authentication and rate-limit problems distinctly without
// parsing provider-specific messages. Clients never retry: a failed call is
// reported once and the caller decides what happens next.
//
// Use [New] to obtain a Client by provider name and [WithCache] to put a
// response cache in front of it.
package providers
