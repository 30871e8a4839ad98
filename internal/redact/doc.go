// Package redact removes secrets from file contents and diffs before they
// are sent to any LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens, connection strings with inline credentials, and provider-specific
// tokens (Google, Anthropic, OpenAI, GitHub, Slack).
//
// Path-based redaction is also supported: files whose paths match configured
// doublestar patterns have their entire content replaced with [REDACTED]
// rather than being scanned line by line.
package redact
