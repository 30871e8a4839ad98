package redact

import (
	"regexp"
	"strings"

	"github.com/dshills/lgtm/internal/filter"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// Google API keys, including Gemini keys
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// AWS secret access keys
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	// Secrets, tokens and passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	// Connection strings with inline credentials
	regexp.MustCompile(`(?i)\b(postgres(ql)?|mysql|mongodb(\+srv)?|redis|amqp)://[^:\s/]+:[^@\s]+@`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Anthropic API keys
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`),
	// OpenAI API keys
	regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
	// Long hex strings assigned to key-like names
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllLiteralString(result, placeholder)
	}
	return result
}

// Redactor applies the configured redaction policy to file contents and
// diffs before they are placed in a prompt.
type Redactor struct {
	secrets bool
	paths   []string
}

// New returns a Redactor. When secrets is false only path-based redaction
// applies.
func New(secrets bool, paths []string) *Redactor {
	return &Redactor{secrets: secrets, paths: paths}
}

// ShouldRedactPath reports whether the whole content of path is withheld.
func (r *Redactor) ShouldRedactPath(path string) bool {
	return filter.MatchesAny(path, r.paths)
}

// File returns the content of path as it may be sent to a provider.
func (r *Redactor) File(path, content string) string {
	if r.ShouldRedactPath(path) {
		return placeholder + " (file content redacted by path policy)\n"
	}
	if r.secrets {
		return Secrets(content)
	}
	return content
}

// Diff redacts a unified diff section by section, withholding the hunks of
// files matched by the path policy.
func (r *Redactor) Diff(diff string) string {
	var b strings.Builder
	for _, section := range splitSections(diff) {
		path := sectionPath(section)
		if path != "" && r.ShouldRedactPath(path) {
			b.WriteString(sectionHeader(section))
			b.WriteString(placeholder + " (diff redacted by path policy)\n")
			continue
		}
		if r.secrets {
			section = Secrets(section)
		}
		b.WriteString(section)
	}
	return b.String()
}

func splitSections(diff string) []string {
	var sections []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if strings.HasPrefix(line, "diff --git") && current.Len() > 0 {
			sections = append(sections, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		sections = append(sections, current.String())
	}
	return sections
}

func sectionPath(section string) string {
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, "+++ b/") {
			return strings.TrimPrefix(line, "+++ b/")
		}
		if strings.HasPrefix(line, "@@") {
			break
		}
	}
	// Deleted files have no "+++ b/" line.
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, "--- a/") {
			return strings.TrimPrefix(line, "--- a/")
		}
	}
	return ""
}

// sectionHeader returns the lines of section before its first hunk.
func sectionHeader(section string) string {
	if i := strings.Index(section, "\n@@"); i >= 0 {
		return section[:i+1]
	}
	return section
}
