package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lgtm/internal/review"
)

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{}).Write(&buf, sampleReport()))
	got := buf.String()

	assert.True(t, strings.HasPrefix(got, "# Code Review: feature/login\n"))
	assert.Contains(t, got, "| Base | `develop` (merge base `0123456789`) |")
	assert.Contains(t, got, "| Steps | 2 of 5 completed (stopped) |")
	assert.Contains(t, got, "| Context | 1 changed, 1 dependencies, 1 tests (~1200 tokens) |")
	assert.Contains(t, got, "- `src/api.ts`")
	assert.Contains(t, got, "## 1. Overview\n\nAdds a login form.\n\n")
	assert.Contains(t, got, "## 3. Logic & Potential Bugs\n")
	assert.Contains(t, got, "- *Nomenclature* was skipped.")
	assert.Contains(t, got, "- *Test Analysis* failed (rate_limit): 429")
	assert.Contains(t, got, "reviewed in 4.2s")
	assert.NotContains(t, got, "secret prompt")

	assert.Less(t, strings.Index(got, "## 1. Overview"), strings.Index(got, "## 3. Logic"))
}

func TestMarkdownWriter_Minimal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{}).Write(&buf, &review.Report{DurationMs: 12}))
	got := buf.String()

	assert.Contains(t, got, "# Code Review: unknown")
	assert.NotContains(t, got, "<details>")
	assert.NotContains(t, got, "---\n")
	assert.Contains(t, got, "reviewed in 12ms")
}
