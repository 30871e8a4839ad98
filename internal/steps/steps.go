package steps

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/dshills/lgtm/internal/codectx"
	"github.com/dshills/lgtm/internal/redact"
)

// Prior is the outcome of an earlier step, as shown to later steps.
type Prior struct {
	Title    string
	Response string
}

// Input is everything a step needs to build its prompt.
type Input struct {
	Context   *codectx.ReviewContext
	MergeBase string
	Diff      string
	// History holds the most recent completed steps, oldest first.
	History []Prior
	// Redactor, when set, is applied to the diff and every file.
	Redactor *redact.Redactor
	Rules    *Rules
}

// Step is one stage of the review pipeline.
type Step struct {
	Title   string
	Ordinal int
	Build   func(Input) string
}

// Pipeline returns the review steps in execution order.
func Pipeline() []Step {
	return []Step{
		{Title: "Overview", Ordinal: 1, Build: buildOverview},
		{Title: "Nomenclature", Ordinal: 2, Build: buildNomenclature},
		{Title: "Logic & Potential Bugs", Ordinal: 3, Build: buildLogic},
		{Title: "Test Analysis", Ordinal: 4, Build: buildTests},
		{Title: "UX & Production Readiness", Ordinal: 5, Build: buildUX},
	}
}

const persona = "You are an expert code reviewer specializing in React and TypeScript projects.\n"

// assemble joins the shared sections with a step's task lines.
func assemble(in Input, title string, withHistory bool, task []string) string {
	parts := []string{persona, ContextSection(in)}
	if withHistory {
		parts = append(parts, HistorySection(in.History))
	}
	parts = append(parts, "\n---\n")
	parts = append(parts, task...)
	if rules := in.Rules.Section(title); rules != "" {
		parts = append(parts, rules)
	}
	return strings.Join(parts, "\n")
}

// ContextSection renders the diff and every file of the review context.
func ContextSection(in Input) string {
	diff := in.Diff
	if in.Redactor != nil {
		diff = in.Redactor.Diff(diff)
	}

	var parts []string
	parts = append(parts, "# CODE CONTEXT\n", "## Git Diff\n", "```diff", strings.TrimRight(diff, "\n"), "```\n")

	rc := in.Context
	if rc == nil {
		rc = &codectx.ReviewContext{}
	}
	parts = append(parts, "## Changed Files\n")
	parts = append(parts, fileBlocks(rc.ChangedFiles, in.Redactor)...)
	if len(rc.Dependencies) > 0 {
		parts = append(parts, "## Codebase Context (for pattern comparison)\n")
		parts = append(parts, fileBlocks(rc.Dependencies, in.Redactor)...)
	}
	if len(rc.TestFiles) > 0 {
		parts = append(parts, "## Related Tests\n")
		parts = append(parts, fileBlocks(rc.TestFiles, in.Redactor)...)
	}
	return strings.Join(parts, "\n")
}

func fileBlocks(files []codectx.FileRecord, r *redact.Redactor) []string {
	var parts []string
	for _, f := range files {
		content := f.Content
		if r != nil {
			content = r.File(f.Path, content)
		}
		fence := "```"
		for strings.Contains(content, fence) {
			fence += "`"
		}
		parts = append(parts,
			fmt.Sprintf("### %s\n", f.Path),
			fence+fenceLang(f.Path),
			strings.TrimRight(content, "\n"),
			fence+"\n",
		)
	}
	return parts
}

// HistorySection renders earlier findings. It is empty when there are none.
func HistorySection(history []Prior) string {
	if len(history) == 0 {
		return ""
	}
	parts := []string{
		"\n# PREVIOUS REVIEW STEPS\n",
		"For context, here are the findings from previous review steps:\n",
	}
	for _, p := range history {
		parts = append(parts, fmt.Sprintf("## %s\n", p.Title), p.Response+"\n")
	}
	return strings.Join(parts, "\n")
}

// EstimateTokens approximates the token count of text at four characters
// per token.
func EstimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

func fenceLang(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "tsx"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".jsx":
		return "jsx"
	case ".json":
		return "json"
	case ".css", ".scss":
		return "css"
	default:
		return ""
	}
}
