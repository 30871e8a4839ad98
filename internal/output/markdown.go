package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/lgtm/internal/review"
)

// MarkdownWriter outputs the session as a markdown document with one
// section per completed step.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Code Review: %s\n\n", orUnknown(report.Repo.Branch))
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Base | `%s` (merge base `%s`) |\n", report.Repo.Base, shortRef(report.Repo.MergeBase))
	fmt.Fprintf(&b, "| Model | %s / %s |\n", report.Provider, report.Model)
	fmt.Fprintf(&b, "| Steps | %d of %d completed (%s) |\n", len(report.Steps), report.Total, report.State)
	fmt.Fprintf(&b, "| Context | %d changed, %d dependencies, %d tests (~%d tokens) |\n\n",
		len(report.Context.ChangedFiles), len(report.Context.Dependencies),
		len(report.Context.TestFiles), report.Context.EstimatedTokens)

	if len(report.Context.ChangedFiles) > 0 {
		b.WriteString("<details>\n<summary>Files in context</summary>\n\n")
		writeList(&b, "Changed", report.Context.ChangedFiles)
		writeList(&b, "Dependencies", report.Context.Dependencies)
		writeList(&b, "Tests", report.Context.TestFiles)
		b.WriteString("</details>\n\n")
	}

	for _, s := range report.Steps {
		fmt.Fprintf(&b, "## %d. %s\n\n", s.Ordinal, s.Title)
		b.WriteString(strings.TrimSpace(s.Response))
		b.WriteString("\n\n")
	}

	if len(report.Skipped) > 0 || len(report.Failed) > 0 {
		b.WriteString("---\n\n")
		for _, title := range report.Skipped {
			fmt.Fprintf(&b, "- *%s* was skipped.\n", title)
		}
		for _, f := range report.Failed {
			fmt.Fprintf(&b, "- *%s* failed (%s): %s\n", f.Title, f.Kind, f.Message)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "*Session %s, reviewed in %s*\n", report.SessionID, formatMs(report.DurationMs))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, label string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", label)
	for _, p := range paths {
		fmt.Fprintf(b, "- `%s`\n", p)
	}
	b.WriteString("\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func shortRef(ref string) string {
	if len(ref) > 10 {
		return ref[:10]
	}
	return ref
}

func formatMs(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
