package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dshills/lgtm/internal/codectx"
	"github.com/dshills/lgtm/internal/providers"
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one message of a Q&A transcript.
type Entry struct {
	Role    Role
	Content string
}

// Transcript is the conversation of one Q&A sub-session.
type Transcript struct {
	Entries []Entry
}

func newTranscript(title, response string) *Transcript {
	return &Transcript{Entries: []Entry{{
		Role:    RoleAssistant,
		Content: fmt.Sprintf("Here was my %s review:\n\n%s", title, response),
	}}}
}

func (t *Transcript) add(question, answer string) {
	t.Entries = append(t.Entries,
		Entry{Role: RoleUser, Content: question},
		Entry{Role: RoleAssistant, Content: answer},
	)
}

// QA runs follow-up question sub-sessions about a completed step.
type QA struct {
	client providers.Client
	lines  LineReader
	out    Presenter
	rc     *codectx.ReviewContext
	log    zerolog.Logger
}

// NewQA returns a QA bound to the session's review context.
func NewQA(client providers.Client, lines LineReader, out Presenter, rc *codectx.ReviewContext, log zerolog.Logger) *QA {
	return &QA{client: client, lines: lines, out: out, rc: rc, log: log}
}

// Run loops reading questions until the user enters an empty line, "done"
// or "exit", or input ends. A failed call is reported and the loop continues. The error is
// non-nil only when reading input fails or ctx is cancelled.
func (q *QA) Run(ctx context.Context, title, response string) error {
	q.out.Header(fmt.Sprintf("Q&A: %s", title))
	q.out.Info(`Ask follow-up questions. Type "done" or press Enter on an empty line to return.`)

	t := newTranscript(title, response)
	for {
		line, err := q.lines.ReadLine(ctx, "You: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		question := strings.TrimSpace(line)
		if isExit(question) {
			q.out.Info("Exiting Q&A mode")
			return nil
		}

		prompt := q.prompt(title, t, question)
		stop := q.out.Busy("Thinking...")
		answer, err := q.client.Call(ctx, prompt)
		stop()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			q.log.Warn().Ctx(ctx).Err(err).Str("step", title).Msg("qa call failed")
			q.out.Error(fmt.Sprintf("Error: %v", err))
			q.out.Info("Continuing Q&A mode...")
			continue
		}

		q.out.Markdown(answer)
		t.add(question, answer)
		q.log.Debug().Ctx(ctx).Str("step", title).Int("entries", len(t.Entries)).Msg("qa exchange")
	}
}

func isExit(question string) bool {
	return question == "" || strings.EqualFold(question, "done") || strings.EqualFold(question, "exit")
}

func (q *QA) prompt(title string, t *Transcript, question string) string {
	parts := []string{
		fmt.Sprintf("You are in an interactive Q&A session about a code review step: %q", title),
		"Answer the user's question based on the code and previous conversation.\n",
	}

	if paths := q.paths(); len(paths) > 0 {
		parts = append(parts, "# FILES UNDER REVIEW\n")
		for _, p := range paths {
			parts = append(parts, "- "+p)
		}
		parts = append(parts, "")
	}

	parts = append(parts, "# CONVERSATION HISTORY\n")
	for _, e := range t.Entries {
		if e.Role == RoleUser {
			parts = append(parts, fmt.Sprintf("**User:** %s\n", e.Content))
		} else {
			parts = append(parts, fmt.Sprintf("**You:** %s\n", e.Content))
		}
	}

	parts = append(parts,
		"\n# USER'S QUESTION\n",
		question+"\n",
		"\n# INSTRUCTIONS\n",
		"- Answer concisely but thoroughly",
		"- Reference specific code when relevant",
		"- If the question is about something not in the code, say so",
		"- Maintain the context of the review step",
		"- Be helpful and constructive",
	)
	return strings.Join(parts, "\n")
}

func (q *QA) paths() []string {
	if q.rc == nil {
		return nil
	}
	var paths []string
	for _, group := range [][]codectx.FileRecord{q.rc.ChangedFiles, q.rc.Dependencies, q.rc.TestFiles} {
		for _, f := range group {
			paths = append(paths, f.Path)
		}
	}
	return paths
}
