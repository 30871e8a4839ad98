package review

import (
	"time"

	"github.com/dshills/lgtm/internal/steps"
)

// State is the orchestrator's position in a review session.
type State int

const (
	// StateRunning executes the current step.
	StateRunning State = iota
	// StateAwaitingNavigation waits for the user's decision after a step.
	StateAwaitingNavigation
	// StateInQA runs a follow-up question session on the current step.
	StateInQA
	// StateStopped ends the session early at the user's request.
	StateStopped
	// StateCompleted ends the session after the last step.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAwaitingNavigation:
		return "awaiting_navigation"
	case StateInQA:
		return "in_qa"
	case StateStopped:
		return "stopped"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible from s.
func (s State) Terminal() bool {
	return s == StateStopped || s == StateCompleted
}

// Action is a navigation decision made between steps.
type Action int

const (
	// ActionContinue runs the next step, or finishes after the last one.
	ActionContinue Action = iota
	// ActionAsk opens follow-up questions on the step just finished.
	ActionAsk
	// ActionSkip bypasses the next step and runs the one after it.
	ActionSkip
	// ActionQuit stops the session.
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionAsk:
		return "ask"
	case ActionSkip:
		return "skip"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// StepResult is the outcome of one successfully executed step.
type StepResult struct {
	Title     string `json:"title"`
	Ordinal   int    `json:"ordinal"`
	Prompt    string `json:"-"`
	Response  string `json:"response"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// StepFailure records a step whose provider call failed.
type StepFailure struct {
	Title   string `json:"title"`
	Ordinal int    `json:"ordinal"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session is the mutable state of one review run. Only the orchestrator
// changes it.
type Session struct {
	Completed []StepResult  `json:"completed"`
	Failed    []StepFailure `json:"failed,omitempty"`
	Skipped   []string      `json:"skipped,omitempty"`
	Index     int           `json:"index"`
	State     State         `json:"-"`
	Total     int           `json:"total"`
}

// Last returns the most recently completed step.
func (s *Session) Last() (StepResult, bool) {
	if len(s.Completed) == 0 {
		return StepResult{}, false
	}
	return s.Completed[len(s.Completed)-1], true
}

// recent returns up to n of the latest results, oldest first.
func (s *Session) recent(n int) []steps.Prior {
	if n <= 0 {
		return nil
	}
	from := max(len(s.Completed)-n, 0)
	prior := make([]steps.Prior, 0, len(s.Completed)-from)
	for _, r := range s.Completed[from:] {
		prior = append(prior, steps.Prior{Title: r.Title, Response: r.Response})
	}
	return prior
}

// RepoInfo describes the branch under review.
type RepoInfo struct {
	Root      string `json:"root"`
	Branch    string `json:"branch"`
	Base      string `json:"base"`
	MergeBase string `json:"mergeBase"`
}

// ContextInfo summarizes the assembled review context.
type ContextInfo struct {
	ChangedFiles    []string `json:"changedFiles"`
	Dependencies    []string `json:"dependencies"`
	TestFiles       []string `json:"testFiles"`
	Excluded        []string `json:"excluded,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	EstimatedTokens int      `json:"estimatedTokens"`
}

// Report is the exported record of a finished session.
type Report struct {
	Tool       string        `json:"tool"`
	Version    string        `json:"version"`
	SessionID  string        `json:"sessionId"`
	Provider   string        `json:"provider"`
	Model      string        `json:"model"`
	Repo       RepoInfo      `json:"repo"`
	Context    ContextInfo   `json:"context"`
	State      string        `json:"state"`
	Steps      []StepResult  `json:"steps"`
	Failed     []StepFailure `json:"failed,omitempty"`
	Skipped    []string      `json:"skipped,omitempty"`
	Total      int           `json:"totalSteps"`
	StartedAt  time.Time     `json:"startedAt"`
	DurationMs int64         `json:"durationMs"`
}
