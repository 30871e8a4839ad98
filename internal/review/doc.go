// Package review drives an interactive review session.
//
// An [Orchestrator] runs the step pipeline one step at a time. After each
// successful step it waits for a navigation decision: continue, ask a
// follow-up question, skip the next step, or quit. A failed step is
// classified, reported, and passed over after a short delay; it is never
// retried.
//
// [QA] is the follow-up sub-session. Its transcript lives only for the
// duration of one sub-session and never feeds back into the step history.
package review
