// Package output exports a finished review session.
//
// Two formats are supported:
//   - markdown: one section per completed step, suitable for a PR description
//   - json: the full structured [review.Report]
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [WriteReport]
// to write straight to a file or stdout.
package output
