// Package terminal implements the interactive surface of a review session:
// styled output with markdown rendering, a progress spinner, single-key
// navigation in raw mode, and line input for follow-up questions.
//
// Raw mode is held only while a navigation key is awaited and is restored
// on every return path, including Ctrl-C. When stdin is not a terminal,
// navigation falls back to reading whole lines.
package terminal
