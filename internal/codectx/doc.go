// Package codectx assembles the review context for a set of changed files:
// the changed files themselves, the local files they depend on, and their
// associated tests, each path appearing exactly once.
package codectx
