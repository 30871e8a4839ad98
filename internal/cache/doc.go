// Package cache stores provider responses on disk so that re-running a
// review over an unchanged branch does not pay for the same prompts twice.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, and the
// full prompt text. Prompts are built from redacted content, so no entry
// holds material that was withheld from the provider. Expired entries are
// skipped on read and removed by [Store.Clear].
//
// The default directory is $XDG_CACHE_HOME/lgtm (or the OS-appropriate
// equivalent).
package cache
