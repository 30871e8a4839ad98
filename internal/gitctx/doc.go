// Package gitctx answers the branch questions a review session needs from
// git: is this a repository, does the base branch exist, which branch is
// checked out, where does it fork from the base, and what changed since then.
//
// It shells out to the git binary. [Repo.DiffStats] parses the unified diff
// to report per-file line counts.
package gitctx
