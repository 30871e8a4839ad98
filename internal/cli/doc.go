// Package cli wires together the Cobra command tree for the lgtm binary.
//
// The root command runs an interactive review of the current branch. The
// subcommands manage configuration (config), the response cache (cache), and
// providers (models), and dry-run the context builder (context). Handlers
// set the process exit code: 0 on success, nothing to review, or an
// interrupted session, and 1 on startup validation or runtime failures.
package cli
