// Lgtm is an interactive CLI that reviews the changes on the current git
// branch with an LLM provider.
//
// It diffs the branch against a base branch, gathers the changed files along
// with the local modules they import and their tests, then walks through five
// review steps: overview, nomenclature, logic, tests, and UX. Between steps
// you can continue, ask follow-up questions, skip the next step, or quit.
//
// Usage:
//
//	lgtm                          # review the current branch against develop
//	lgtm --base main              # review against another base branch
//	lgtm --out review.md          # also export the session
//	lgtm context --files          # show what would be sent, without a provider
//	lgtm models doctor            # check provider credentials
//	lgtm config set provider openai
package main
