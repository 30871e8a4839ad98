package cli

import (
	"context"
	"fmt"

	"github.com/dshills/lgtm/internal/providers"
)

// VCS is the version control surface the review needs.
type VCS interface {
	IsRepository(ctx context.Context) bool
	Root(ctx context.Context) (string, error)
	BranchExists(ctx context.Context, branch string) bool
	CurrentBranch(ctx context.Context) (string, error)
	MergeBase(ctx context.Context, base string) (string, error)
	ChangedFiles(ctx context.Context, mergeBase string) ([]string, error)
	FullDiff(ctx context.Context, mergeBase string) (string, error)
}

// StartupError is a fatal precondition failure reported before any review
// work starts.
type StartupError struct {
	Msg  string
	Hint string
	Err  error
}

func (e *StartupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *StartupError) Unwrap() error { return e.Err }

// repoState is what startup validation learns about the repository.
type repoState struct {
	Root      string
	Branch    string
	Base      string
	MergeBase string
}

// checkCredential validates the API key for provider.
func checkCredential(provider, key string) error {
	if err := providers.ValidateKey(provider, key); err != nil {
		return &StartupError{
			Msg:  "invalid credential",
			Hint: "Pass --api-key or export " + keyEnvHint(provider) + ".",
			Err:  err,
		}
	}
	return nil
}

func keyEnvHint(provider string) string {
	envs := providers.KeyEnv(provider)
	if len(envs) == 0 {
		return "the provider's API key variable"
	}
	return envs[0]
}

// checkRepository verifies the working tree can be reviewed against base and
// returns the merge base.
func checkRepository(ctx context.Context, vcs VCS, base string) (repoState, error) {
	st := repoState{Base: base}
	if !vcs.IsRepository(ctx) {
		return st, &StartupError{Msg: "not a git repository", Hint: "Run lgtm from inside a git work tree."}
	}
	root, err := vcs.Root(ctx)
	if err != nil {
		return st, &StartupError{Msg: "cannot locate repository root", Err: err}
	}
	st.Root = root

	if !vcs.BranchExists(ctx, base) {
		return st, &StartupError{
			Msg:  fmt.Sprintf("base branch %q does not exist", base),
			Hint: "Use --base to pick another branch.",
		}
	}
	branch, err := vcs.CurrentBranch(ctx)
	if err != nil {
		return st, &StartupError{Msg: "cannot determine current branch", Err: err}
	}
	st.Branch = branch
	if branch == base {
		return st, &StartupError{
			Msg:  fmt.Sprintf("currently on the base branch %q", base),
			Hint: "Check out the feature branch you want reviewed.",
		}
	}

	mb, err := vcs.MergeBase(ctx, base)
	if err != nil {
		return st, &StartupError{
			Msg: fmt.Sprintf("no common ancestor between %s and %s", branch, base),
			Err: err,
		}
	}
	st.MergeBase = mb
	return st, nil
}
