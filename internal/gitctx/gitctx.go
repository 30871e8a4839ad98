package gitctx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// Repo runs git commands in a working directory.
type Repo struct {
	Dir string
}

// New returns a Repo rooted at dir. An empty dir means the process working
// directory.
func New(dir string) *Repo {
	return &Repo{Dir: dir}
}

// IsRepository reports whether Dir is inside a git work tree.
func (r *Repo) IsRepository(ctx context.Context) bool {
	_, err := r.gitOutput(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// Root returns the top-level directory of the work tree.
func (r *Repo) Root(ctx context.Context) (string, error) {
	out, err := r.gitOutput(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("git rev-parse --show-toplevel: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// BranchExists reports whether branch resolves to a commit.
func (r *Repo) BranchExists(ctx context.Context, branch string) bool {
	_, err := r.gitOutput(ctx, "rev-parse", "--verify", "--quiet", branch)
	return err == nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.gitOutput(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse --abbrev-ref HEAD: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// MergeBase returns the commit where HEAD forked from base.
func (r *Repo) MergeBase(ctx context.Context, base string) (string, error) {
	out, err := r.gitOutput(ctx, "merge-base", "HEAD", base)
	if err != nil {
		return "", fmt.Errorf("git merge-base HEAD %s: %w", base, err)
	}
	return strings.TrimSpace(out), nil
}

// ChangedFiles lists the paths changed between mergeBase and HEAD, in git's
// order, without duplicates.
func (r *Repo) ChangedFiles(ctx context.Context, mergeBase string) ([]string, error) {
	out, err := r.gitOutput(ctx, "diff", "--name-only", mergeBase+"...HEAD")
	if err != nil {
		return nil, fmt.Errorf("git diff --name-only: %w", err)
	}
	var files []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		f := strings.TrimSpace(line)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		files = append(files, f)
	}
	return files, nil
}

// FullDiff returns the unified diff between mergeBase and HEAD.
func (r *Repo) FullDiff(ctx context.Context, mergeBase string) (string, error) {
	out, err := r.gitOutput(ctx, "diff", mergeBase+"...HEAD")
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return out, nil
}

// FileStat is the line count summary of one file in a diff.
type FileStat struct {
	Path    string
	Added   int
	Deleted int
}

// DiffStats summarizes a unified diff per file. Deleted files are reported
// under their old path.
func DiffStats(unified string) ([]FileStat, error) {
	if strings.TrimSpace(unified) == "" {
		return nil, nil
	}
	fds, err := diff.NewMultiFileDiffReader(strings.NewReader(unified)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}
	stats := make([]FileStat, 0, len(fds))
	for _, fd := range fds {
		name := strings.TrimPrefix(fd.NewName, "b/")
		if fd.NewName == "/dev/null" {
			name = strings.TrimPrefix(fd.OrigName, "a/")
		}
		s := fd.Stat()
		// go-diff reports a modified line as Changed; count it on both sides.
		stats = append(stats, FileStat{
			Path:    name,
			Added:   int(s.Added + s.Changed),
			Deleted: int(s.Deleted + s.Changed),
		})
	}
	return stats, nil
}

func (r *Repo) gitOutput(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
