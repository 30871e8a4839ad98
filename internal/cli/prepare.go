package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/dshills/lgtm/internal/codectx"
	"github.com/dshills/lgtm/internal/config"
	"github.com/dshills/lgtm/internal/depgraph"
	"github.com/dshills/lgtm/internal/filter"
	"github.com/dshills/lgtm/internal/gitctx"
	"github.com/dshills/lgtm/internal/logging"
)

// prepared is everything gathered before the first provider call.
type prepared struct {
	Repo    repoState
	Changed filter.Result
	Diff    string
	Stats   []gitctx.FileStat
	Context *codectx.ReviewContext
}

// prepare collects the changed files, the branch diff, and the review
// context. A nil Context means there is nothing to review.
func prepare(ctx context.Context, vcs VCS, cfg config.Config, fsysFor func(root string) fs.FS) (*prepared, error) {
	log := logging.Component("prepare")

	st, err := checkRepository(ctx, vcs, cfg.BaseBranch)
	if err != nil {
		return nil, err
	}
	p := &prepared{Repo: st}

	changed, err := vcs.ChangedFiles(ctx, st.MergeBase)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}
	p.Changed = filter.New(cfg.Exclude).Apply(changed)
	log.Info().Ctx(ctx).
		Int("changed", len(changed)).
		Int("kept", len(p.Changed.Kept)).
		Str("merge_base", st.MergeBase).
		Msg("changed files")
	if len(p.Changed.Kept) == 0 {
		return p, nil
	}

	p.Diff, err = vcs.FullDiff(ctx, st.MergeBase)
	if err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}
	if p.Stats, err = gitctx.DiffStats(p.Diff); err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("diff stats unavailable")
	}

	fsys := fsysFor(st.Root)
	resolver := depgraph.NewResolver(fsys, depgraph.Options{
		AliasPrefix: cfg.Alias.Prefix,
		AliasDir:    cfg.Alias.Dir,
		Extensions:  cfg.Extensions,
	})
	scanner, err := depgraph.NewScanner(cfg.Scanner)
	if err != nil {
		return nil, err
	}
	graph := depgraph.NewGraph(fsys, resolver, scanner, logging.Component("depgraph"))
	p.Context = codectx.NewBuilder(fsys, graph, logging.Component("codectx")).Build(ctx, p.Changed.Kept)
	return p, nil
}

func dirFS(root string) fs.FS { return os.DirFS(root) }

// statsByPath indexes diff stats for the changed-files listing.
func statsByPath(stats []gitctx.FileStat) map[string]gitctx.FileStat {
	m := make(map[string]gitctx.FileStat, len(stats))
	for _, s := range stats {
		m[s.Path] = s
	}
	return m
}
