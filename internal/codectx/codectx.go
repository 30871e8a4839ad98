package codectx

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/dshills/lgtm/internal/depgraph"
)

// FileRecord is a file path with the content read at build time.
type FileRecord struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ReviewContext is the partitioned file set a review session works from.
// No path appears in more than one list, and AllPaths is their union.
type ReviewContext struct {
	ChangedFiles []FileRecord    `json:"changedFiles"`
	Dependencies []FileRecord    `json:"dependencies"`
	TestFiles    []FileRecord    `json:"testFiles"`
	AllPaths     map[string]bool `json:"-"`
	Warnings     []string        `json:"warnings,omitempty"`
}

// Total returns the number of distinct files in the context.
func (rc *ReviewContext) Total() int {
	return len(rc.AllPaths)
}

// Chars returns the combined content length of every file in the context.
func (rc *ReviewContext) Chars() int {
	n := 0
	for _, list := range [][]FileRecord{rc.ChangedFiles, rc.Dependencies, rc.TestFiles} {
		for _, f := range list {
			n += len(f.Content)
		}
	}
	return n
}

// Builder aggregates a ReviewContext from changed paths.
type Builder struct {
	fsys  fs.FS
	graph *depgraph.Graph
	log   zerolog.Logger
}

// NewBuilder returns a Builder reading from fsys and expanding dependencies
// through graph.
func NewBuilder(fsys fs.FS, graph *depgraph.Graph, log zerolog.Logger) *Builder {
	return &Builder{fsys: fsys, graph: graph, log: log}
}

// Build processes changed in order. An unreadable changed file is reported as
// a warning and skipped. Otherwise the file is added to ChangedFiles, followed
// by any dependencies and its test file not already present in the context.
// Unreadable dependencies are warned about and dropped; unreadable test files
// are dropped silently.
func (b *Builder) Build(ctx context.Context, changed []string) *ReviewContext {
	rc := &ReviewContext{AllPaths: make(map[string]bool)}

	for _, p := range changed {
		rec, err := b.read(p)
		if err != nil {
			b.warn(ctx, rc, p, err)
			continue
		}
		// A path already captured as an earlier file's dependency or test
		// stays where it was first recorded.
		if !rc.AllPaths[p] {
			rc.AllPaths[p] = true
			rc.ChangedFiles = append(rc.ChangedFiles, rec)
		}

		for _, dep := range b.graph.Collect(ctx, p) {
			if rc.AllPaths[dep] {
				continue
			}
			rec, err := b.read(dep)
			if err != nil {
				b.warn(ctx, rc, dep, err)
				continue
			}
			rc.AllPaths[dep] = true
			rc.Dependencies = append(rc.Dependencies, rec)
		}

		if test, ok := depgraph.FindTest(b.fsys, p); ok && !rc.AllPaths[test] {
			if rec, err := b.read(test); err == nil {
				rc.AllPaths[test] = true
				rc.TestFiles = append(rc.TestFiles, rec)
			}
		}
	}

	b.log.Info().Ctx(ctx).
		Int("changed", len(rc.ChangedFiles)).
		Int("dependencies", len(rc.Dependencies)).
		Int("tests", len(rc.TestFiles)).
		Msg("review context built")
	return rc
}

func (b *Builder) read(p string) (FileRecord, error) {
	content, err := fs.ReadFile(b.fsys, p)
	if err != nil {
		return FileRecord{}, err
	}
	return FileRecord{Path: p, Content: string(content)}, nil
}

func (b *Builder) warn(ctx context.Context, rc *ReviewContext, p string, err error) {
	rc.Warnings = append(rc.Warnings, fmt.Sprintf("could not read %s: %v", p, err))
	b.log.Warn().Ctx(ctx).Str("path", p).Err(err).Msg("skipping unreadable file")
}
