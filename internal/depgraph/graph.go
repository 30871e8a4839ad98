package depgraph

import (
	"context"
	"io/fs"

	"github.com/rs/zerolog"
)

// Graph walks local references from a root file.
type Graph struct {
	fsys     fs.FS
	resolver *Resolver
	scanner  Scanner
	log      zerolog.Logger
}

// NewGraph returns a Graph reading files from fsys.
func NewGraph(fsys fs.FS, resolver *Resolver, scanner Scanner, log zerolog.Logger) *Graph {
	if scanner == nil {
		scanner = RegexScanner{}
	}
	return &Graph{fsys: fsys, resolver: resolver, scanner: scanner, log: log}
}

// frame is one level of the depth-first walk: the references of the file at
// node, and the index of the next reference to visit.
type frame struct {
	node int
	refs []string
	next int
}

// Collect returns every file reachable from root through local references,
// excluding root itself, in depth-first pre-order. Each file appears once.
// Files that cannot be read or scanned are kept as leaves. The walk stops
// early, returning what it has, when ctx is cancelled.
func (g *Graph) Collect(ctx context.Context, root string) []string {
	// arena holds every discovered path; frames refer to it by index.
	arena := []string{root}
	visited := map[string]bool{root: true}
	stack := []frame{{node: 0, refs: g.references(ctx, root)}}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			break
		}
		top := &stack[len(stack)-1]
		if top.next >= len(top.refs) {
			stack = stack[:len(stack)-1]
			continue
		}
		ref := top.refs[top.next]
		top.next++

		from := arena[top.node]
		resolved, ok := g.resolver.Resolve(ref, from)
		if !ok || visited[resolved] {
			continue
		}
		visited[resolved] = true
		arena = append(arena, resolved)
		stack = append(stack, frame{node: len(arena) - 1, refs: g.references(ctx, resolved)})
	}
	return arena[1:]
}

func (g *Graph) references(ctx context.Context, p string) []string {
	src, err := fs.ReadFile(g.fsys, p)
	if err != nil {
		g.log.Debug().Str("path", p).Err(err).Msg("unreadable file treated as leaf")
		return nil
	}
	refs, err := g.scanner.Scan(ctx, p, src)
	if err != nil {
		g.log.Debug().Str("path", p).Err(err).Msg("scan failed, file treated as leaf")
		return nil
	}
	return refs
}
