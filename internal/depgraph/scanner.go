package depgraph

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
)

// Scanner extracts the module reference strings declared in one source file,
// in declaration order.
type Scanner interface {
	Scan(ctx context.Context, name string, src []byte) ([]string, error)
}

// NewScanner returns the scanner registered under kind ("regex" or
// "treesitter").
func NewScanner(kind string) (Scanner, error) {
	switch kind {
	case "", "regex":
		return RegexScanner{}, nil
	case "treesitter":
		return NewTreeSitterScanner(), nil
	default:
		return nil, fmt.Errorf("unknown scanner: %s", kind)
	}
}

var referencePatterns = []*regexp.Regexp{
	// import x from '...', import { a, b } from '...', export * from '...', import '...'
	regexp.MustCompile(`\b(?:import|export)\s+(?:type\s+)?(?:[^'";]*?\s+from\s+)?['"]([^'"\n]+)['"]`),
	// import('...')
	regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"\n]+)['"]\s*\)`),
	// require('...')
	regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"\n]+)['"]\s*\)`),
}

// RegexScanner matches the known declaration forms textually. It does not
// understand comments or string contents, so commented-out imports are
// reported too.
type RegexScanner struct{}

type match struct {
	offset int
	ref    string
}

// Scan implements Scanner.
func (RegexScanner) Scan(_ context.Context, _ string, src []byte) ([]string, error) {
	text := string(src)
	var matches []match
	for _, re := range referencePatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, match{offset: loc[0], ref: text[loc[2]:loc[3]]})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m.ref)
	}
	return dedupe(refs), nil
}

func dedupe(refs []string) []string {
	seen := make(map[string]bool, len(refs))
	out := refs[:0]
	for _, r := range refs {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// IsSource reports whether name has one of the given source extensions.
func IsSource(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
