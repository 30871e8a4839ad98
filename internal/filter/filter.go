package filter

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var lockfiles = map[string]bool{
	"yarn.lock":         true,
	"package-lock.json": true,
	"pnpm-lock.yaml":    true,
}

var binaryExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".woff", ".woff2", ".ttf", ".eot", ".otf",
	".pdf", ".zip", ".tar", ".gz",
	".mp4", ".mp3", ".wav",
	".exe", ".dll", ".so", ".dylib",
}

// Filter decides which changed paths are reviewable.
type Filter struct {
	exclude []string
}

// New returns a Filter that also drops paths matching any of the doublestar
// patterns in exclude.
func New(exclude []string) *Filter {
	return &Filter{exclude: exclude}
}

// Result partitions an input list, preserving input order in both halves.
type Result struct {
	Kept     []string
	Excluded []string
}

// Apply partitions paths into reviewable and excluded files.
func (f *Filter) Apply(paths []string) Result {
	var r Result
	for _, p := range paths {
		if f.Excludes(p) {
			r.Excluded = append(r.Excluded, p)
			continue
		}
		r.Kept = append(r.Kept, p)
	}
	return r
}

// Excludes reports whether p should be left out of the review.
func (f *Filter) Excludes(p string) bool {
	if lockfiles[path.Base(p)] {
		return true
	}
	lower := strings.ToLower(p)
	for _, ext := range binaryExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return MatchesAny(p, f.exclude)
}

// MatchesAny reports whether p matches any doublestar pattern. A pattern
// with no slash also matches against the base name, so "*.snap" excludes
// snapshots in every directory.
func MatchesAny(p string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, path.Base(p)); err == nil && ok {
				return true
			}
		}
	}
	return false
}
