package depgraph

import (
	"io/fs"
	"path"
	"strings"
)

// DefaultExtensions is the extension probe order used when none is configured.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs"}

// Options configures a Resolver.
type Options struct {
	// AliasPrefix marks project-root aliased references, e.g. "@/".
	AliasPrefix string
	// AliasDir is the root-relative directory the alias prefix maps to.
	AliasDir string
	// Extensions lists known source extensions in priority order.
	Extensions []string
}

// DefaultOptions returns the conventional "@/" -> "src" alias and the default
// extension list.
func DefaultOptions() Options {
	return Options{
		AliasPrefix: "@/",
		AliasDir:    "src",
		Extensions:  DefaultExtensions,
	}
}

// Resolver maps a reference string found in one file to a project file.
type Resolver struct {
	fsys fs.FS
	opts Options
}

// NewResolver returns a Resolver rooted at fsys.
func NewResolver(fsys fs.FS, opts Options) *Resolver {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	return &Resolver{fsys: fsys, opts: opts}
}

// IsLocal reports whether ref points inside the project rather than at a
// package.
func (r *Resolver) IsLocal(ref string) bool {
	if strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") {
		return true
	}
	return r.opts.AliasPrefix != "" && strings.HasPrefix(ref, r.opts.AliasPrefix)
}

// Resolve returns the root-relative path ref refers to when it appears in the
// file at from. The first existing candidate wins: the literal path when it
// carries a known extension, then the path with each extension appended, then
// an index file inside the path treated as a directory. References that are
// not local, escape the root, or match nothing are reported as unresolved.
func (r *Resolver) Resolve(ref, from string) (string, bool) {
	if !r.IsLocal(ref) {
		return "", false
	}

	var target string
	if r.opts.AliasPrefix != "" && strings.HasPrefix(ref, r.opts.AliasPrefix) {
		target = path.Join(r.opts.AliasDir, strings.TrimPrefix(ref, r.opts.AliasPrefix))
	} else {
		target = path.Join(path.Dir(from), ref)
	}
	if !fs.ValidPath(target) {
		return "", false
	}

	if r.knownExt(target) && r.isFile(target) {
		return target, true
	}
	for _, ext := range r.opts.Extensions {
		if candidate := target + ext; r.isFile(candidate) {
			return candidate, true
		}
	}
	for _, ext := range r.opts.Extensions {
		if candidate := path.Join(target, "index"+ext); r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) knownExt(p string) bool {
	ext := path.Ext(p)
	for _, e := range r.opts.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (r *Resolver) isFile(p string) bool {
	info, err := fs.Stat(r.fsys, p)
	return err == nil && info.Mode().IsRegular()
}
