package depgraph

import (
	"io/fs"
	"path"
	"strings"
)

// FindTest returns the conventional test file for p. Candidates, first
// existing wins: <base>.test<ext>, <base>.spec<ext>, <dir>/__tests__/<name>.
func FindTest(fsys fs.FS, p string) (string, bool) {
	dir := path.Dir(p)
	name := path.Base(p)
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidates := []string{
		path.Join(dir, base+".test"+ext),
		path.Join(dir, base+".spec"+ext),
		path.Join(dir, "__tests__", name),
	}
	for _, c := range candidates {
		info, err := fs.Stat(fsys, c)
		if err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}
