// Package filter drops changed files that are not worth reviewing: package
// manager lockfiles, binary assets, and anything matching user-configured
// glob excludes.
package filter
