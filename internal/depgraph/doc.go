// Package depgraph resolves the local module references of a JavaScript or
// TypeScript source file into the set of project files it transitively
// depends on.
//
// Resolution is best-effort and purely syntactic: a [Scanner] extracts the
// reference strings of one file, a [Resolver] maps each local reference to a
// project file using a fixed extension and index-file strategy, and a [Graph]
// walks the result depth-first with an explicit stack so that deep or cyclic
// import chains terminate without growing the goroutine stack.
//
// [FindTest] locates the conventional test file for a source file.
//
// All paths are slash-separated and relative to the [io/fs.FS] the package
// was given, which is normally [os.DirFS] of the repository root.
package depgraph
