// Package resolve maps logical command names to runnable command specs.
//
// Resolution is a chain of responsibility over a fixed-order list of
// strategies: the launcher itself (muxer), rooted paths, project tool
// packages, the launcher's base directory, project dependency packages,
// the project output directory, PATH, and published output folders. The
// first strategy to match wins; if none match the chain reports a single
// "command unknown" failure.
//
// Resolvers are purely functional over their arguments. The one permitted
// side effect is deps-file generation for portable tool artifacts, which
// is idempotent and concurrency-safe (see package depsfile).
package resolve
