// Package scan discovers PHP source files and builds the class dependency
// graph from them.
//
// # Overview
//
// [Discover] walks one or more root directories and returns every file whose
// name ends in a configured extension. [Builder] then reads each file, runs
// it through [lexer.Normalize] and [lexer.Extract], and records the result in
// a [graph.Graph]:
//
//   - the file's declared identity gets a node whose path is the file
//   - every imported name gets a node, with the declaring class added as a
//     dependent
//
// # Degradation
//
// Nothing about a single file's content is an error. A file with no
// namespace, no declaration, or several declarations still produces a
// (degenerate) identity and still contributes its imports, so unrelated
// malformed files may collapse onto one node such as `\`. Two files declaring
// the same identity merge; the last one scanned provides the path.
//
// # Caching
//
// Extraction results can be cached by content hash through a [cache.Cache].
// Cache failures are logged at debug level and otherwise ignored.
//
// # Watching
//
// [Watch] follows the same roots with fsnotify and reports batches of
// changed source files, filtered by the same extension and exclude rules as
// [Discover]. Callers rebuild the graph from scratch on each batch.
package scan
