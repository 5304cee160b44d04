// Package pkg provides the libraries behind phpgraph.
//
// # Overview
//
// phpgraph reads PHP source text, recovers each file's class identity and
// imports with regular expressions, and answers "what depends on this
// class?" The pkg directory is organized as:
//
//  1. [lexer] - Text normalization and pattern extraction
//  2. [graph] - Reverse dependency graph keyed by class identity
//  3. [scan] - File discovery and graph building
//  4. [render] - PlantUML and Graphviz output
//  5. [io] - JSON import and export
//  6. [cache], [errors], [observability], [buildinfo] - Support
//
// # Architecture
//
// The typical data flow:
//
//	Source directories
//	         ↓
//	    [scan.Discover] (walk, filter by extension and exclude patterns)
//	         ↓
//	    [lexer] (normalize, extract namespace, class, imports)
//	         ↓
//	    [graph] (one node per identity, dependents per node)
//	         ↓
//	    [render/plantuml] or [render/nodelink]
//	         ↓
//	    PlantUML / DOT / SVG / JSON output
//
// # Quick Start
//
//	files, _ := scan.Discover([]string{"src"}, scan.DiscoverOptions{})
//	g, _ := scan.NewBuilder(scan.Options{}).Build(ctx, files)
//	_ = plantuml.WriteDependents(os.Stdout, g, `App\Models\User`, plantuml.Options{})
package pkg
