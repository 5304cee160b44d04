// Package graph provides the class dependency graph built from scanned PHP
// sources.
//
// # Overview
//
// A [Graph] maps each fully-qualified class identity to exactly one [Node].
// Edges are stored in the reverse direction: when class A depends on class B,
// B records A as one of its dependents. There is no separate edge type, and
// nodes refer to each other only by identity string, so ownership stays
// acyclic even when the dependency relation itself contains cycles.
//
// # Basic Usage
//
//	g := graph.New()
//	g.Ensure(`App\Controller`).SetPath("src/Controller.php")
//	g.Ensure(`App\Service`).AddDependent(`App\Controller`)
//
//	for _, d := range g.Dependents(`App\Service`) {
//	    fmt.Println(d.ID()) // App\Controller
//	}
//
// # Node Lifecycle
//
// Nodes are created the first time their identity is seen, either because a
// file declares the class or because another file imports it. A node created
// only by reference has no source path ([Node.HasPath] is false); this is the
// normal state for library classes outside the scanned roots. Nodes are never
// removed.
//
// # Ordering
//
// Dependents are kept in insertion order, which makes traversal output
// reproducible for a given file order. [Graph.Nodes] returns nodes sorted by
// identity.
//
// # Concurrency
//
// Graph is not safe for concurrent use. It is built by a single writer and
// read afterwards.
package graph
