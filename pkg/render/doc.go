// Package render groups the diagram writers for a scanned dependency graph.
//
// Both subpackages start from one target class and walk its dependents:
//
//   - [plantuml] writes the PlantUML class diagram, one line per visit
//   - [nodelink] collects the reachable subgraph once and writes Graphviz
//     DOT or SVG
//
// The PlantUML walk repeats a class for every path that reaches it and
// follows import cycles without limit unless asked to break them. The
// node-link renderer always terminates.
package render
