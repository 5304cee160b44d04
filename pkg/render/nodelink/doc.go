// Package nodelink renders the dependents of a class as a Graphviz
// node-link diagram.
//
// # Overview
//
// Unlike the PlantUML renderer, which writes one statement per path, this
// package first collects the reachable dependents subgraph with a visited
// set. Each class appears exactly once and cyclic input always terminates.
// Nodes are keyed by full identity, so classes sharing a basename stay
// distinct even though their labels match.
//
// # Usage
//
//	sub, err := nodelink.Collect(g, `Lib\Base`)
//	dot := nodelink.ToDOT(sub, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - FullNames: label nodes with the full identity instead of the basename
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
