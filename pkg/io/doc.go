// Package io provides JSON import and export for class dependency graphs.
//
// # Overview
//
// Scanning a large tree takes time, and the full graph is useful to other
// tools. This package writes a built [graph.Graph] to a stable JSON document
// and reads it back, so the dependents of different targets can be rendered
// from one export without rescanning.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "App\\Child", "path": "src/Child.php"},
//	    {"id": "Lib\\Base", "dependents": ["App\\Child"]}
//	  ]
//	}
//
// Nodes are sorted by id. "path" is omitted for reference-only nodes and
// "dependents" is omitted when empty.
package io
