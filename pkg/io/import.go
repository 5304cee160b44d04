package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kzmshx/php-graph/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with a "nodes" array:
//
//	{
//	  "nodes": [
//	    {"id": "Lib\\Base", "path": "src/Base.php", "dependents": ["App\\Child"]},
//	    {"id": "App\\Child"}
//	  ]
//	}
//
// Each node must have an "id" field; "path" and "dependents" are optional.
// A dependent that has no entry of its own is created as a reference-only
// node. Repeated ids merge the same way the scanner merges them.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := graph.New()
	for i, n := range data.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node %d: missing id", i)
		}
		nd := g.Ensure(n.ID)
		if n.Path != "" {
			nd.SetPath(n.Path)
		}
		for _, d := range n.Dependents {
			g.Link(d, n.ID)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
