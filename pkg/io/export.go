package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kzmshx/php-graph/pkg/graph"
)

type document struct {
	Nodes []node `json:"nodes"`
}

type node struct {
	ID         string   `json:"id"`
	Path       string   `json:"path,omitempty"`
	Dependents []string `json:"dependents,omitempty"`
}

// WriteJSON encodes a graph as JSON and writes it to w.
// Nodes are sorted by identity; dependents keep insertion order.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{Nodes: make([]node, 0, g.NodeCount())}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, node{
			ID:         n.ID(),
			Path:       n.Path(),
			Dependents: n.DependentIDs(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
