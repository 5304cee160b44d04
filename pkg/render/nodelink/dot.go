package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/kzmshx/php-graph/pkg/errors"
	"github.com/kzmshx/php-graph/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// FullNames labels nodes with their fully-qualified identity.
	// When false, only the basename is shown.
	FullNames bool
}

// Edge is a dependent relation: From depends on To.
type Edge = graph.Edge

// Subgraph is the part of a graph reachable from Target along dependent
// links.
type Subgraph struct {
	Target string
	Nodes  []*graph.Node // discovery order, Target first
	Edges  []Edge
}

// Collect gathers target and every transitive dependent. Each node and edge
// is recorded once. Returns a CLASS_NOT_FOUND error if target is absent.
func Collect(g *graph.Graph, target string) (*Subgraph, error) {
	root, err := g.Lookup(target)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeClassNotFound, err, "class %s not found in scanned sources", target)
	}

	sub := &Subgraph{Target: target}
	seen := map[string]bool{}
	var walk func(n *graph.Node)
	walk = func(n *graph.Node) {
		seen[n.ID()] = true
		sub.Nodes = append(sub.Nodes, n)
		for _, dep := range g.Dependents(n.ID()) {
			sub.Edges = append(sub.Edges, Edge{From: dep.ID(), To: n.ID()})
			if !seen[dep.ID()] {
				walk(dep)
			}
		}
	}
	walk(root)
	return sub, nil
}

// Graph returns the subgraph as a standalone graph with the same paths and
// dependent links.
func (s *Subgraph) Graph() *graph.Graph {
	g := graph.New()
	for _, n := range s.Nodes {
		nd := g.Ensure(n.ID())
		if n.HasPath() {
			nd.SetPath(n.Path())
		}
	}
	for _, e := range s.Edges {
		g.Link(e.From, e.To)
	}
	return g
}

// ToDOT converts a subgraph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// The target is drawn with a bold outline; classes that were referenced but
// never declared in a scanned file are drawn dashed.
func ToDOT(sub *Subgraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range sub.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(fmtAttrs(n, sub.Target, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range sub.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, full bool) string {
	if full {
		return n.ID()
	}
	return n.Basename()
}

func fmtAttrs(n *graph.Node, target string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.FullNames))}
	if n.HasPath() {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Path()))
	} else {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	if n.ID() == target {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
