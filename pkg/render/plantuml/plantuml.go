package plantuml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kzmshx/php-graph/pkg/errors"
	"github.com/kzmshx/php-graph/pkg/graph"
)

// Diagram delimiters.
const (
	StartMarker = "@startuml"
	EndMarker   = "@enduml"
)

// Options configures dependents rendering.
type Options struct {
	// BreakCycles stops the walk from re-entering a node that is already on
	// the current path. Off by default.
	BreakCycles bool
}

// WriteDependents writes the diagram of target and all of its transitive
// dependents to w.
//
// If target is not a node of g, WriteDependents returns a CLASS_NOT_FOUND
// error wrapping [graph.ErrUnknownNode] and writes nothing. Write errors
// stop the walk and are returned.
func WriteDependents(w io.Writer, g *graph.Graph, target string, opts Options) error {
	root, err := g.Lookup(target)
	if err != nil {
		return errors.Wrap(errors.ErrCodeClassNotFound, err, "class %s not found in scanned sources", target)
	}

	dw := &diagramWriter{w: w, g: g, opts: opts}
	if opts.BreakCycles {
		dw.onPath = make(map[string]bool)
	}

	dw.line(StartMarker)
	dw.visit(root)
	dw.line(EndMarker)
	return dw.err
}

// Render is a convenience wrapper around [WriteDependents] that returns the
// diagram as a string.
func Render(g *graph.Graph, target string, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := WriteDependents(&buf, g, target, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type diagramWriter struct {
	w      io.Writer
	g      *graph.Graph
	opts   Options
	onPath map[string]bool // nil unless BreakCycles
	err    error
}

func (d *diagramWriter) visit(n *graph.Node) {
	d.line(classLine(n.Basename()))
	if d.err != nil {
		return
	}

	deps := d.g.Dependents(n.ID())
	if len(deps) == 0 {
		return
	}

	if d.onPath != nil {
		d.onPath[n.ID()] = true
		defer delete(d.onPath, n.ID())
	}
	for _, dep := range deps {
		d.line(edgeLine(dep.Basename(), n.Basename()))
		if d.err != nil {
			return
		}
		if d.onPath != nil && d.onPath[dep.ID()] {
			continue
		}
		d.visit(dep)
	}
}

func (d *diagramWriter) line(s string) {
	if d.err != nil {
		return
	}
	_, d.err = io.WriteString(d.w, s+"\n")
}

func classLine(label string) string {
	return fmt.Sprintf(`class "%s" {}`, label)
}

func edgeLine(from, to string) string {
	return fmt.Sprintf(`"%s" --> "%s"`, from, to)
}
