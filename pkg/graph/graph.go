package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Separator joins namespace segments and the class name in an identity.
const Separator = `\`

// ErrUnknownNode is returned by [Graph.Lookup] when no node exists for the
// requested identity.
var ErrUnknownNode = errors.New("unknown node")

// Node is one class, interface or trait identity.
//
// The zero value is not usable; nodes are created by [Graph.Ensure].
type Node struct {
	id   string
	path string

	dependents []string        // insertion order
	seen       map[string]bool // membership for dependents
}

// ID returns the fully-qualified identity. It may be degenerate, such as `\`
// or `App\`, when the declaring file was ambiguous.
func (n *Node) ID() string { return n.id }

// Basename returns the last separator-delimited segment of the identity.
func (n *Node) Basename() string { return Basename(n.id) }

// Path returns the file that declared this identity, or "" if the node only
// exists because something referenced it.
func (n *Node) Path() string { return n.path }

// HasPath reports whether a scanned file declared this identity.
func (n *Node) HasPath() bool { return n.path != "" }

// SetPath records the declaring file. Later calls overwrite earlier ones.
func (n *Node) SetPath(path string) { n.path = path }

// AddDependent records that the class with identity id depends on n.
// Adding the same identity twice has no effect.
func (n *Node) AddDependent(id string) {
	if n.seen[id] {
		return
	}
	n.seen[id] = true
	n.dependents = append(n.dependents, id)
}

// HasDependent reports whether id is recorded as a dependent of n.
func (n *Node) HasDependent(id string) bool { return n.seen[id] }

// DependentIDs returns the identities of n's dependents in insertion order.
// The returned slice is a copy.
func (n *Node) DependentIDs() []string { return slices.Clone(n.dependents) }

// DependentCount returns the number of distinct dependents.
func (n *Node) DependentCount() int { return len(n.dependents) }

// Graph maps fully-qualified identities to nodes.
//
// The zero value is not usable - use New.
type Graph struct {
	nodes map[string]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Ensure returns the node for id, creating it if absent. Any string is a
// valid identity, including the empty string.
func (g *Graph) Ensure(id string) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{id: id, seen: make(map[string]bool)}
	g.nodes[id] = n
	return n
}

// Link records that dependent depends on dependency, creating either node
// if needed.
func (g *Graph) Link(dependent, dependency string) {
	g.Ensure(dependent)
	g.Ensure(dependency).AddDependent(dependent)
}

// Node returns the node for id and true, or nil and false if absent.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Lookup returns the node for id, or an error wrapping ErrUnknownNode.
func (g *Graph) Lookup(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return n, nil
}

// Dependents resolves the dependents of id through the graph, in insertion
// order. Returns nil if id is unknown or has no dependents.
func (g *Graph) Dependents(id string) []*Node {
	n, ok := g.nodes[id]
	if !ok || len(n.dependents) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(n.dependents))
	for _, d := range n.dependents {
		out = append(out, g.nodes[d])
	}
	return out
}

// Nodes returns all nodes sorted by identity.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, id := range g.IDs() {
		out = append(out, g.nodes[id])
	}
	return out
}

// IDs returns all identities in sorted order.
func (g *Graph) IDs() []string { return slices.Sorted(maps.Keys(g.nodes)) }

// DeclaredIDs returns the sorted identities of nodes that have a source path.
func (g *Graph) DeclaredIDs() []string {
	var ids []string
	for _, id := range g.IDs() {
		if g.nodes[id].HasPath() {
			ids = append(ids, id)
		}
	}
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct dependent relations.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.dependents)
	}
	return count
}

// Basename returns the last separator-delimited segment of id.
func Basename(id string) string {
	if i := strings.LastIndex(id, Separator); i >= 0 {
		return id[i+len(Separator):]
	}
	return id
}
