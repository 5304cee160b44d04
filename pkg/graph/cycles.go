package graph

// Edge is a dependent link: From imports To.
type Edge struct {
	From string
	To   string
}

// BackEdges returns the dependent links that close a cycle among the nodes
// reachable from id, in depth-first discovery order. A nil result means the
// dependents walk from id terminates. Unknown ids have no back edges.
func (g *Graph) BackEdges(id string) []Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var back []Edge

	var dfs func(node string)
	dfs = func(node string) {
		n, ok := g.nodes[node]
		if !ok {
			return
		}
		color[node] = gray
		for _, dep := range n.dependents {
			switch color[dep] {
			case white:
				dfs(dep)
			case gray:
				back = append(back, Edge{From: dep, To: node})
			}
		}
		color[node] = black
	}
	dfs(id)

	return back
}
