package bel

// WeaklyConnectedComponents partitions the graph's nodes into connected
// components, ignoring edge direction. Components are discovered by
// breadth-first search seeded from nodes in ascending ID order, so the
// returned order is deterministic for a given node set.
func (g *Graph) WeaklyConnectedComponents() [][]NodeID {
	var components [][]NodeID
	visited := make(map[NodeID]bool, len(g.nodes))

	for _, start := range g.NodeIDs() {
		if visited[start] {
			continue
		}
		var component []NodeID
		queue := []NodeID{start}
		visited[start] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			component = append(component, id)
			for _, next := range g.Neighbors(id) {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// LargestComponent returns a fresh graph induced over the weakly connected
// component with the most nodes. Ties go to the component discovered
// first, which is stable because discovery order is deterministic.
// Returns an empty graph for an empty input.
func (g *Graph) LargestComponent() *Graph {
	var best []NodeID
	for _, component := range g.WeaklyConnectedComponents() {
		if len(component) > len(best) {
			best = component
		}
	}
	return g.InducedSubgraph(best)
}

// InducedSubgraph returns a fresh graph over the given nodes and the edges
// strictly between them. Node IDs absent from the graph are skipped.
func (g *Graph) InducedSubgraph(ids []NodeID) *Graph {
	out := New(g.Name, g.Version)
	keep := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		if n, ok := g.nodes[id]; ok {
			keep[id] = true
			out.AddNode(n)
		}
	}
	for _, eid := range g.EdgeIDs() {
		e := g.edges[eid]
		if keep[e.From] && keep[e.To] {
			_, _ = out.AddEdge(e.Copy())
		}
	}
	return out
}

// EdgeInducedSubgraph returns a fresh graph over the given edges and their
// endpoint nodes. Edge IDs absent from the graph are skipped.
func (g *Graph) EdgeInducedSubgraph(ids []EdgeID) *Graph {
	out := New(g.Name, g.Version)
	for _, eid := range ids {
		e, ok := g.edges[eid]
		if !ok {
			continue
		}
		out.AddNode(g.nodes[e.From])
		out.AddNode(g.nodes[e.To])
		_, _ = out.AddEdge(e.Copy())
	}
	return out
}
