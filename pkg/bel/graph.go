package bel

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From
	// endpoint has not been added to the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To
	// endpoint has not been added to the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Graph is a directed multigraph of biological entities. Nodes and edges
// are indexed by their structural content hashes, so adding the same
// content twice is a no-op and merging graphs never duplicates.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	Name    string
	Version string

	nodes map[NodeID]Node
	edges map[EdgeID]Edge
	out   map[NodeID][]EdgeID
	in    map[NodeID][]EdgeID
}

// New creates an empty graph with the given name and version.
func New(name, version string) *Graph {
	return &Graph{
		Name:    name,
		Version: version,
		nodes:   make(map[NodeID]Node),
		edges:   make(map[EdgeID]Edge),
		out:     make(map[NodeID][]EdgeID),
		in:      make(map[NodeID][]EdgeID),
	}
}

// AddNode adds a node and returns its content-hash ID. Adding a node whose
// content is already present leaves the existing entry untouched, so
// derived decoration (canonical names) survives re-adding.
func (g *Graph) AddNode(n Node) NodeID {
	id := n.ID()
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = n
	}
	return id
}

// SetNode stores the node under its content-hash ID, overwriting derived
// decoration. Used by enrichment to memoize canonical names.
func (g *Graph) SetNode(n Node) NodeID {
	id := n.ID()
	g.nodes[id] = n
	return id
}

// SetEdge overwrites the stored edge under its content-hash ID, if
// present. Only fields excluded from the content hash (enriched citation
// metadata) can differ without changing the ID, so this is the hook
// enrichment uses to decorate edges in place.
func (g *Graph) SetEdge(e Edge) EdgeID {
	id := e.ID()
	if _, ok := g.edges[id]; ok {
		g.edges[id] = e
	}
	return id
}

// AddEdge adds an edge and returns its content-hash ID. Both endpoints
// must already be present. Adding an edge whose content is already present
// is a no-op.
func (g *Graph) AddEdge(e Edge) (EdgeID, error) {
	if _, ok := g.nodes[e.From]; !ok {
		return 0, ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return 0, ErrUnknownTargetNode
	}
	id := e.ID()
	if _, ok := g.edges[id]; ok {
		return id, nil
	}
	g.edges[id] = e
	g.out[e.From] = append(g.out[e.From], id)
	g.in[e.To] = append(g.in[e.To], id)
	return id, nil
}

// HasNode reports whether the node ID is present.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node for the given ID and whether it exists.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge for the given ID and whether it exists.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// NodeIDs returns all node IDs in ascending order. Sorting makes every
// traversal built on this accessor deterministic.
func (g *Graph) NodeIDs() []NodeID {
	ids := slices.Collect(maps.Keys(g.nodes))
	slices.Sort(ids)
	return ids
}

// EdgeIDs returns all edge IDs in ascending order.
func (g *Graph) EdgeIDs() []EdgeID {
	ids := slices.Collect(maps.Keys(g.edges))
	slices.Sort(ids)
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// OutEdges returns the IDs of edges leaving the node, in insertion order.
// The returned slice is a read-only view.
func (g *Graph) OutEdges(id NodeID) []EdgeID { return g.out[id] }

// InEdges returns the IDs of edges entering the node, in insertion order.
// The returned slice is a read-only view.
func (g *Graph) InEdges(id NodeID) []EdgeID { return g.in[id] }

// Degree returns the total (in+out) degree of the node. A self-loop
// counts twice, once per direction.
func (g *Graph) Degree(id NodeID) int { return len(g.in[id]) + len(g.out[id]) }

// Degrees returns the total degree of every node.
func (g *Graph) Degrees() map[NodeID]int {
	out := make(map[NodeID]int, len(g.nodes))
	for id := range g.nodes {
		out[id] = g.Degree(id)
	}
	return out
}

// Neighbors returns the distinct node IDs adjacent to the node in either
// direction, in ascending order.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	seen := make(map[NodeID]bool)
	for _, eid := range g.out[id] {
		seen[g.edges[eid].To] = true
	}
	for _, eid := range g.in[id] {
		seen[g.edges[eid].From] = true
	}
	delete(seen, id)
	ids := slices.Collect(maps.Keys(seen))
	slices.Sort(ids)
	return ids
}

// RemoveNode deletes the node and every edge incident to it. Removing an
// absent node is a no-op.
func (g *Graph) RemoveNode(id NodeID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for _, eid := range slices.Clone(g.out[id]) {
		g.removeEdge(eid)
	}
	for _, eid := range slices.Clone(g.in[id]) {
		g.removeEdge(eid)
	}
	delete(g.nodes, id)
	delete(g.out, id)
	delete(g.in, id)
}

func (g *Graph) removeEdge(id EdgeID) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	g.out[e.From] = slices.DeleteFunc(g.out[e.From], func(x EdgeID) bool { return x == id })
	g.in[e.To] = slices.DeleteFunc(g.in[e.To], func(x EdgeID) bool { return x == id })
	delete(g.edges, id)
}

// Copy returns a fresh graph with the same name, nodes, and edges.
// Edge payloads are deep-copied, so mutating the copy's annotation maps
// never leaks into the original.
func (g *Graph) Copy() *Graph {
	out := New(g.Name, g.Version)
	for _, n := range g.nodes {
		out.AddNode(n)
	}
	for _, e := range g.edges {
		// Endpoints were added in the node loop above.
		_, _ = out.AddEdge(e.Copy())
	}
	return out
}

// Merge adds every node and edge of other that is not already present,
// in place. Existing entries always win: nodes and edges already in the
// receiver are never overwritten. Merging preserves other unchanged.
func (g *Graph) Merge(other *Graph) {
	for id, n := range other.nodes {
		if _, ok := g.nodes[id]; !ok {
			g.nodes[id] = n
		}
	}
	for id, e := range other.edges {
		if _, ok := g.edges[id]; ok {
			continue
		}
		// Endpoints are guaranteed present: the node loop above ran first.
		g.edges[id] = e.Copy()
		g.out[e.From] = append(g.out[e.From], id)
		g.in[e.To] = append(g.in[e.To], id)
	}
}

// Union returns a fresh graph containing every node and edge of the given
// graphs, merged left to right with existing-wins semantics.
func Union(name string, graphs ...*Graph) *Graph {
	out := New(name, "")
	for _, g := range graphs {
		out.Merge(g)
	}
	return out
}

// NodeSet returns the set of node IDs, for overlap computations.
func (g *Graph) NodeSet() map[NodeID]bool {
	out := make(map[NodeID]bool, len(g.nodes))
	for id := range g.nodes {
		out[id] = true
	}
	return out
}
