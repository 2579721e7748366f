// Package search provides keyword lookups over a graph's textual
// surface: node canonical names, edge annotation values, citation
// authors, and citation identifiers. Matching is case-insensitive
// substring containment, and results come back in the graph's
// deterministic id order.
package search

import (
	"strings"

	"github.com/biograph-io/biograph/pkg/bel"
)

// Result holds everything a keyword query matched in one graph.
type Result struct {
	Nodes []bel.Node `json:"nodes"`
	Edges []bel.Edge `json:"edges"`
}

// Graph runs the keyword query against both nodes and edges.
func Graph(g *bel.Graph, query string) Result {
	return Result{
		Nodes: Nodes(g, query),
		Edges: Edges(g, query),
	}
}

// Nodes returns the nodes whose canonical name contains the query.
func Nodes(g *bel.Graph, query string) []bel.Node {
	q := strings.ToLower(query)
	var out []bel.Node
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if strings.Contains(strings.ToLower(n.CanonicalName()), q) {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns the edges whose annotation values, citation authors, or
// citation reference contain the query.
func Edges(g *bel.Graph, query string) []bel.Edge {
	q := strings.ToLower(query)
	var out []bel.Edge
	for _, id := range g.EdgeIDs() {
		e, _ := g.Edge(id)
		if edgeMatches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func edgeMatches(e bel.Edge, q string) bool {
	for _, values := range e.Annotations {
		for v := range values {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
	}
	if e.Citation == nil {
		return false
	}
	if strings.Contains(strings.ToLower(e.Citation.Reference), q) {
		return true
	}
	for _, a := range e.Citation.Authors {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	return false
}
