// Package subgraph derives new graphs from a source graph: a set of
// seeding strategies, a neighborhood-expansion step sourced from the
// original graph, and a removal step, composed by [Query] in a fixed
// order.
//
// Strategies never mutate their source and always return freshly
// constructed graphs, so callers may mutate results freely. A strategy
// that legitimately matches nothing returns [ErrNoResult], which is
// distinct from both an error and an empty-but-valid graph.
package subgraph

import (
	stderrors "errors"
	"strings"

	"github.com/biograph-io/biograph/pkg/bel"
)

// ErrNoResult signals that a seed or filter legitimately matched nothing.
// It is not a failure: callers distinguish it from configuration errors
// with errors.Is.
var ErrNoResult = stderrors.New("query returned no result")

// pubmedCitationType is the citation type matched by the pubmed seed.
const pubmedCitationType = "PubMed"

// ByInduction returns the subgraph induced over exactly the given nodes:
// the nodes themselves plus edges strictly between them. Returns
// ErrNoResult when none of the requested nodes exist in the source.
func ByInduction(g *bel.Graph, nodes []bel.NodeID) (*bel.Graph, error) {
	if !anyPresent(g, nodes) {
		return nil, ErrNoResult
	}
	return g.InducedSubgraph(nodes), nil
}

// ByNeighborhood returns the union of all in- and out-edges incident to
// the given nodes, plus their endpoint nodes. Returns ErrNoResult when
// none of the requested nodes exist in the source.
func ByNeighborhood(g *bel.Graph, nodes []bel.NodeID) (*bel.Graph, error) {
	if !anyPresent(g, nodes) {
		return nil, ErrNoResult
	}
	var edges []bel.EdgeID
	for _, id := range nodes {
		edges = append(edges, g.InEdges(id)...)
		edges = append(edges, g.OutEdges(id)...)
	}
	result := g.EdgeInducedSubgraph(edges)
	// Isolated seed nodes still belong in the neighborhood.
	for _, id := range nodes {
		if n, ok := g.Node(id); ok {
			result.AddNode(n)
		}
	}
	return result, nil
}

// BySecondNeighbors seeds a neighborhood and then runs one more expansion
// pass over the result's node set, sourcing edges from the original
// graph. When excludePathologies is set, pathology-typed nodes in the
// intermediate result are not expanded around. Returns ErrNoResult when
// none of the requested nodes exist in the source.
func BySecondNeighbors(g *bel.Graph, nodes []bel.NodeID, excludePathologies bool) (*bel.Graph, error) {
	result, err := ByNeighborhood(g, nodes)
	if err != nil {
		return nil, err
	}
	for _, id := range result.NodeIDs() {
		if excludePathologies {
			if n, ok := result.Node(id); ok && n.IsPathology() {
				continue
			}
		}
		expandNeighborhood(g, result, id)
	}
	return result, nil
}

// ByAllShortestPaths induces over the union of all nodes appearing on any
// shortest path between pairs of the requested nodes. When weightKey is
// non-empty, paths are weighted by that edge-weight key. When
// stripPathologies is set, pathology nodes are removed from a working
// copy before the search (the induction still happens on the original).
// Returns ErrNoResult when no requested node is present or no path exists
// between any pair.
func ByAllShortestPaths(g *bel.Graph, nodes []bel.NodeID, weightKey string, stripPathologies bool) (*bel.Graph, error) {
	working := g
	if stripPathologies {
		working = g.Copy()
		for _, id := range working.NodeIDs() {
			if n, ok := working.Node(id); ok && n.IsPathology() {
				working.RemoveNode(id)
			}
		}
	}

	if !anyPresent(working, nodes) {
		return nil, ErrNoResult
	}

	onPaths := working.NodesInAllShortestPaths(nodes, weightKey)
	if len(onPaths) == 0 {
		return nil, ErrNoResult
	}

	induced := make([]bel.NodeID, 0, len(onPaths))
	for id := range onPaths {
		induced = append(induced, id)
	}
	return g.InducedSubgraph(induced), nil
}

// ByCausalUpstream returns the 2-level causal predecessor closure of the
// seed nodes: the causal in-edges of the seeds, expanded one further
// causal hop upstream. Only causal edges are kept. Returns ErrNoResult
// when none of the seed nodes exist in the source.
func ByCausalUpstream(g *bel.Graph, nodes []bel.NodeID) (*bel.Graph, error) {
	return causalClosure(g, nodes, g.InEdges)
}

// ByCausalDownstream returns the 2-level causal successor closure of the
// seed nodes, the downstream mirror of [ByCausalUpstream].
func ByCausalDownstream(g *bel.Graph, nodes []bel.NodeID) (*bel.Graph, error) {
	return causalClosure(g, nodes, g.OutEdges)
}

// causalClosure seeds on the causal edges adjacent to the given nodes in
// one direction, then expands one further causal hop over the result's
// node set.
func causalClosure(g *bel.Graph, nodes []bel.NodeID, adjacent func(bel.NodeID) []bel.EdgeID) (*bel.Graph, error) {
	if !anyPresent(g, nodes) {
		return nil, ErrNoResult
	}
	result := g.EdgeInducedSubgraph(causalEdges(g, nodes, adjacent))
	result.Merge(g.EdgeInducedSubgraph(causalEdges(g, result.NodeIDs(), adjacent)))
	return result, nil
}

func causalEdges(g *bel.Graph, nodes []bel.NodeID, adjacent func(bel.NodeID) []bel.EdgeID) []bel.EdgeID {
	var out []bel.EdgeID
	for _, id := range nodes {
		for _, eid := range adjacent(id) {
			if e, ok := g.Edge(eid); ok && e.IsCausal() {
				out = append(out, eid)
			}
		}
	}
	return out
}

// ByPubMed induces over edges whose PubMed citation reference matches any
// of the given identifiers. Returns ErrNoResult when no edge matches.
func ByPubMed(g *bel.Graph, references []string) (*bel.Graph, error) {
	want := make(map[string]bool, len(references))
	for _, r := range references {
		want[r] = true
	}
	return byEdgeFilter(g, func(e bel.Edge) bool {
		return e.Citation != nil &&
			e.Citation.Type == pubmedCitationType &&
			want[e.Citation.Reference]
	})
}

// ByAuthors induces over edges whose citation author list intersects the
// given names, compared case-insensitively. Returns ErrNoResult when no
// edge matches.
func ByAuthors(g *bel.Graph, authors []string) (*bel.Graph, error) {
	want := make(map[string]bool, len(authors))
	for _, a := range authors {
		want[strings.ToLower(a)] = true
	}
	return byEdgeFilter(g, func(e bel.Edge) bool {
		if e.Citation == nil {
			return false
		}
		for _, a := range e.Citation.Authors {
			if want[strings.ToLower(a)] {
				return true
			}
		}
		return false
	})
}

// AnnotationMode selects how an annotation filter combines its entries.
type AnnotationMode int

const (
	// MatchAny keeps an edge when at least one filter key is present with
	// a non-empty value intersection.
	MatchAny AnnotationMode = iota
	// MatchAll keeps an edge only when every filter key is present and
	// matches.
	MatchAll
)

// ByAnnotations induces over edges whose context-annotation map matches
// the filter. Filter values are sets, matched by intersection with the
// edge's value sets. Returns ErrNoResult when no edge matches.
func ByAnnotations(g *bel.Graph, filter map[string][]string, mode AnnotationMode) (*bel.Graph, error) {
	return byEdgeFilter(g, func(e bel.Edge) bool {
		return annotationsMatch(e.Annotations, filter, mode)
	})
}

func annotationsMatch(ann bel.Annotations, filter map[string][]string, mode AnnotationMode) bool {
	for key, wantVals := range filter {
		haveVals, ok := ann[key]
		matched := false
		if ok {
			for _, v := range wantVals {
				if haveVals[v] {
					matched = true
					break
				}
			}
		}
		switch mode {
		case MatchAny:
			if matched {
				return true
			}
		case MatchAll:
			if !matched {
				return false
			}
		}
	}
	return mode == MatchAll
}

// BySample returns a reproducible random subsample of count edges drawn
// with the given seed. Requests exceeding the available edges are clamped
// to the full edge set; connectivity of the result is not guaranteed.
func BySample(g *bel.Graph, count int, seed int64) (*bel.Graph, error) {
	return g.SampleEdges(count, seed), nil
}

// ByNodeSearch induces over nodes whose canonical name contains the query
// substring, case-insensitively. Returns ErrNoResult when nothing
// matches.
func ByNodeSearch(g *bel.Graph, query string) (*bel.Graph, error) {
	q := strings.ToLower(query)
	var matched []bel.NodeID
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if strings.Contains(strings.ToLower(n.CanonicalName()), q) {
			matched = append(matched, id)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoResult
	}
	return g.InducedSubgraph(matched), nil
}

// ByCausal induces over every causal-typed edge in the source, ignoring
// seed nodes. An input without causal edges yields an empty graph, not
// ErrNoResult.
func ByCausal(g *bel.Graph) (*bel.Graph, error) {
	var edges []bel.EdgeID
	for _, eid := range g.EdgeIDs() {
		if e, ok := g.Edge(eid); ok && e.IsCausal() {
			edges = append(edges, eid)
		}
	}
	return g.EdgeInducedSubgraph(edges), nil
}

// LargestComponent returns the weakly connected component with the most
// nodes, as a fresh graph. Ties go to the first component in the graph's
// deterministic discovery order.
func LargestComponent(g *bel.Graph) *bel.Graph {
	return g.LargestComponent()
}

// byEdgeFilter induces over edges passing the predicate, returning
// ErrNoResult when none do.
func byEdgeFilter(g *bel.Graph, keep func(bel.Edge) bool) (*bel.Graph, error) {
	var edges []bel.EdgeID
	for _, eid := range g.EdgeIDs() {
		if e, ok := g.Edge(eid); ok && keep(e) {
			edges = append(edges, eid)
		}
	}
	if len(edges) == 0 {
		return nil, ErrNoResult
	}
	return g.EdgeInducedSubgraph(edges), nil
}

// anyPresent reports whether at least one of the ids exists in the graph.
func anyPresent(g *bel.Graph, nodes []bel.NodeID) bool {
	for _, id := range nodes {
		if g.HasNode(id) {
			return true
		}
	}
	return false
}
