package subgraph

import (
	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/errors"
)

// SeedMethod identifies one of the closed set of seeding strategies.
type SeedMethod string

const (
	SeedInduction       SeedMethod = "induction"
	SeedNeighbors       SeedMethod = "neighbors"
	SeedDoubleNeighbors SeedMethod = "dneighbors"
	SeedShortestPaths   SeedMethod = "shortest_paths"
	SeedUpstream        SeedMethod = "upstream"
	SeedDownstream      SeedMethod = "downstream"
	SeedPubMed          SeedMethod = "pubmed"
	SeedAuthors         SeedMethod = "authors"
	SeedAnnotation      SeedMethod = "annotation"
	SeedSample          SeedMethod = "sample"
	SeedNodeSearch      SeedMethod = "node_search"
	SeedCausal          SeedMethod = "causal"
)

// DefaultSampleEdges is the edge count used by the sample seed when none
// is given.
const DefaultSampleEdges = 250

// SeedData carries the per-method seed arguments. Only the fields
// relevant to the chosen method are read.
type SeedData struct {
	// Nodes seeds the node-anchored methods (induction, neighbors,
	// dneighbors, shortest_paths, upstream, downstream).
	Nodes []bel.NodeID

	// ExcludePathologies skips pathology nodes during dneighbors
	// expansion and strips them before the shortest_paths search.
	ExcludePathologies bool

	// WeightKey selects the edge-weight key for shortest_paths; empty
	// means unweighted.
	WeightKey string

	// References seeds the pubmed method.
	References []string

	// Authors seeds the authors method.
	Authors []string

	// Annotations and Mode seed the annotation method.
	Annotations map[string][]string
	Mode        AnnotationMode

	// EdgeCount and RandomSeed drive the sample method. A zero EdgeCount
	// falls back to DefaultSampleEdges.
	EdgeCount  int
	RandomSeed int64

	// Query seeds the node_search method.
	Query string
}

// Options describes one pipeline run: an optional seed, followed by
// node-neighborhood expansion sourced from the original graph, followed
// by node removal.
type Options struct {
	// Method selects the seeding strategy. Empty means no seeding: the
	// pipeline starts from a full copy of the input graph.
	Method SeedMethod

	// Data holds the arguments for Method.
	Data SeedData

	// ExpandNodes are added to the result together with their full
	// neighborhood from the original input graph. Unknown ids are
	// silently skipped.
	ExpandNodes []bel.NodeID

	// RemoveNodes are removed from the result along with their incident
	// edges. Absent ids are silently skipped.
	RemoveNodes []bel.NodeID
}

// Seed runs a single seeding strategy against the graph. The method set
// is closed: an unknown method is a configuration error
// (errors.CodeInvalidSeed), while a seed that matches nothing returns
// ErrNoResult.
func Seed(g *bel.Graph, method SeedMethod, data SeedData) (*bel.Graph, error) {
	switch method {
	case SeedInduction:
		return ByInduction(g, data.Nodes)
	case SeedNeighbors:
		return ByNeighborhood(g, data.Nodes)
	case SeedDoubleNeighbors:
		return BySecondNeighbors(g, data.Nodes, data.ExcludePathologies)
	case SeedShortestPaths:
		return ByAllShortestPaths(g, data.Nodes, data.WeightKey, data.ExcludePathologies)
	case SeedUpstream:
		return ByCausalUpstream(g, data.Nodes)
	case SeedDownstream:
		return ByCausalDownstream(g, data.Nodes)
	case SeedPubMed:
		return ByPubMed(g, data.References)
	case SeedAuthors:
		return ByAuthors(g, data.Authors)
	case SeedAnnotation:
		if len(data.Annotations) == 0 {
			return nil, errors.New(errors.CodeInvalidSeedData, "annotation seed requires a non-empty filter")
		}
		return ByAnnotations(g, data.Annotations, data.Mode)
	case SeedSample:
		count := data.EdgeCount
		if count == 0 {
			count = DefaultSampleEdges
		}
		if count < 0 {
			return nil, errors.New(errors.CodeInvalidSeedData, "sample seed requires a non-negative edge count, got %d", count)
		}
		return BySample(g, count, data.RandomSeed)
	case SeedNodeSearch:
		if data.Query == "" {
			return nil, errors.New(errors.CodeInvalidSeedData, "node_search seed requires a non-empty query")
		}
		return ByNodeSearch(g, data.Query)
	case SeedCausal:
		return ByCausal(g)
	default:
		return nil, errors.New(errors.CodeInvalidSeed, "unknown seed method %q", method)
	}
}

// Query runs the full pipeline: seed, then expand, then remove, in that
// order. Expansion always sources neighborhoods from the original input
// graph, so nodes pruned by the seed reappear when expansion pulls them
// back in. A no-result seed terminates the pipeline immediately with
// ErrNoResult; expansion and removal never run in that case. The input
// graph is never mutated.
func Query(g *bel.Graph, opts Options) (*bel.Graph, error) {
	var result *bel.Graph
	if opts.Method == "" {
		result = g.Copy()
	} else {
		seeded, err := Seed(g, opts.Method, opts.Data)
		if err != nil {
			return nil, err
		}
		result = seeded
	}

	for _, id := range opts.ExpandNodes {
		if !g.HasNode(id) {
			continue
		}
		expandNeighborhood(g, result, id)
	}

	for _, id := range opts.RemoveNodes {
		result.RemoveNode(id)
	}

	return result, nil
}

// expandNeighborhood copies the node and every edge incident to it in the
// source graph into dst, together with the opposite endpoints.
func expandNeighborhood(src, dst *bel.Graph, id bel.NodeID) {
	n, ok := src.Node(id)
	if !ok {
		return
	}
	dst.AddNode(n)
	for _, eid := range append(src.InEdges(id), src.OutEdges(id)...) {
		e, ok := src.Edge(eid)
		if !ok {
			continue
		}
		if from, ok := src.Node(e.From); ok {
			dst.AddNode(from)
		}
		if to, ok := src.Node(e.To); ok {
			dst.AddNode(to)
		}
		_, _ = dst.AddEdge(e.Copy()) // endpoints were just added
	}
}
