// Package enrich decorates freshly loaded graphs with derived metadata:
// memoized canonical names, normalized citation author lists, inferred
// central-dogma scaffolding, and PubMed citation details fetched from NCBI
// eutils through the KV cache.
//
// Every function here is best-effort by contract: enrichment failures are
// logged by the caller and never prevent a network from being cached.
package enrich

import (
	"strings"

	"github.com/biograph-io/biograph/pkg/bel"
)

// AddCanonicalNames memoizes the canonical display name on every node
// that does not have one yet. Names are derived deterministically from
// the node's typed attributes, so re-running is a no-op.
func AddCanonicalNames(g *bel.Graph) {
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if n.CName != "" {
			continue
		}
		n.CName = bel.ComputeCanonicalName(n)
		g.SetNode(n)
	}
}

// ParseAuthors normalizes citation author lists in place. Source
// documents frequently carry the whole author list as one pipe- or
// semicolon-delimited string; this splits such entries into individual
// trimmed names.
func ParseAuthors(g *bel.Graph) {
	for _, id := range g.EdgeIDs() {
		e, _ := g.Edge(id)
		if e.Citation == nil || len(e.Citation.Authors) == 0 {
			continue
		}
		parsed := make([]string, 0, len(e.Citation.Authors))
		for _, raw := range e.Citation.Authors {
			parsed = append(parsed, splitAuthors(raw)...)
		}
		if len(parsed) != len(e.Citation.Authors) {
			e.Citation.Authors = parsed
			g.SetEdge(e)
		}
	}
}

func splitAuthors(raw string) []string {
	sep := func(r rune) bool { return r == '|' || r == ';' }
	fields := strings.FieldsFunc(raw, sep)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// InferCentralDogma adds the implicit biological scaffold around gene
// products: for every protein a translatedTo edge from its RNA, and for
// every RNA or microRNA a transcribedTo edge from its gene. Scaffold
// nodes inherit namespace, name, and variant from the product. Existing
// nodes and edges win, so inference never overwrites loaded content.
func InferCentralDogma(g *bel.Graph) {
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		switch n.Function {
		case bel.FunctionProtein:
			rna := scaffold(n, bel.FunctionRNA)
			g.AddNode(rna)
			_, _ = g.AddEdge(bel.Edge{From: rna.ID(), To: id, Relation: bel.RelationTranslatedTo})
			addGene(g, rna)
		case bel.FunctionRNA, bel.FunctionMicroRNA:
			addGene(g, n)
		}
	}
}

func addGene(g *bel.Graph, product bel.Node) {
	gene := scaffold(product, bel.FunctionGene)
	g.AddNode(gene)
	_, _ = g.AddEdge(bel.Edge{From: gene.ID(), To: product.ID(), Relation: bel.RelationTranscribedTo})
}

func scaffold(n bel.Node, fn bel.Function) bel.Node {
	return bel.Node{Function: fn, Namespace: n.Namespace, Name: n.Name, Variant: n.Variant}
}
