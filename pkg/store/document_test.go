package store

import (
	"testing"
	"time"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/errors"
)

func protein(name string) bel.Node {
	return bel.Node{Function: bel.FunctionProtein, Namespace: "HGNC", Name: name}
}

// testGraph builds a small graph with annotations and a citation.
func testGraph(t *testing.T) *bel.Graph {
	t.Helper()
	a, b, c := protein("A"), protein("B"), protein("C")
	g := bel.New("test network", "1.0")
	for _, n := range []bel.Node{a, b, c} {
		g.AddNode(n)
	}
	edges := []bel.Edge{
		{
			From:     a.ID(),
			To:       b.ID(),
			Relation: bel.RelationIncreases,
			Evidence: "observed",
			Citation: &bel.Citation{Type: "PubMed", Reference: "12345"},
			Annotations: bel.Annotations{
				"Tissue": {"brain": true, "liver": true},
			},
		},
		{
			From:     b.ID(),
			To:       c.ID(),
			Relation: bel.RelationAssociation,
			Weights:  map[string]float64{"belief": 0.7},
		},
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestDocument_RoundTrip(t *testing.T) {
	g := testGraph(t)
	doc := Encode(7, time.Unix(1000, 0).UTC(), g)

	if doc.ID != 7 || doc.Name != "test network" || doc.Version != "1.0" {
		t.Errorf("document metadata = %d %q %q", doc.ID, doc.Name, doc.Version)
	}

	back, err := doc.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if back.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount = %d, want %d", back.NodeCount(), g.NodeCount())
	}
	if back.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", back.EdgeCount(), g.EdgeCount())
	}

	// Content hashes survive the positional encoding.
	for _, eid := range g.EdgeIDs() {
		if _, ok := back.Edge(eid); !ok {
			t.Errorf("edge %v lost in round trip", eid)
		}
	}

	// Annotation sets survive.
	want, _ := g.Edge(g.EdgeIDs()[0])
	got, _ := back.Edge(g.EdgeIDs()[0])
	if len(want.Annotations) > 0 && !got.Annotations["Tissue"]["brain"] {
		t.Error("annotations lost in round trip")
	}
}

func TestDocument_Deterministic(t *testing.T) {
	g := testGraph(t)
	at := time.Unix(1000, 0).UTC()

	first := Encode(7, at, g)
	second := Encode(7, at, g)

	if len(first.Nodes) != len(second.Nodes) {
		t.Fatalf("node counts differ")
	}
	for i := range first.Nodes {
		if first.Nodes[i].ID() != second.Nodes[i].ID() {
			t.Errorf("node order differs at %d", i)
		}
	}
	for i := range first.Edges {
		a, b := first.Edges[i], second.Edges[i]
		if a.From != b.From || a.To != b.To || a.Relation != b.Relation {
			t.Errorf("edge order differs at %d", i)
		}
		for key, vals := range a.Annotations {
			other := b.Annotations[key]
			for j := range vals {
				if vals[j] != other[j] {
					t.Errorf("annotation value order differs for %q", key)
				}
			}
		}
	}
}

func TestDocument_Decode_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		edge EdgeDoc
	}{
		{"index past end", EdgeDoc{From: 0, To: 5, Relation: bel.RelationIncreases}},
		{"negative index", EdgeDoc{From: -1, To: 0, Relation: bel.RelationIncreases}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{
				ID:    1,
				Name:  "broken",
				Nodes: []bel.Node{protein("A"), protein("B")},
				Edges: []EdgeDoc{tt.edge},
			}
			_, err := doc.Decode()
			if !errors.Is(err, errors.CodeLoadFailed) {
				t.Errorf("Decode error = %v, want LOAD_FAILED", err)
			}
		})
	}
}
