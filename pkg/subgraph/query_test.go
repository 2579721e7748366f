package subgraph

import (
	stderrors "errors"
	"testing"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/errors"
)

func TestSeed_UnknownMethod(t *testing.T) {
	g := testGraph(t)

	_, err := Seed(g, "teleport", SeedData{})
	if !errors.Is(err, errors.CodeInvalidSeed) {
		t.Errorf("error = %v, want INVALID_SEED", err)
	}
}

func TestSeed_InvalidData(t *testing.T) {
	g := testGraph(t)

	tests := []struct {
		name   string
		method SeedMethod
		data   SeedData
	}{
		{"empty annotation filter", SeedAnnotation, SeedData{}},
		{"negative sample count", SeedSample, SeedData{EdgeCount: -1}},
		{"empty search query", SeedNodeSearch, SeedData{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Seed(g, tt.method, tt.data)
			if !errors.Is(err, errors.CodeInvalidSeedData) {
				t.Errorf("error = %v, want INVALID_SEED_DATA", err)
			}
		})
	}
}

func TestSeed_SampleDefaultCount(t *testing.T) {
	g := testGraph(t)

	// The default far exceeds the fixture, so the sample clamps to
	// the full edge set.
	got, err := Seed(g, SeedSample, SeedData{RandomSeed: 1})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
}

func TestQuery_NoSeedCopies(t *testing.T) {
	g := testGraph(t)

	result, err := Query(g, Options{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if result.NodeCount() != g.NodeCount() || result.EdgeCount() != g.EdgeCount() {
		t.Fatalf("copy has %d/%d, input has %d/%d",
			result.NodeCount(), result.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}

	result.RemoveNode(nodeB.ID())
	if !g.HasNode(nodeB.ID()) {
		t.Error("mutating the result changed the input graph")
	}
}

func TestQuery_ExpandFromOriginal(t *testing.T) {
	g := testGraph(t)

	result, err := Query(g, Options{
		Method:      SeedInduction,
		Data:        SeedData{Nodes: ids(nodeA, nodeB)},
		ExpandNodes: ids(nodeC),
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	// Induction over {A,B} drops B->C; expanding C pulls it back
	// from the original, along with C's association to D.
	wantNodes(t, result, nodeA, nodeB, nodeC, nodeD)
	if result.EdgeCount() != 3 { // A->B, B->C, C->D
		t.Errorf("EdgeCount = %d, want 3", result.EdgeCount())
	}
}

func TestQuery_ExpandUnknownSkipped(t *testing.T) {
	g := testGraph(t)
	unknown := bel.Node{Function: bel.FunctionProtein, Namespace: "HGNC", Name: "NOPE"}

	result, err := Query(g, Options{
		Method:      SeedInduction,
		Data:        SeedData{Nodes: ids(nodeA)},
		ExpandNodes: ids(unknown),
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	wantNodes(t, result, nodeA)
}

func TestQuery_Remove(t *testing.T) {
	g := testGraph(t)
	unknown := bel.Node{Function: bel.FunctionProtein, Namespace: "HGNC", Name: "NOPE"}

	result, err := Query(g, Options{
		Method: SeedNeighbors,
		Data:   SeedData{Nodes: ids(nodeB)},
		// Absent ids are ignored.
		RemoveNodes: ids(nodeP, unknown),
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	wantNodes(t, result, nodeA, nodeB, nodeC)
	if result.EdgeCount() != 2 { // A->B, B->C; B->P went with P
		t.Errorf("EdgeCount = %d, want 2", result.EdgeCount())
	}
}

func TestQuery_NoResultShortCircuits(t *testing.T) {
	g := testGraph(t)
	unknown := bel.Node{Function: bel.FunctionProtein, Namespace: "HGNC", Name: "NOPE"}

	_, err := Query(g, Options{
		Method:      SeedInduction,
		Data:        SeedData{Nodes: ids(unknown)},
		ExpandNodes: ids(nodeA),
	})
	if !stderrors.Is(err, ErrNoResult) {
		t.Errorf("error = %v, want ErrNoResult", err)
	}
}

func TestQuery_InputNeverMutated(t *testing.T) {
	g := testGraph(t)
	nodes, edges := g.NodeCount(), g.EdgeCount()

	_, err := Query(g, Options{
		Method:      SeedNeighbors,
		Data:        SeedData{Nodes: ids(nodeB)},
		ExpandNodes: ids(nodeD),
		RemoveNodes: ids(nodeA, nodeP),
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if g.NodeCount() != nodes || g.EdgeCount() != edges {
		t.Errorf("input mutated: %d/%d nodes, %d/%d edges",
			g.NodeCount(), nodes, g.EdgeCount(), edges)
	}
}
