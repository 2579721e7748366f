package bel

import "testing"

func TestGraph_WeaklyConnectedComponents(t *testing.T) {
	a, b, c, d, e := protein("A"), protein("B"), protein("C"), protein("D"), protein("E")

	tests := []struct {
		name  string
		nodes []Node
		edges []Edge
		want  []int // component sizes, any order
	}{
		{
			name: "empty graph",
		},
		{
			name:  "isolated nodes",
			nodes: []Node{a, b, c},
			want:  []int{1, 1, 1},
		},
		{
			name:  "direction ignored",
			nodes: []Node{a, b, c},
			edges: []Edge{causal(a, b), causal(c, b)},
			want:  []int{3},
		},
		{
			name:  "two components",
			nodes: []Node{a, b, c, d, e},
			edges: []Edge{causal(a, b), causal(b, c), causal(d, e)},
			want:  []int{3, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.nodes, tt.edges)
			components := g.WeaklyConnectedComponents()
			if len(components) != len(tt.want) {
				t.Fatalf("got %d components, want %d", len(components), len(tt.want))
			}

			sizes := make(map[int]int)
			for _, comp := range components {
				sizes[len(comp)]++
			}
			for _, want := range tt.want {
				if sizes[want] == 0 {
					t.Errorf("missing component of size %d in %v", want, components)
				}
				sizes[want]--
			}
		})
	}
}

func TestGraph_LargestComponent(t *testing.T) {
	a, b, c, d, e := protein("A"), protein("B"), protein("C"), protein("D"), protein("E")
	g := buildGraph(t, []Node{a, b, c, d, e}, []Edge{
		causal(a, b),
		causal(b, c),
		causal(d, e),
	})

	largest := g.LargestComponent()
	if largest.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", largest.NodeCount())
	}
	if largest.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", largest.EdgeCount())
	}
	if largest.HasNode(d.ID()) {
		t.Error("largest component contains node from smaller component")
	}

	// Result is fresh: mutating it leaves the source intact.
	largest.RemoveNode(a.ID())
	if !g.HasNode(a.ID()) {
		t.Error("mutating the component graph changed the source")
	}
}

func TestGraph_LargestComponent_Empty(t *testing.T) {
	g := New("empty", "")
	largest := g.LargestComponent()
	if largest.NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", largest.NodeCount())
	}
}

func TestGraph_InducedSubgraph(t *testing.T) {
	a, b, c := protein("A"), protein("B"), protein("C")
	g := buildGraph(t, []Node{a, b, c}, []Edge{
		causal(a, b),
		causal(b, c),
		causal(a, c),
	})

	sub := g.InducedSubgraph([]NodeID{a.ID(), b.ID(), protein("X").ID()})

	if sub.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2 (unknown ids skipped)", sub.NodeCount())
	}
	if sub.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 (only edges strictly inside the set)", sub.EdgeCount())
	}
	if _, ok := sub.Edge(causal(a, b).ID()); !ok {
		t.Error("induced subgraph missing the a->b edge")
	}
}

func TestGraph_EdgeInducedSubgraph(t *testing.T) {
	a, b, c := protein("A"), protein("B"), protein("C")
	ab, bc := causal(a, b), causal(b, c)
	g := buildGraph(t, []Node{a, b, c}, []Edge{ab, bc})

	sub := g.EdgeInducedSubgraph([]EdgeID{ab.ID(), EdgeID(0xdead)})

	if sub.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 (unknown ids skipped)", sub.EdgeCount())
	}
	if sub.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2 (endpoints pulled in)", sub.NodeCount())
	}
	if sub.HasNode(c.ID()) {
		t.Error("edge-induced subgraph contains unrelated node")
	}
}
