package cache

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/errors"
	"github.com/biograph-io/biograph/pkg/store"
)

func protein(name string) bel.Node {
	return bel.Node{Function: bel.FunctionProtein, Namespace: "HGNC", Name: name}
}

func pathology(name string) bel.Node {
	return bel.Node{Function: bel.FunctionPathology, Namespace: "MESH", Name: name}
}

// graphOf builds a named graph from node names and (from, to) causal
// pairs.
func graphOf(t *testing.T, name string, nodes []bel.Node, pairs [][2]bel.Node) *bel.Graph {
	t.Helper()
	g := bel.New(name, "1.0")
	for _, n := range nodes {
		g.AddNode(n)
	}
	for _, p := range pairs {
		e := bel.Edge{From: p[0].ID(), To: p[1].ID(), Relation: bel.RelationIncreases}
		if _, err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

// twoNetworkStore seeds a MemStore with two overlapping networks and
// returns (store, alpha id, beta id).
func twoNetworkStore(t *testing.T) (*store.MemStore, int64, int64) {
	t.Helper()
	a, b, c, d := protein("A"), protein("B"), protein("C"), protein("D")

	ms := store.NewMemStore()
	alpha := ms.Add(graphOf(t, "alpha", []bel.Node{a, b, c}, [][2]bel.Node{{a, b}, {b, c}}))
	beta := ms.Add(graphOf(t, "beta", []bel.Node{b, c, d}, [][2]bel.Node{{b, c}, {c, d}}))
	return ms, alpha, beta
}

func TestCache_Get(t *testing.T) {
	ms, alpha, _ := twoNetworkStore(t)
	c := New(ms, Options{})
	ctx := context.Background()

	first, err := c.Get(ctx, alpha, false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", first.NodeCount())
	}

	t.Run("cached instance aliased", func(t *testing.T) {
		second, err := c.Get(ctx, alpha, false)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if second != first {
			t.Error("second Get returned a different instance")
		}
	})

	t.Run("force reload replaces the instance", func(t *testing.T) {
		reloaded, err := c.Get(ctx, alpha, true)
		if err != nil {
			t.Fatalf("Get force: %v", err)
		}
		if reloaded == first {
			t.Error("forced reload returned the old instance")
		}
		if reloaded.NodeCount() != first.NodeCount() {
			t.Errorf("reload changed content: %d vs %d nodes",
				reloaded.NodeCount(), first.NodeCount())
		}
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := c.Get(ctx, 999, false)
		if !errors.Is(err, errors.CodeLoadFailed) {
			t.Errorf("error = %v, want LOAD_FAILED wrapper", err)
		}
	})
}

func TestCache_Get_EnrichesOnLoad(t *testing.T) {
	ms, alpha, _ := twoNetworkStore(t)
	c := New(ms, Options{})

	g, err := c.Get(context.Background(), alpha, false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	n, _ := g.Node(protein("A").ID())
	if n.CName == "" {
		t.Error("canonical names not memoized on load")
	}
}

func TestCache_IndexStableAcrossReload(t *testing.T) {
	ms, alpha, _ := twoNetworkStore(t)
	c := New(ms, Options{})
	ctx := context.Background()

	if _, err := c.Get(ctx, alpha, false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	before, err := c.Index().NodeID(protein("A"))
	if err != nil {
		t.Fatalf("NodeID: %v", err)
	}

	c.Forget(alpha)
	if _, err := c.Get(ctx, alpha, false); err != nil {
		t.Fatalf("Get after forget: %v", err)
	}

	after, err := c.Index().NodeID(protein("A"))
	if err != nil {
		t.Fatalf("NodeID: %v", err)
	}
	if before != after {
		t.Errorf("integer id changed across forget+reload: %d vs %d", before, after)
	}
}

func TestCache_Universe(t *testing.T) {
	ms, alpha, beta := twoNetworkStore(t)
	c := New(ms, Options{})
	ctx := context.Background()

	if _, err := c.Get(ctx, alpha, false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := c.Get(ctx, beta, false); err != nil {
		t.Fatalf("Get: %v", err)
	}

	u := c.Universe()
	if u.NodeCount() != 4 {
		t.Errorf("universe NodeCount = %d, want 4 (shared nodes merged)", u.NodeCount())
	}
	if u.EdgeCount() != 3 {
		t.Errorf("universe EdgeCount = %d, want 3 (shared b->c merged)", u.EdgeCount())
	}

	t.Run("append-only across forget", func(t *testing.T) {
		c.Forget(beta)
		if c.Universe().NodeCount() != 4 {
			t.Error("forget retracted universe nodes")
		}
	})
}

func TestCache_Forget(t *testing.T) {
	ms, alpha, beta := twoNetworkStore(t)
	c := New(ms, Options{})
	ctx := context.Background()

	if _, err := c.Get(ctx, alpha, false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := c.Get(ctx, beta, false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := c.Overlap(ctx, alpha); err != nil {
		t.Fatalf("Overlap: %v", err)
	}
	if _, err := c.TopPathologies(ctx, alpha, 5); err != nil {
		t.Fatalf("TopPathologies: %v", err)
	}

	c.Forget(alpha)

	if c.IsCached(alpha) {
		t.Error("network still cached after Forget")
	}
	if len(c.NetworkIDs()) != 1 {
		t.Errorf("NetworkIDs = %v, want only beta", c.NetworkIDs())
	}
	if _, ok := c.overlaps[alpha]; ok {
		t.Error("similarity row survived Forget")
	}
	if _, ok := c.overlaps[beta][alpha]; ok {
		t.Error("reverse similarity entry survived Forget")
	}
	if _, ok := c.pathology.Get(pathologyKey{networkID: alpha, count: 5}); ok {
		t.Error("memoized ranking survived Forget")
	}

	// Forgetting an unknown id is a no-op.
	c.Forget(12345)
}

func TestCache_GetMany(t *testing.T) {
	ms, alpha, beta := twoNetworkStore(t)
	c := New(ms, Options{})
	ctx := context.Background()

	t.Run("single id aliases the cached instance", func(t *testing.T) {
		single, err := c.GetMany(ctx, []int64{alpha})
		if err != nil {
			t.Fatalf("GetMany: %v", err)
		}
		direct, _ := c.Get(ctx, alpha, false)
		if single != direct {
			t.Error("single-id GetMany did not alias the cached instance")
		}
	})

	t.Run("multiple ids build a fresh union", func(t *testing.T) {
		u, err := c.GetMany(ctx, []int64{alpha, beta})
		if err != nil {
			t.Fatalf("GetMany: %v", err)
		}
		if u.NodeCount() != 4 {
			t.Errorf("union NodeCount = %d, want 4", u.NodeCount())
		}

		u.RemoveNode(protein("A").ID())
		direct, _ := c.Get(ctx, alpha, false)
		if !direct.HasNode(protein("A").ID()) {
			t.Error("mutating the union changed a cached instance")
		}
	})

	t.Run("failure aborts", func(t *testing.T) {
		if _, err := c.GetMany(ctx, []int64{alpha, 999}); err == nil {
			t.Error("expected an error for an unknown id")
		}
	})
}

func TestCache_CacheAll(t *testing.T) {
	ms, alpha, beta := twoNetworkStore(t)
	broken := ms.Add(graphOf(t, "gamma", []bel.Node{protein("X")}, nil))
	ms.FailLoads[broken] = stderrors.New("corrupt document")

	c := New(ms, Options{})
	if err := c.CacheAll(context.Background(), false); err != nil {
		t.Fatalf("CacheAll: %v", err)
	}

	// The broken network is skipped; the rest still cache.
	if c.IsCached(broken) {
		t.Error("broken network reported as cached")
	}
	for _, id := range []int64{alpha, beta} {
		if !c.IsCached(id) {
			t.Errorf("network %d not cached", id)
		}
	}

	t.Run("already cached skipped without force", func(t *testing.T) {
		before, _ := c.Get(context.Background(), alpha, false)
		if err := c.CacheAll(context.Background(), false); err != nil {
			t.Fatalf("CacheAll: %v", err)
		}
		after, _ := c.Get(context.Background(), alpha, false)
		if before != after {
			t.Error("unforced CacheAll replaced a cached instance")
		}
	})
}

func TestCache_GetByName(t *testing.T) {
	ms, _, _ := twoNetworkStore(t)
	latest := ms.Add(graphOf(t, "alpha", []bel.Node{protein("Z")}, nil))

	c := New(ms, Options{})
	g, err := c.GetByName(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if !g.HasNode(protein("Z").ID()) {
		t.Error("GetByName did not resolve to the latest version")
	}
	if !c.IsCached(latest) {
		t.Error("resolved network not cached")
	}

	if _, err := c.GetByName(context.Background(), "nope"); !errors.Is(err, errors.CodeNetworkNotFound) {
		t.Errorf("error = %v, want NOT_FOUND_NETWORK", err)
	}
}
