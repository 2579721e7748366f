package cache

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/store"
)

func TestOverlap(t *testing.T) {
	ms, alpha, beta := twoNetworkStore(t)
	c := New(ms, Options{})
	ctx := context.Background()

	row, err := c.Overlap(ctx, alpha)
	if err != nil {
		t.Fatalf("Overlap: %v", err)
	}

	t.Run("score", func(t *testing.T) {
		// alpha {A,B,C} and beta {B,C,D} share 2 of min(3,3) nodes.
		want := 2.0 / 3.0
		if got := row[beta]; got != want {
			t.Errorf("overlap = %v, want %v", got, want)
		}
	})

	t.Run("never self paired", func(t *testing.T) {
		if _, ok := row[alpha]; ok {
			t.Error("row contains the network itself")
		}
	})

	t.Run("symmetric write", func(t *testing.T) {
		reverse, err := c.Overlap(ctx, beta)
		if err != nil {
			t.Fatalf("Overlap: %v", err)
		}
		if reverse[alpha] != row[beta] {
			t.Errorf("asymmetric scores: %v vs %v", reverse[alpha], row[beta])
		}
	})

	t.Run("returned map is a copy", func(t *testing.T) {
		row[beta] = -1
		again, err := c.Overlap(ctx, alpha)
		if err != nil {
			t.Fatalf("Overlap: %v", err)
		}
		if again[beta] < 0 {
			t.Error("mutating the returned row corrupted the cache")
		}
	})
}

func TestOverlap_Memoized(t *testing.T) {
	ms, alpha, beta := twoNetworkStore(t)
	c := New(ms, Options{})
	ctx := context.Background()

	if _, err := c.Overlap(ctx, alpha); err != nil {
		t.Fatalf("Overlap: %v", err)
	}

	// With every pair cached, a repeat must not touch the store again.
	ms.FailLoads[alpha] = stderrors.New("store offline")
	ms.FailLoads[beta] = stderrors.New("store offline")

	row, err := c.Overlap(ctx, alpha)
	if err != nil {
		t.Fatalf("Overlap after store failure: %v", err)
	}
	if _, ok := row[beta]; !ok {
		t.Error("memoized pair missing from the row")
	}
}

func TestOverlap_Range(t *testing.T) {
	a, b := protein("A"), protein("B")

	ms := store.NewMemStore()
	full := ms.Add(graphOf(t, "full", []bel.Node{a, b}, nil))
	sub := ms.Add(graphOf(t, "sub", []bel.Node{a}, nil))
	disjoint := ms.Add(graphOf(t, "disjoint", []bel.Node{protein("Z")}, nil))

	c := New(ms, Options{})
	row, err := c.Overlap(context.Background(), full)
	if err != nil {
		t.Fatalf("Overlap: %v", err)
	}

	// The smaller network is contained in the larger one.
	if row[sub] != 1 {
		t.Errorf("contained overlap = %v, want 1", row[sub])
	}
	if row[disjoint] != 0 {
		t.Errorf("disjoint overlap = %v, want 0", row[disjoint])
	}
}

func TestMinTanimoto(t *testing.T) {
	ids := func(ns ...bel.Node) map[bel.NodeID]bool {
		set := make(map[bel.NodeID]bool, len(ns))
		for _, n := range ns {
			set[n.ID()] = true
		}
		return set
	}
	a, b, c, d := protein("A"), protein("B"), protein("C"), protein("D")

	tests := []struct {
		name string
		x, y map[bel.NodeID]bool
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", ids(a), nil, 0},
		{"identical", ids(a, b), ids(a, b), 1},
		{"partial", ids(a, b, c), ids(b, c, d), 2.0 / 3.0},
		{"subset normalizes by the smaller set", ids(a, b, c, d), ids(a, b), 1},
		{"disjoint", ids(a, b), ids(c, d), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := minTanimoto(tt.x, tt.y); got != tt.want {
				t.Errorf("minTanimoto = %v, want %v", got, tt.want)
			}
			if rev := minTanimoto(tt.y, tt.x); rev != tt.want {
				t.Errorf("reversed minTanimoto = %v, want %v", rev, tt.want)
			}
		})
	}
}
