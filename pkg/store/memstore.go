package store

import (
	"context"
	"slices"
	"time"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/errors"
)

// MemStore is an in-memory Store for tests and the CLI's fixture mode.
// Graphs are returned as fresh copies so that cache-layer mutation never
// bleeds back into the "stored" graph.
//
// MemStore is not safe for concurrent use without external
// synchronization.
type MemStore struct {
	graphs map[int64]*bel.Graph
	infos  map[int64]NetworkInfo
	nextID int64

	// FailLoads maps network ids to errors injected into LoadGraph,
	// for exercising per-network load-failure isolation in tests.
	FailLoads map[int64]error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		graphs:    make(map[int64]*bel.Graph),
		infos:     make(map[int64]NetworkInfo),
		FailLoads: make(map[int64]error),
	}
}

// Add stores a graph and returns its assigned network id. CreatedAt is
// synthesized so that insertion order matches recency order.
func (s *MemStore) Add(g *bel.Graph) int64 {
	s.nextID++
	id := s.nextID
	s.graphs[id] = g.Copy()
	s.infos[id] = NetworkInfo{
		ID:        id,
		Name:      g.Name,
		Version:   g.Version,
		CreatedAt: time.Unix(id, 0),
	}
	return id
}

// LoadGraph returns a copy of the stored graph.
func (s *MemStore) LoadGraph(_ context.Context, id int64) (*bel.Graph, error) {
	if err, ok := s.FailLoads[id]; ok {
		return nil, errors.Wrap(errors.CodeLoadFailed, err, "load network %d", id)
	}
	g, ok := s.graphs[id]
	if !ok {
		return nil, errors.New(errors.CodeNetworkNotFound, "network %d does not exist", id)
	}
	return g.Copy(), nil
}

// ListRecentNetworks returns the most recent network per name, newest
// first.
func (s *MemStore) ListRecentNetworks(_ context.Context) ([]NetworkInfo, error) {
	latest := make(map[string]NetworkInfo)
	for _, info := range s.infos {
		if cur, ok := latest[info.Name]; !ok || info.CreatedAt.After(cur.CreatedAt) {
			latest[info.Name] = info
		}
	}
	out := make([]NetworkInfo, 0, len(latest))
	for _, info := range latest {
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b NetworkInfo) int {
		switch {
		case a.CreatedAt.After(b.CreatedAt):
			return -1
		case b.CreatedAt.After(a.CreatedAt):
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

// NetworkByName resolves a name to the id of its most recent version.
func (s *MemStore) NetworkByName(_ context.Context, name string) (int64, error) {
	var best NetworkInfo
	found := false
	for _, info := range s.infos {
		if info.Name != name {
			continue
		}
		if !found || info.CreatedAt.After(best.CreatedAt) {
			best = info
			found = true
		}
	}
	if !found {
		return 0, errors.New(errors.CodeNetworkNotFound, "no network named %q", name)
	}
	return best.ID, nil
}

// Ensure MemStore implements Store.
var _ Store = (*MemStore)(nil)
