// Package cache implements the in-memory network cache at the center of
// biograph: lazy loading from the network store, stable identifier
// assignment, a merged universe graph, per-network degree indexes, a
// pairwise similarity cache, and memoized rankings.
//
// # Lifecycle
//
// A network's graph instance is created on first access (or by CacheAll),
// refreshed only via forced reload, and destroyed only by Forget. There
// is no background eviction.
//
// # Concurrency
//
// All state here is process-wide and mutable with no internal locking.
// Concurrent access from multiple goroutines is NOT safe without an
// external mutual-exclusion or single-writer discipline. This is a hard
// constraint of the design, not an oversight: ad hoc internal locks would
// change observable ordering of cache fills and invalidations.
package cache

import (
	"context"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/enrich"
	"github.com/biograph-io/biograph/pkg/errors"
	"github.com/biograph-io/biograph/pkg/index"
	"github.com/biograph-io/biograph/pkg/store"
)

// pathologyCacheSize bounds the memoized pathology rankings to the 32
// most recently used (network id, count) keys.
const pathologyCacheSize = 32

// universeName names the merged union graph.
const universeName = "universe"

// Options configures optional cache behavior.
type Options struct {
	// Logger receives cache activity at debug/info level. Defaults to a
	// discarding logger.
	Logger *log.Logger

	// Enricher fills in citation metadata during loading. Nil disables
	// citation enrichment. Enrichment failures are logged and swallowed;
	// the network is still cached.
	Enricher enrich.CitationEnricher

	// InferDogma adds central-dogma scaffold edges during loading.
	InferDogma bool
}

// Cache owns the per-network graph instances and every index derived
// from them. Not safe for concurrent use; see the package comment.
type Cache struct {
	store    store.Store
	logger   *log.Logger
	enricher enrich.CitationEnricher
	infer    bool

	idx       *index.Index
	networks  map[int64]*bel.Graph
	degrees   map[int64]map[bel.NodeID]int
	overlaps  map[int64]map[int64]float64
	universe  *bel.Graph
	pathology *lru.Cache[pathologyKey, []Ranked]
}

// pathologyKey keys the bounded ranking cache by immutable identifiers
// only. Keying by graph reference would go stale across forced reloads.
type pathologyKey struct {
	networkID int64
	count     int
}

// New creates an empty cache over the given store.
func New(st store.Store, opts Options) *Cache {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	// Size is a positive constant, so construction cannot fail.
	pathology, _ := lru.New[pathologyKey, []Ranked](pathologyCacheSize)
	return &Cache{
		store:     st,
		logger:    opts.Logger,
		enricher:  opts.Enricher,
		infer:     opts.InferDogma,
		idx:       index.New(),
		networks:  make(map[int64]*bel.Graph),
		degrees:   make(map[int64]map[bel.NodeID]int),
		overlaps:  make(map[int64]map[int64]float64),
		universe:  bel.New(universeName, ""),
		pathology: pathology,
	}
}

// Get returns the cached graph for the network id, loading it from the
// store on a miss. Without force, a cached instance is returned unchanged
// (no re-indexing, no re-merge); with force, the store is consulted again
// and every derived index is rebuilt for this network.
//
// The returned graph is the cached instance itself, not a copy; callers
// that intend to mutate must Copy first.
func (c *Cache) Get(ctx context.Context, id int64, force bool) (*bel.Graph, error) {
	if g, ok := c.networks[id]; ok && !force {
		c.logger.Debug("network already cached", "network", id)
		return g, nil
	}

	g, err := c.store.LoadGraph(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeLoadFailed, err, "network %d", id)
	}

	c.logger.Info("caching network", "network", id, "name", g.Name, "version", g.Version)

	c.enrichGraph(ctx, g, id)

	c.idx.AssignGraph(g)
	c.degrees[id] = g.Degrees()
	c.universe.Merge(g)
	c.networks[id] = g
	c.purgePathology(id)

	c.logger.Info("cached network", "network", id,
		"nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

// enrichGraph runs the best-effort load-time enrichment pipeline.
// Failures here never prevent caching.
func (c *Cache) enrichGraph(ctx context.Context, g *bel.Graph, id int64) {
	enrich.ParseAuthors(g)
	if c.infer {
		enrich.InferCentralDogma(g)
	}
	enrich.AddCanonicalNames(g)

	if c.enricher != nil {
		if err := c.enricher.EnrichCitations(ctx, g); err != nil {
			c.logger.Warn("citation enrichment failed", "network", id, "err", err)
		}
	}
}

// GetByName resolves a network name to its most recent version and
// returns that graph.
func (c *Cache) GetByName(ctx context.Context, name string) (*bel.Graph, error) {
	id, err := c.store.NetworkByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, id, false)
}

// GetMany returns the union of the given networks. For a single id the
// cached instance is returned directly (aliased, no copy); for multiple
// ids the result is a fresh graph that callers may freely mutate.
func (c *Cache) GetMany(ctx context.Context, ids []int64) (*bel.Graph, error) {
	if len(ids) == 1 {
		return c.Get(ctx, ids[0], false)
	}
	graphs := make([]*bel.Graph, 0, len(ids))
	for _, id := range ids {
		g, err := c.Get(ctx, id, false)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
	return bel.Union("union", graphs...), nil
}

// CacheAll loads every network in the store's most-recent-per-name
// listing that is not already cached (or all of them, when forced), in
// descending recency order. Load failures are logged and skipped; the
// batch continues.
func (c *Cache) CacheAll(ctx context.Context, force bool) error {
	infos, err := c.store.ListRecentNetworks(ctx)
	if err != nil {
		return err
	}
	for _, info := range infos {
		if _, ok := c.networks[info.ID]; ok && !force {
			continue
		}
		if _, err := c.Get(ctx, info.ID, force); err != nil {
			c.logger.Warn("skipping network", "network", info.ID, "name", info.Name, "err", err)
		}
	}
	c.logger.Info("cache warm", "networks", len(c.networks),
		"universe_nodes", c.universe.NodeCount(), "universe_edges", c.universe.EdgeCount())
	return nil
}

// Forget removes the network from the per-id cache, the degree index,
// both directions of every similarity entry referencing it, and the
// memoized rankings. The removals happen in one critical section with no
// intervening calls out, so an observer under the external single-writer
// discipline sees either the full pre-forget or full post-forget state.
//
// The network's contribution to the universe graph is intentionally NOT
// retracted: the universe is append-only.
func (c *Cache) Forget(id int64) {
	delete(c.networks, id)
	delete(c.degrees, id)
	delete(c.overlaps, id)
	for other := range c.overlaps {
		delete(c.overlaps[other], id)
	}
	c.purgePathology(id)
	c.logger.Info("forgot network", "network", id)
}

// purgePathology drops every memoized ranking for the network.
func (c *Cache) purgePathology(id int64) {
	for _, key := range c.pathology.Keys() {
		if key.networkID == id {
			c.pathology.Remove(key)
		}
	}
}

// IsCached reports whether the network currently has a cached instance.
func (c *Cache) IsCached(id int64) bool {
	_, ok := c.networks[id]
	return ok
}

// NetworkIDs returns the cached network ids in ascending order.
func (c *Cache) NetworkIDs() []int64 {
	ids := make([]int64, 0, len(c.networks))
	for id := range c.networks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Universe returns the merged union of every network ever cached.
// The returned graph is shared mutable state: it grows on every cache
// fill and must not be mutated by callers.
func (c *Cache) Universe() *bel.Graph { return c.universe }

// Index returns the identifier index populated by cache fills.
func (c *Cache) Index() *index.Index { return c.idx }

// Store exposes the underlying network store.
func (c *Cache) Store() store.Store { return c.store }
