package cache

import (
	"context"
	"slices"
	"strings"
)

// Ranked pairs a node's canonical name with an integer score, used for
// degree and pathology-frequency rankings.
type Ranked struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// TopDegree returns the count highest-degree nodes of the network by
// canonical name. The degree index is filled lazily if the network was
// cached before the index existed. Ordering is deterministic: descending
// score, then ascending name.
func (c *Cache) TopDegree(ctx context.Context, id int64, count int) ([]Ranked, error) {
	g, err := c.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	degrees, ok := c.degrees[id]
	if !ok {
		c.logger.Info("lazy loading degrees", "network", id)
		degrees = g.Degrees()
		c.degrees[id] = degrees
	}

	ranked := make([]Ranked, 0, len(degrees))
	for nid, d := range degrees {
		n, ok := g.Node(nid)
		if !ok {
			continue // degree entry for a node no longer in the graph
		}
		ranked = append(ranked, Ranked{Name: n.CanonicalName(), Score: d})
	}
	return topN(ranked, count), nil
}

// TopPathologies returns the count most-connected pathology nodes of the
// network. Results are memoized in a bounded LRU keyed by (network id,
// count); Forget and forced reloads purge the network's entries.
func (c *Cache) TopPathologies(ctx context.Context, id int64, count int) ([]Ranked, error) {
	key := pathologyKey{networkID: id, count: count}
	if ranked, ok := c.pathology.Get(key); ok {
		return slices.Clone(ranked), nil
	}

	g, err := c.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	var ranked []Ranked
	for _, nid := range g.NodeIDs() {
		n, _ := g.Node(nid)
		if !n.IsPathology() {
			continue
		}
		ranked = append(ranked, Ranked{Name: n.CanonicalName(), Score: g.Degree(nid)})
	}
	ranked = topN(ranked, count)

	c.pathology.Add(key, ranked)
	return slices.Clone(ranked), nil
}

// topN sorts descending by score (ties by name) and truncates.
func topN(ranked []Ranked, count int) []Ranked {
	slices.SortFunc(ranked, func(a, b Ranked) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Name, b.Name)
	})
	if count >= 0 && count < len(ranked) {
		ranked = ranked[:count]
	}
	return ranked
}
