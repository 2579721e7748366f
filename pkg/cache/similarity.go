package cache

import (
	"context"
	"maps"

	"github.com/biograph-io/biograph/pkg/bel"
)

// Overlap computes the node-set similarity between the given network and
// every other network known to the store, filling the pairwise similarity
// cache as it goes. Scores are written symmetrically - both (id, other)
// and (other, id) - in the same step, and already-cached pairs are never
// recomputed. A network is never paired with itself.
//
// The returned map is the full accumulated row, including previously
// cached entries, copied so that callers cannot corrupt the cache.
func (c *Cache) Overlap(ctx context.Context, id int64) (map[int64]float64, error) {
	row := c.overlaps[id]
	if row == nil {
		row = make(map[int64]float64)
		c.overlaps[id] = row
	}

	infos, err := c.store.ListRecentNetworks(ctx)
	if err != nil {
		return nil, err
	}

	var missing []int64
	for _, info := range infos {
		if info.ID == id {
			continue
		}
		if _, ok := row[info.ID]; !ok {
			missing = append(missing, info.ID)
		}
	}

	if len(missing) > 0 {
		g, err := c.Get(ctx, id, false)
		if err != nil {
			return nil, err
		}
		nodes := g.NodeSet()

		for _, other := range missing {
			og, err := c.Get(ctx, other, false)
			if err != nil {
				return nil, err
			}
			score := minTanimoto(nodes, og.NodeSet())

			row[other] = score
			if c.overlaps[other] == nil {
				c.overlaps[other] = make(map[int64]float64)
			}
			c.overlaps[other][id] = score
		}
		c.logger.Debug("cached node overlaps", "network", id, "pairs", len(missing))
	}

	return maps.Clone(row), nil
}

// minTanimoto computes |A∩B| / min(|A|,|B|) over two node sets.
// Returns 0 when either set is empty.
func minTanimoto(a, b map[bel.NodeID]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	intersection := 0
	for id := range small {
		if large[id] {
			intersection++
		}
	}
	return float64(intersection) / float64(len(small))
}
