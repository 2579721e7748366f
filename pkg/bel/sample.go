package bel

import "math/rand"

// SampleEdges returns a fresh graph induced over a uniform random sample
// of count edges, drawn with the given seed for reproducibility. Requests
// larger than the edge set are clamped to the full set. Connectivity of
// the result is not guaranteed.
func (g *Graph) SampleEdges(count int, seed int64) *Graph {
	ids := g.EdgeIDs() // sorted, so the shuffle is fully seed-determined

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	if count > len(ids) {
		count = len(ids)
	}
	if count < 0 {
		count = 0
	}
	return g.EdgeInducedSubgraph(ids[:count])
}
