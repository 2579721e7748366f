package bel

import (
	"container/heap"
	"math"
)

// NodesInAllShortestPaths returns the union of nodes appearing on any
// shortest path between any ordered pair of the given nodes. If weightKey
// is non-empty, edge weights are read from Edge.Weights[weightKey]
// (missing weights default to 1) and Dijkstra's algorithm is used;
// otherwise paths are unweighted hop counts. Nodes absent from the graph
// are ignored. Returns an empty set when no pair is connected.
func (g *Graph) NodesInAllShortestPaths(nodes []NodeID, weightKey string) map[NodeID]bool {
	present := make([]NodeID, 0, len(nodes))
	for _, id := range nodes {
		if g.HasNode(id) {
			present = append(present, id)
		}
	}

	result := make(map[NodeID]bool)
	targets := make(map[NodeID]bool, len(present))
	for _, id := range present {
		targets[id] = true
	}

	for _, src := range present {
		dist, parents := g.shortestPathDAG(src, weightKey)
		for dst := range targets {
			if dst == src {
				continue
			}
			if _, ok := dist[dst]; !ok {
				continue
			}
			collectPathNodes(dst, src, parents, result)
		}
	}
	return result
}

// collectPathNodes walks the shortest-path parent DAG backwards from dst
// to src, marking every node on every shortest path.
func collectPathNodes(dst, src NodeID, parents map[NodeID][]NodeID, result map[NodeID]bool) {
	stack := []NodeID{dst}
	seen := map[NodeID]bool{dst: true}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result[id] = true
		for _, p := range parents[id] {
			if !seen[p] {
				seen[p] = true
				stack = append(stack, p)
			}
		}
	}
}

// shortestPathDAG computes shortest-path distances from src to every
// reachable node, along with the set of predecessors realizing each
// node's shortest distance. Directed edges only.
func (g *Graph) shortestPathDAG(src NodeID, weightKey string) (map[NodeID]float64, map[NodeID][]NodeID) {
	dist := map[NodeID]float64{src: 0}
	parents := make(map[NodeID][]NodeID)

	pq := &nodeQueue{{id: src, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(nodeDist)
		if cur.dist > dist[cur.id] {
			continue // stale entry
		}
		for _, eid := range g.out[cur.id] {
			e := g.edges[eid]
			w := 1.0
			if weightKey != "" {
				if ew, ok := e.Weights[weightKey]; ok {
					w = ew
				}
			}
			next := cur.dist + w
			old, seen := dist[e.To]
			switch {
			case !seen || next < old-epsilon:
				dist[e.To] = next
				parents[e.To] = []NodeID{cur.id}
				heap.Push(pq, nodeDist{id: e.To, dist: next})
			case math.Abs(next-old) <= epsilon:
				parents[e.To] = appendUnique(parents[e.To], cur.id)
			}
		}
	}
	return dist, parents
}

// epsilon absorbs float accumulation error when comparing path lengths.
const epsilon = 1e-9

func appendUnique(ids []NodeID, id NodeID) []NodeID {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

type nodeDist struct {
	id   NodeID
	dist float64
}

type nodeQueue []nodeDist

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)        { *q = append(*q, x.(nodeDist)) }
func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
