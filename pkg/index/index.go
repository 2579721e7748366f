// Package index assigns stable small-integer identifiers to nodes and
// edges based on their structural content hashes. Identifiers are handed
// out in first-seen order and never change for the lifetime of the index,
// so re-caching an unchanged network reproduces identical assignments.
//
// The index is a true bijection in both directions: no two contents share
// an identifier and no identifier maps to two contents. It is not safe
// for concurrent use without external synchronization.
package index

import (
	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/errors"
)

// Index maps node and edge content hashes to sequential integer ids and
// back. The zero value is not usable - use New.
type Index struct {
	nodeIDs  map[bel.NodeID]int64
	idNodes  map[int64]bel.Node
	edgeIDs  map[bel.EdgeID]int64
	idEdges  map[int64]bel.Edge
	nextNode int64
	nextEdge int64
}

// New creates an empty identifier index.
func New() *Index {
	return &Index{
		nodeIDs: make(map[bel.NodeID]int64),
		idNodes: make(map[int64]bel.Node),
		edgeIDs: make(map[bel.EdgeID]int64),
		idEdges: make(map[int64]bel.Edge),
	}
}

// AssignNode returns the stable integer id for the node, assigning the
// next sequential id only the first time this content is seen. Idempotent.
func (ix *Index) AssignNode(n bel.Node) int64 {
	hash := n.ID()
	if id, ok := ix.nodeIDs[hash]; ok {
		return id
	}
	ix.nextNode++
	ix.nodeIDs[hash] = ix.nextNode
	ix.idNodes[ix.nextNode] = n
	return ix.nextNode
}

// AssignEdge returns the stable integer id for the edge, assigning the
// next sequential id only the first time this content is seen. Idempotent.
func (ix *Index) AssignEdge(e bel.Edge) int64 {
	hash := e.ID()
	if id, ok := ix.edgeIDs[hash]; ok {
		return id
	}
	ix.nextEdge++
	ix.edgeIDs[hash] = ix.nextEdge
	ix.idEdges[ix.nextEdge] = e
	return ix.nextEdge
}

// AssignGraph assigns identifiers for every node and edge of the graph
// that has not been indexed yet, in deterministic (ascending content
// hash) order.
func (ix *Index) AssignGraph(g *bel.Graph) {
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		ix.AssignNode(n)
	}
	for _, id := range g.EdgeIDs() {
		e, _ := g.Edge(id)
		ix.AssignEdge(e)
	}
}

// Node resolves an integer id back to its node content.
// Fails with a NOT_FOUND error if the id was never assigned.
func (ix *Index) Node(id int64) (bel.Node, error) {
	n, ok := ix.idNodes[id]
	if !ok {
		return bel.Node{}, errors.New(errors.CodeNotFound, "node id %d was never assigned", id)
	}
	return n, nil
}

// NodeID resolves node content to its assigned integer id.
// Fails with a NOT_FOUND error if the content was never assigned.
func (ix *Index) NodeID(n bel.Node) (int64, error) {
	id, ok := ix.nodeIDs[n.ID()]
	if !ok {
		return 0, errors.New(errors.CodeNotFound, "node %s was never assigned", n.CanonicalName())
	}
	return id, nil
}

// Edge resolves an integer id back to its edge content.
// Fails with a NOT_FOUND error if the id was never assigned.
func (ix *Index) Edge(id int64) (bel.Edge, error) {
	e, ok := ix.idEdges[id]
	if !ok {
		return bel.Edge{}, errors.New(errors.CodeNotFound, "edge id %d was never assigned", id)
	}
	return e, nil
}

// EdgeID resolves edge content to its assigned integer id.
// Fails with a NOT_FOUND error if the content was never assigned.
func (ix *Index) EdgeID(e bel.Edge) (int64, error) {
	id, ok := ix.edgeIDs[e.ID()]
	if !ok {
		return 0, errors.New(errors.CodeNotFound, "edge %s was never assigned", e.ID())
	}
	return id, nil
}

// NodeCount returns the number of distinct node contents assigned so far.
func (ix *Index) NodeCount() int { return len(ix.nodeIDs) }

// EdgeCount returns the number of distinct edge contents assigned so far.
func (ix *Index) EdgeCount() int { return len(ix.edgeIDs) }
