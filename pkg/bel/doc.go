// Package bel implements the directed multigraph model for biological
// knowledge graphs: typed nodes, annotated causal/correlative edges, and
// the graph operations the caching and query layers are built on.
//
// # Identity
//
// Node and edge identity is structural. A node's ID is the content hash of
// its typed attributes (function, namespace, name, variant); an edge's ID
// hashes its endpoints, disambiguating key, relation, and annotation data.
// Hashes are stable across processes, so re-loading an unchanged network
// reproduces the same IDs.
//
// # Multigraph semantics
//
// Multiple edges may connect the same pair of nodes as long as they differ
// in key or annotation content. Adjacency is indexed per node in both
// directions.
//
// # Mutation and aliasing
//
// Graph is not safe for concurrent use without external synchronization.
// Operations that derive a new graph (Copy, SampleEdges, the subgraph
// package) always return fresh instances; Merge mutates the receiver in
// place with existing-wins semantics.
package bel
