// Package pkg provides the core libraries for biograph network caching
// and querying.
//
// # Overview
//
// biograph keeps parsed biological knowledge networks hot in memory and
// answers structural queries over them. The pkg directory is organized
// into four main areas:
//
//  1. [bel] - The graph model (content-addressed nodes and edges,
//     components, paths, sampling)
//  2. [cache] - The in-memory network cache and its derived indexes
//     (degrees, pairwise overlap, pathology rankings)
//  3. [subgraph] / [search] - Query strategies over cached graphs
//  4. [store] / [kvcache] / [enrich] - Persistence and enrichment
//     collaborators (MongoDB documents, redis/file byte caches, PubMed
//     citation metadata)
//
// # Architecture
//
// The typical data flow:
//
//	MongoDB / fixtures
//	        ↓  store.Store
//	cache.Cache  ──  index.Index (stable integer ids)
//	        ↓
//	subgraph.Query / search.Graph / rankings
//	        ↓
//	CLI tables, JSON API, graphviz renders
//
// Graphs are identified by content: node and edge ids are hashes of
// their identifying fields, so the same biological statement gets the
// same id in every network. The index package layers small sequential
// integers on top for external interfaces.
package pkg
