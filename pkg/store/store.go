// Package store defines the persistence contract the caching layer
// consumes, along with a MongoDB-backed implementation and an in-memory
// store for tests and fixtures.
//
// The cache layer never talks to a database directly: it sees only the
// [Store] interface, which supplies raw graphs by id and the list of the
// most recently created network per name.
package store

import (
	"context"
	"time"

	"github.com/biograph-io/biograph/pkg/bel"
)

// NetworkInfo identifies a stored network without its graph payload.
type NetworkInfo struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Version   string    `json:"version" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store supplies raw graphs from the persistence layer.
//
// Implementations may block on external I/O; callers block for the
// duration. No cancellation beyond the passed context is provided.
type Store interface {
	// LoadGraph fetches the graph for the given network id. Fails with a
	// LOAD_FAILED error when the store cannot produce the graph.
	LoadGraph(ctx context.Context, id int64) (*bel.Graph, error)

	// ListRecentNetworks returns the most recently created network per
	// name, ordered newest first.
	ListRecentNetworks(ctx context.Context) ([]NetworkInfo, error)

	// NetworkByName resolves a name to the id of its most recent version.
	// Fails with a NOT_FOUND_NETWORK error when no network has that name.
	NetworkByName(ctx context.Context, name string) (int64, error)
}
