// Package statestore defines the small key/blob contract that backs the
// sync engine's persisted state: the cross-run manifest, the time-off
// category mapping, and run metrics (spec.md §4.2 "State Store").
package statestore

import "context"

// Store is a flat key/value blob store keyed by a small, fixed set of
// named keys (e.g. "culture-amp/state.json"). It has no listing or query
// surface — callers that need one object per entity belong in
// internal/client/warehouse, not here.
type Store interface {
	// Get returns the blob stored under key. The second return value is
	// false when no object exists yet under that key; this is not an
	// error, since every key in this system is lazily created on first
	// write.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put overwrites the blob stored under key, creating it if absent.
	Put(ctx context.Context, key string, data []byte) error
}
