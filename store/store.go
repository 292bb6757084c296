// Package store implements the lexicon's persistence layer: a small
// capability interface any backend can satisfy, concrete backends, and
// the Category/registry bookkeeping that sits on top of it.
package store

import "context"

// Store is the capability interface the lexicon needs from a
// persistent backend: atomic counter increment, point reads, and a
// set abstraction. Any backend satisfying this may be used; an
// in-memory fake suffices for tests.
type Store interface {
	// Incr atomically adds delta to the integer counter at key
	// (creating it at 0 first if absent) and returns the new value.
	Incr(ctx context.Context, key string, delta int64) (int64, error)
	// Get returns the integer value at key, or (0, false, nil) if the
	// key has never been set.
	Get(ctx context.Context, key string) (int64, bool, error)
	// SetAdd adds member to the set at key, returning true if it was
	// newly added.
	SetAdd(ctx context.Context, key, member string) (bool, error)
	// SetMembers returns every member of the set at key.
	SetMembers(ctx context.Context, key string) ([]string, error)
	// Delete removes every given key (and any set/counter stored
	// under it).
	Delete(ctx context.Context, keys ...string) error
	// Close releases any resources (connections, file handles) held
	// by the backend.
	Close() error
}
