package repository

import "context"

// SlotStore persists opaque values under string keys. The project collection
// lives in a single slot and is always read and written as a whole.
type SlotStore interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}
