// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for key-value storage.
// Implementations can be in-memory, Redis, SQLite, or any other backend.
// The same interface backs transient caches (reclassify debug payloads)
// and durable stores (view state, auth token).
//
// Example usage:
//
//	// Store a value
//	err := cache.Set(ctx, "viewstate:v1", data, 0)
//
//	// Retrieve a value
//	data, err := cache.Get(ctx, "viewstate:v1")
//	if err != nil {
//		// handle error or cache miss
//	}
//
//	// Delete a value
//	err = cache.Delete(ctx, "viewstate:v1")
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
