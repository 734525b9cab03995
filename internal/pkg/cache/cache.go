// Package cache provides the durable local key-value blob store used to
// snapshot the record store, settings, and the pending mutation queue.
package cache

import "errors"

var (
	// ErrCapacityExceeded is returned by Set when writing the blob would push
	// the cache past its configured capacity. Callers are expected to prune
	// and retry once before treating the write as failed.
	ErrCapacityExceeded = errors.New("cache capacity exceeded")
)

// Cache is a key-value blob store. Implementations must make Set durable
// before returning.
type Cache interface {
	// Get returns the blob stored under key, or ok=false when absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores the blob under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the blob stored under key. Deleting an absent key is a
	// no-op.
	Delete(key string) error
}
