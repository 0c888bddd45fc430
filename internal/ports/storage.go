// Package ports defines the interfaces between the services layer and the
// adapters that drive it or are driven by it.
package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when nothing is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore persists opaque JSON documents under string keys.
// This is a driven port (implemented by the storage adapter).
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key and notifies subscribers of that key.
	Set(ctx context.Context, key string, value []byte) error

	// Subscribe registers fn to receive every value written to key.
	// The returned function removes the subscription.
	Subscribe(key string, fn func(value []byte)) (unsubscribe func())

	// Close releases the underlying resources.
	Close() error
}
