// Package bridge defines the storage abstraction used by restcache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation).
//
// Keys are canonical JSON documents such as {"path":"/blogs/b1"}. Stores with
// key restrictions (memcached) hash them; see bridge/memcached.
package bridge

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss is returned by Get when no entry exists for a key.
	ErrCacheMiss = errors.New("restcache: cache miss")

	// ErrSetRejected is returned by Set when the store refused the write under
	// pressure (admission control). The engine treats it as non-fatal.
	ErrSetRejected = errors.New("restcache: set rejected by store")
)

// Bridge is a minimal byte store. Must be safe for concurrent use.
type Bridge interface {
	// Get returns the stored value or ErrCacheMiss.
	// Transport/server failures are returned as other errors.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key without expiry.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases resources.
	Close(ctx context.Context) error
}
