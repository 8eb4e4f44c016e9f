package restcache

import (
	"fmt"

	"github.com/unkn0wn-root/restcache/bridge"
	"github.com/unkn0wn-root/restcache/resource"
)

var (
	// ErrCacheMiss is the bridge's miss signal. Check with errors.Is.
	ErrCacheMiss = bridge.ErrCacheMiss

	ErrMissingParameter = resource.ErrMissingParameter
	ErrNotListable      = resource.ErrNotListable
)

// MissingParameterError reports an unbound path placeholder.
type MissingParameterError = resource.MissingParameterError

// BridgeError wraps a failed bridge call with the operation and key.
type BridgeError struct {
	Op  string // "get" or "set"
	Key string
	Err error
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("restcache: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *BridgeError) Unwrap() error { return e.Err }

// DecodeError reports stored bytes the codec could not decode.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("restcache: decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
