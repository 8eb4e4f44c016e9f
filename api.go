package restcache

import (
	"context"

	br "github.com/unkn0wn-root/restcache/bridge"
	c "github.com/unkn0wn-root/restcache/codec"
	"github.com/unkn0wn-root/restcache/resource"
)

// Params binds placeholder names of a resource description to values.
type Params = resource.Params

// Cache is the normalization-aware cache API. V is the item type of every
// resource the cache serves; payloads are serialized by a pluggable Codec[V].
// M is the list metadata type (Meta for offset pagination).
//
// Every method resolves keys from the description and params first, so
// caller errors (*resource.MissingParameterError) never reach the bridge.
type Cache[V, M any] interface {
	Enabled() bool
	Close(context.Context) error

	// Single item. Get falls back to the list-derived partial entry when the
	// full entry is missing.
	Get(ctx context.Context, res *resource.Description, params Params) (V, error)
	Set(ctx context.Context, res *resource.Description, params Params, data V) error

	// Lists are split into partial item entries plus an index on write and
	// recombined from full item entries on read.
	GetList(ctx context.Context, res *resource.Description, params Params) (DataListContainer[V, M], error)
	SetList(ctx context.Context, res *resource.Description, params Params, list DataListContainer[V, M]) error

	// Async variants run the operation on a goroutine. Cancel on the returned
	// Result stops further bridge calls.
	GetAsync(ctx context.Context, res *resource.Description, params Params) *Result[V]
	SetAsync(ctx context.Context, res *resource.Description, params Params, data V) *Result[struct{}]
	GetListAsync(ctx context.Context, res *resource.Description, params Params) *Result[DataListContainer[V, M]]
	SetListAsync(ctx context.Context, res *resource.Description, params Params, list DataListContainer[V, M]) *Result[struct{}]
}

// Options tune the cache. Only Bridge is required; others have sensible defaults.
type Options[V, M any] struct {
	// Required
	Bridge br.Bridge

	Codec      c.Codec[V]            // item payloads; nil => codec.JSON[V]
	IndexCodec c.Codec[ListIndex[M]] // list indexes; nil => codec.JSON[ListIndex[M]]
	ItemID     func(V) (string, error)

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// ReadConcurrency bounds parallel item reads in GetList; 0 => 1 (sequential,
	// index order). Output order is the index order either way.
	ReadConcurrency int
	// WriteConcurrency bounds parallel item writes in SetList; 0 => 1. The
	// index is always written after every item write succeeded.
	WriteConcurrency int
	// CoalesceReads collapses concurrent Get calls for the same path into one
	// bridge round-trip sequence. The shared read ignores caller cancellation
	// so one caller giving up does not fail the others; a cancelled caller
	// returns its ctx error immediately.
	CoalesceReads bool
	Disabled      bool // default false (enabled)
}

func New[V, M any](opts Options[V, M]) (Cache[V, M], error) {
	return newCache[V, M](opts)
}
