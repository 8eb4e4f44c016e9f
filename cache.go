package restcache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	br "github.com/unkn0wn-root/restcache/bridge"
	"github.com/unkn0wn-root/restcache/codec"
	"github.com/unkn0wn-root/restcache/internal/keys"
	"github.com/unkn0wn-root/restcache/resource"
)

type cache[V, M any] struct {
	bridge     br.Bridge
	itemCodec  codec.Codec[V]
	indexCodec codec.Codec[ListIndex[M]]
	itemID     func(V) (string, error)
	log        Logger
	hooks      Hooks

	enabled       bool
	readConc      int
	writeConc     int
	coalesceReads bool
	reads         singleflight.Group
}

func newCache[V, M any](opts Options[V, M]) (*cache[V, M], error) {
	if opts.Bridge == nil {
		return nil, fmt.Errorf("restcache: bridge is required")
	}

	c := &cache[V, M]{
		bridge:        opts.Bridge,
		enabled:       !opts.Disabled,
		coalesceReads: opts.CoalesceReads,
		readConc:      max(opts.ReadConcurrency, 1),
		writeConc:     max(opts.WriteConcurrency, 1),
	}

	// defaults
	c.itemCodec = coalesce[codec.Codec[V]](opts.Codec, codec.JSON[V]{})
	c.indexCodec = coalesce[codec.Codec[ListIndex[M]]](opts.IndexCodec, codec.JSON[ListIndex[M]]{})
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	if opts.ItemID != nil {
		c.itemID = opts.ItemID
	} else {
		c.itemID = defaultItemID[V]
	}
	return c, nil
}

func (c *cache[V, M]) Enabled() bool { return c.enabled }

func (c *cache[V, M]) Close(ctx context.Context) error {
	return c.bridge.Close(ctx)
}

func (c *cache[V, M]) Get(ctx context.Context, res *resource.Description, params Params) (V, error) {
	var zero V
	path, err := res.Resolve(params)
	if err != nil {
		return zero, err
	}
	if !c.enabled {
		return zero, ErrCacheMiss
	}
	if !c.coalesceReads {
		return c.getPath(ctx, path)
	}
	// the shared read outlives any single caller; each caller still
	// stops waiting when its own ctx is done
	ch := c.reads.DoChan(path, func() (any, error) {
		return c.getPath(context.WithoutCancel(ctx), path)
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		out, _ := r.Val.(V)
		return out, nil
	}
}

// getPath reads the full entry, then the partial one if the full entry is
// missing. Never more than two reads.
func (c *cache[V, M]) getPath(ctx context.Context, path string) (V, error) {
	var zero V
	fullKey, err := keys.Build(path, false)
	if err != nil {
		return zero, err
	}
	v, err := c.read(ctx, fullKey)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return zero, err
	}

	partialKey, err := keys.Build(path, true)
	if err != nil {
		return zero, err
	}
	c.hooks.PartialFallback(fullKey)
	c.log.Debug("full entry missing; trying list-derived entry", Fields{"path": path})

	v, err = c.read(ctx, partialKey)
	if err != nil {
		return zero, err
	}
	c.hooks.PartialHit(partialKey)
	return v, nil
}

func (c *cache[V, M]) Set(ctx context.Context, res *resource.Description, params Params, data V) error {
	path, err := res.Resolve(params)
	if err != nil {
		return err
	}
	if !c.enabled {
		return nil
	}
	key, err := keys.Build(path, false)
	if err != nil {
		return err
	}
	payload, err := c.itemCodec.Encode(data)
	if err != nil {
		return fmt.Errorf("restcache: encode %s: %w", key, err)
	}
	return c.write(ctx, key, payload)
}

type pendingWrite struct {
	key     string
	payload []byte
}

func (c *cache[V, M]) SetList(ctx context.Context, res *resource.Description, params Params, list DataListContainer[V, M]) error {
	collectionKey, itemParam, err := c.collection(res, params)
	if err != nil {
		return err
	}

	// Resolve and encode everything up front: caller errors must not leave
	// half-written lists behind.
	writes := make([]pendingWrite, len(list.Data))
	ids := make([]string, len(list.Data))
	for i, item := range list.Data {
		id, err := c.itemID(item)
		if err != nil {
			return fmt.Errorf("restcache: list item %d: %w", i, err)
		}
		path, err := res.Resolve(withParam(params, itemParam, id))
		if err != nil {
			return err
		}
		key, err := keys.Build(path, true)
		if err != nil {
			return err
		}
		payload, err := c.itemCodec.Encode(item)
		if err != nil {
			return fmt.Errorf("restcache: encode %s: %w", key, err)
		}
		ids[i] = id
		writes[i] = pendingWrite{key: key, payload: payload}
	}
	index, err := c.indexCodec.Encode(ListIndex[M]{Data: ids, Meta: list.Meta})
	if err != nil {
		return fmt.Errorf("restcache: encode %s: %w", collectionKey, err)
	}

	if !c.enabled {
		return nil
	}

	written, err := fanOut(ctx, c.writeConc, len(writes), func(ctx context.Context, i int) error {
		return c.write(ctx, writes[i].key, writes[i].payload)
	})
	if err != nil {
		// items already written stay as unreferenced partial entries
		c.log.Warn("list write aborted before index", Fields{
			"collection": collectionKey, "written": written, "total": len(writes), "err": err,
		})
		c.hooks.ListWriteAborted(collectionKey, written, err)
		return err
	}
	return c.write(ctx, collectionKey, index)
}

func (c *cache[V, M]) GetList(ctx context.Context, res *resource.Description, params Params) (DataListContainer[V, M], error) {
	var zero DataListContainer[V, M]
	collectionKey, itemParam, err := c.collection(res, params)
	if err != nil {
		return zero, err
	}
	if !c.enabled {
		return zero, ErrCacheMiss
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}
	raw, err := c.bridge.Get(ctx, collectionKey)
	if err != nil {
		return zero, &BridgeError{Op: "get", Key: collectionKey, Err: err}
	}
	index, err := c.indexCodec.Decode(raw)
	if err != nil {
		c.hooks.DecodeFailed(collectionKey, err)
		return zero, &DecodeError{Key: collectionKey, Err: err}
	}

	itemKeys := make([]string, len(index.Data))
	for i, id := range index.Data {
		path, err := res.Resolve(withParam(params, itemParam, id))
		if err != nil {
			return zero, fmt.Errorf("restcache: index %s entry %d: %w", collectionKey, i, err)
		}
		if itemKeys[i], err = keys.Build(path, false); err != nil {
			return zero, err
		}
	}

	items := make([]V, len(itemKeys))
	_, err = fanOut(ctx, c.readConc, len(itemKeys), func(ctx context.Context, i int) error {
		v, err := c.read(ctx, itemKeys[i])
		if err != nil {
			if errors.Is(err, ErrCacheMiss) {
				c.hooks.ListItemMiss(collectionKey, itemKeys[i])
			}
			return err
		}
		items[i] = v
		return nil
	})
	if err != nil {
		return zero, err
	}
	return DataListContainer[V, M]{Data: items, Meta: index.Meta}, nil
}

func (c *cache[V, M]) GetAsync(ctx context.Context, res *resource.Description, params Params) *Result[V] {
	return runAsync(ctx, func(ctx context.Context) (V, error) {
		return c.Get(ctx, res, params)
	})
}

func (c *cache[V, M]) SetAsync(ctx context.Context, res *resource.Description, params Params, data V) *Result[struct{}] {
	return runAsync(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.Set(ctx, res, params, data)
	})
}

func (c *cache[V, M]) GetListAsync(ctx context.Context, res *resource.Description, params Params) *Result[DataListContainer[V, M]] {
	return runAsync(ctx, func(ctx context.Context) (DataListContainer[V, M], error) {
		return c.GetList(ctx, res, params)
	})
}

func (c *cache[V, M]) SetListAsync(ctx context.Context, res *resource.Description, params Params, list DataListContainer[V, M]) *Result[struct{}] {
	return runAsync(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.SetList(ctx, res, params, list)
	})
}

func (c *cache[V, M]) collection(res *resource.Description, params Params) (key, itemParam string, err error) {
	path, err := res.CollectionPath(params)
	if err != nil {
		return "", "", err
	}
	itemParam, _ = res.ItemParam()
	key, err = keys.Build(path, false)
	return key, itemParam, err
}

func (c *cache[V, M]) read(ctx context.Context, key string) (V, error) {
	var zero V
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	raw, err := c.bridge.Get(ctx, key)
	if err != nil {
		return zero, &BridgeError{Op: "get", Key: key, Err: err}
	}
	v, err := c.itemCodec.Decode(raw)
	if err != nil {
		c.hooks.DecodeFailed(key, err)
		return zero, &DecodeError{Key: key, Err: err}
	}
	return v, nil
}

func (c *cache[V, M]) write(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := c.bridge.Set(ctx, key, payload)
	if errors.Is(err, br.ErrSetRejected) {
		c.log.Debug("write rejected by bridge (pressure)", Fields{"key": key})
		c.hooks.BridgeSetRejected(key)
		return nil
	}
	if err != nil {
		return &BridgeError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// fanOut runs fn for 0..n-1 with at most limit in flight. With limit 1 calls
// run strictly in order. The first error cancels the rest; calls not yet
// started are skipped. Returns the number of successful calls.
func fanOut(ctx context.Context, limit, n int, fn func(ctx context.Context, i int) error) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var ok atomic.Int64
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(gctx, i); err != nil {
				return err
			}
			ok.Add(1)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return int(ok.Load()), err
}

// withParam copies params with name bound to value.
func withParam(params Params, name, value string) Params {
	out := make(Params, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out[name] = value
	return out
}
