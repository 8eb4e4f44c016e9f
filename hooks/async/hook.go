// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    FallbackEvery: 10, // sample logs: ~every 10th fallback
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := restcache.New[Post, restcache.Meta](restcache.Options[Post, restcache.Meta]{
//	    Bridge: bridge,
//	    Hooks:  hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/restcache"
)

type Hooks struct {
	inner   restcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	dropped atomic.Uint64

	mu     sync.RWMutex // guards closed and the close of q
	closed bool
}

var _ restcache.Hooks = (*Hooks)(nil)

func New(inner restcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events fired after
// Close are dropped.
func (h *Hooks) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.q)
	h.mu.Unlock()
	h.wg.Wait()
}

// Dropped returns the number of events dropped on a full queue.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) PartialFallback(k string) { h.try(func() { h.inner.PartialFallback(k) }) }
func (h *Hooks) PartialHit(k string)      { h.try(func() { h.inner.PartialHit(k) }) }
func (h *Hooks) BridgeSetRejected(k string) {
	h.try(func() { h.inner.BridgeSetRejected(k) })
}
func (h *Hooks) ListItemMiss(c, k string) { h.try(func() { h.inner.ListItemMiss(c, k) }) }
func (h *Hooks) ListWriteAborted(c string, n int, err error) {
	h.try(func() { h.inner.ListWriteAborted(c, n, err) })
}
func (h *Hooks) DecodeFailed(k string, err error) {
	h.try(func() { h.inner.DecodeFailed(k, err) })
}
