package asynchook

import (
	"sync"
	"testing"

	"github.com/unkn0wn-root/restcache"
)

type countHooks struct {
	restcache.NopHooks
	mu    sync.Mutex
	n     int
	block chan struct{}
}

func (c *countHooks) PartialFallback(string) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func TestEventsDeliveredBeforeClose(t *testing.T) {
	inner := &countHooks{}
	h := New(inner, 2, 16)
	for i := 0; i < 10; i++ {
		h.PartialFallback("k")
	}
	h.Close()
	if inner.n != 10 {
		t.Fatalf("delivered %d events, want 10", inner.n)
	}
}

func TestFullQueueDrops(t *testing.T) {
	inner := &countHooks{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// worker takes the first event and blocks; second fills the queue
	h.PartialFallback("k")
	for h.Dropped() == 0 {
		h.PartialFallback("k")
	}
	close(inner.block)
	h.Close()
	if h.Dropped() == 0 {
		t.Fatalf("expected drops")
	}
}

func TestFireAfterCloseIsDropped(t *testing.T) {
	h := New(restcache.NopHooks{}, 1, 1)
	h.Close()
	h.PartialHit("k")
	if h.Dropped() != 1 {
		t.Fatalf("expected 1 drop, got %d", h.Dropped())
	}
}

func TestCloseWhileFiring(t *testing.T) {
	inner := &countHooks{}
	h := New(inner, 2, 4)

	const firers, perFirer = 8, 200
	var wg sync.WaitGroup
	wg.Add(firers)
	for i := 0; i < firers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perFirer; j++ {
				h.PartialFallback("k")
			}
		}()
	}
	h.Close()
	wg.Wait()
	h.Close() // second Close is a no-op

	inner.mu.Lock()
	delivered := inner.n
	inner.mu.Unlock()
	if got := uint64(delivered) + h.Dropped(); got != firers*perFirer {
		t.Fatalf("delivered %d + dropped %d != %d fired", delivered, h.Dropped(), firers*perFirer)
	}
}
