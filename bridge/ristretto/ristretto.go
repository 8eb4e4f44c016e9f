package ristretto

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/restcache/bridge"
)

// CostFunc returns the admission cost of an entry. Defaults to 1.
type CostFunc func(key string, value []byte) int64

type Ristretto struct {
	c    *rc.Cache
	cost CostFunc
}

var _ bridge.Bridge = (*Ristretto)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	Cost        CostFunc
}

func New(cfg Config) (*Ristretto, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	cost := cfg.Cost
	if cost == nil {
		cost = func(string, []byte) int64 { return 1 }
	}
	return &Ristretto{c: c, cost: cost}, nil
}

func (b *Ristretto) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := b.c.Get(key)
	if !ok {
		return nil, bridge.ErrCacheMiss
	}
	raw, _ := v.([]byte)
	if raw == nil {
		// drop unexpected entry shape
		b.c.Del(key)
		return nil, bridge.ErrCacheMiss
	}
	return raw, nil
}

// Set is buffered by ristretto; call Wait to make writes visible.
// A refused admission returns bridge.ErrSetRejected.
func (b *Ristretto) Set(_ context.Context, key string, value []byte) error {
	if !b.c.Set(key, value, b.cost(key, value)) {
		return bridge.ErrSetRejected
	}
	return nil
}

// Wait blocks until buffered writes are applied.
func (b *Ristretto) Wait() { b.c.Wait() }

func (b *Ristretto) Close(_ context.Context) error {
	b.c.Wait()
	b.c.Close()
	return nil
}

// Metrics exposes ristretto counters (nil unless Config.Metrics is set).
func (b *Ristretto) Metrics() *rc.Metrics { return b.c.Metrics }
