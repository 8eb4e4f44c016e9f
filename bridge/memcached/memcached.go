// Package memcached is a Bridge backed by bradfitz/gomemcache.
//
// memcached keys are limited to 250 bytes without spaces or control
// characters, so canonical restcache keys are hashed with a prefix.
package memcached

import (
	"context"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/unkn0wn-root/restcache/bridge"
	"github.com/unkn0wn-root/restcache/internal/keys"
)

const defaultPrefix = "rc"

type Memcached struct {
	client *memcache.Client
	prefix string
}

var _ bridge.Bridge = (*Memcached)(nil)

type Config struct {
	Servers []string // e.g. ["localhost:11211"]
	Prefix  string   // hashed key prefix; "" => "rc"
	Client  *memcache.Client
}

func New(cfg Config) (*Memcached, error) {
	c := cfg.Client
	if c == nil {
		if len(cfg.Servers) == 0 {
			return nil, errors.New("memcached bridge: no servers")
		}
		c = memcache.New(cfg.Servers...)
	}
	p := cfg.Prefix
	if p == "" {
		p = defaultPrefix
	}
	return &Memcached{client: c, prefix: p}, nil
}

// StorageKey returns the memcached key used for a restcache key.
func (b *Memcached) StorageKey(key string) string { return keys.Hash(b.prefix, key) }

func (b *Memcached) Get(_ context.Context, key string) ([]byte, error) {
	it, err := b.client.Get(b.StorageKey(key))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, bridge.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return it.Value, nil
}

// Set stores without expiration.
func (b *Memcached) Set(_ context.Context, key string, value []byte) error {
	return b.client.Set(&memcache.Item{Key: b.StorageKey(key), Value: value})
}

// Close is a no-op; gomemcache keeps a pool of idle connections per server
// that is reclaimed with the client.
func (b *Memcached) Close(_ context.Context) error { return nil }
