package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/restcache/bridge"
)

var ErrNilClient = errors.New("redis bridge: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	prefix      string
	closeClient bool
}

var _ bridge.Bridge = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	Prefix      string // optional key prefix, e.g. "app:prod:rc:"
	CloseClient bool   // set true only if this bridge exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, prefix: cfg.Prefix, closeClient: cfg.CloseClient}, nil
}

func (b *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.rdb.Get(ctx, b.prefix+key).Bytes()
	if err == goredis.Nil {
		return nil, bridge.ErrCacheMiss
	}
	if err != nil {
		return nil, err // transport/server error
	}
	return v, nil
}

// Set writes without expiry.
func (b *Redis) Set(ctx context.Context, key string, value []byte) error {
	return b.rdb.Set(ctx, b.prefix+key, value, 0).Err()
}

// Close releases the underlying redis client only when this bridge owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (b *Redis) Close(context.Context) error {
	if b.closeClient {
		if err := b.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
