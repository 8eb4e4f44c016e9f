package ristretto

import (
	"context"
	"errors"
	"testing"

	"github.com/unkn0wn-root/restcache/bridge"
)

func TestRistrettoRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, err := New(Config{NumCounters: 1000, MaxCost: 100, BufferItems: 64})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = b.Close(ctx) })

	if _, err := b.Get(ctx, "k"); !errors.Is(err, bridge.ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := b.Set(ctx, "k", []byte("v")); err != nil && !errors.Is(err, bridge.ErrSetRejected) {
		t.Fatal(err)
	}
	b.Wait()
	got, err := b.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("got=%q err=%v", got, err)
	}
}

func TestRistrettoInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for zero config")
	}
}
