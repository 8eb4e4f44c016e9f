package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/restcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	FallbackEvery uint64
	ItemMissEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix; storage keys carry
	// resource ids.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	fallbackCtr atomic.Uint64
	itemMissCtr atomic.Uint64
}

var _ restcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) PartialFallback(fullKey string) {
	if h.l == nil || !sample(h.opts.FallbackEvery, &h.fallbackCtr) {
		return
	}
	h.l.Debug("restcache.partial_fallback", "key", h.redact(fullKey))
}

func (h *Hooks) PartialHit(partialKey string) {
	if h.l == nil {
		return
	}
	h.l.Debug("restcache.partial_hit", "key", h.redact(partialKey))
}

func (h *Hooks) ListItemMiss(collectionKey, itemKey string) {
	if h.l == nil || !sample(h.opts.ItemMissEvery, &h.itemMissCtr) {
		return
	}
	h.l.Info("restcache.list_item_miss",
		"collection", h.redact(collectionKey),
		"item", h.redact(itemKey))
}

func (h *Hooks) ListWriteAborted(collectionKey string, written int, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("restcache.list_write_aborted",
		"collection", h.redact(collectionKey),
		"written", written,
		"err", err)
}

func (h *Hooks) BridgeSetRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("restcache.bridge_set_rejected", "key", h.redact(key))
}

func (h *Hooks) DecodeFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("restcache.decode_failed",
		"key", h.redact(key),
		"err", err)
}
