package restcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// The full entry was missing and Get retried with the partial key.
	PartialFallback(fullKey string)

	// A list-derived partial entry served a Get.
	PartialHit(partialKey string)

	// GetList failed because an indexed item has no full entry.
	ListItemMiss(collectionKey, itemKey string)

	// SetList stopped after `written` item writes; the index was not written.
	ListWriteAborted(collectionKey string, written int, err error)

	// The bridge refused a write under pressure (bridge.ErrSetRejected).
	BridgeSetRejected(key string)

	// Stored bytes could not be decoded.
	DecodeFailed(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) PartialFallback(string)              {}
func (NopHooks) PartialHit(string)                   {}
func (NopHooks) ListItemMiss(string, string)         {}
func (NopHooks) ListWriteAborted(string, int, error) {}
func (NopHooks) BridgeSetRejected(string)            {}
func (NopHooks) DecodeFailed(string, error)          {}
