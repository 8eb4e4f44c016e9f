// Package otelhooks counts restcache events with OpenTelemetry metrics.
//
//	hooks, err := otelhooks.New(otel.GetMeterProvider().Meter("restcache"))
//
// Instruments:
//
//	restcache.partial_fallback      full entry missing, partial key tried
//	restcache.partial_hit           partial entry served a Get
//	restcache.list_item_miss        GetList failed on an indexed item
//	restcache.list_write_aborted    SetList stopped before writing the index
//	restcache.bridge_set_rejected   bridge refused a write
//	restcache.decode_failed         stored bytes did not decode
package otelhooks

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/unkn0wn-root/restcache"
)

type Hooks struct {
	fallback      metric.Int64Counter
	partialHit    metric.Int64Counter
	itemMiss      metric.Int64Counter
	writeAborted  metric.Int64Counter
	writtenBefore metric.Int64Histogram
	setRejected   metric.Int64Counter
	decodeFailed  metric.Int64Counter
	attrs         metric.MeasurementOption
}

var _ restcache.Hooks = (*Hooks)(nil)

// New registers the instruments on meter. attrs are attached to every
// measurement (e.g. attribute.String("cache", "posts")).
func New(meter metric.Meter, attrs ...attribute.KeyValue) (*Hooks, error) {
	h := &Hooks{attrs: metric.WithAttributes(attrs...)}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&h.fallback, "restcache.partial_fallback", "Gets that fell back to the list-derived entry"},
		{&h.partialHit, "restcache.partial_hit", "Gets served by a list-derived entry"},
		{&h.itemMiss, "restcache.list_item_miss", "List reads failed on a missing item"},
		{&h.writeAborted, "restcache.list_write_aborted", "List writes aborted before the index"},
		{&h.setRejected, "restcache.bridge_set_rejected", "Writes refused by the bridge"},
		{&h.decodeFailed, "restcache.decode_failed", "Stored entries that failed to decode"},
	}
	for _, c := range counters {
		ctr, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
		*c.dst = ctr
	}

	hist, err := meter.Int64Histogram("restcache.list_write_aborted.written",
		metric.WithDescription("Item writes completed before a list write aborted"),
		metric.WithUnit("{item}"))
	if err != nil {
		return nil, err
	}
	h.writtenBefore = hist
	return h, nil
}

func (h *Hooks) add(c metric.Int64Counter) {
	c.Add(context.Background(), 1, h.attrs)
}

func (h *Hooks) PartialFallback(string)      { h.add(h.fallback) }
func (h *Hooks) PartialHit(string)           { h.add(h.partialHit) }
func (h *Hooks) ListItemMiss(string, string) { h.add(h.itemMiss) }
func (h *Hooks) BridgeSetRejected(string)    { h.add(h.setRejected) }
func (h *Hooks) DecodeFailed(string, error)  { h.add(h.decodeFailed) }

func (h *Hooks) ListWriteAborted(_ string, written int, _ error) {
	h.add(h.writeAborted)
	h.writtenBefore.Record(context.Background(), int64(written), h.attrs)
}
