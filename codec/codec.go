// Package codec provides payload encoders for restcache entries.
//
// Item payloads and list indexes are stored as the bytes a Codec produces;
// the engine never adds framing of its own.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
