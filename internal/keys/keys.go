// Package keys derives canonical storage keys for resource paths.
package keys

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// PartialField is the reserved query field marking list-derived item entries.
const PartialField = "__isPartial__"

// field order is fixed by the struct layout; keys are byte-stable.
type key struct {
	Path  string `json:"path"`
	Query *query `json:"query,omitempty"`
}

type query struct {
	IsPartial bool `json:"__isPartial__"`
}

// Build returns the canonical key for path:
//
//	{"path":"/blogs/b1"}
//	{"path":"/blogs/b1","query":{"__isPartial__":true}}
func Build(path string, partial bool) (string, error) {
	k := key{Path: path}
	if partial {
		k.Query = &query{IsPartial: true}
	}
	b, err := json.Marshal(k)
	if err != nil {
		return "", fmt.Errorf("keys: encode %q: %w", path, err)
	}
	return string(b), nil
}

// Hash returns a deterministic short key: prefix + ":" + first 16 hex chars of
// sha256(k). Use for stores with key length or charset limits.
func Hash(prefix, k string) string {
	sum := sha256.Sum256([]byte(k))
	return fmt.Sprintf("%s:%x", prefix, sum[:8])
}
