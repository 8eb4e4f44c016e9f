package restcache

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingItemID is returned by SetList for an item without an id.
var ErrMissingItemID = errors.New("restcache: item has no id")

// Identifier is implemented by item types that expose their id. It is used
// when Options.ItemID is nil.
type Identifier interface {
	ResourceID() string
}

// defaultItemID understands Identifier and generic JSON objects with an "id".
func defaultItemID[V any](v V) (string, error) {
	var id string
	switch x := any(v).(type) {
	case Identifier:
		id = x.ResourceID()
	case map[string]any:
		switch raw := x["id"].(type) {
		case string:
			id = raw
		case float64:
			id = strconv.FormatFloat(raw, 'f', -1, 64)
		case int:
			id = strconv.Itoa(raw)
		case int64:
			id = strconv.FormatInt(raw, 10)
		case fmt.Stringer:
			id = raw.String()
		}
	case map[string]string:
		id = x["id"]
	default:
		return "", fmt.Errorf("%w: %T has no ResourceID method; set Options.ItemID", ErrMissingItemID, v)
	}
	if id == "" {
		return "", ErrMissingItemID
	}
	return id, nil
}
