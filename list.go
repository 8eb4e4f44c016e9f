package restcache

// DataListContainer pairs an ordered page of items with its metadata.
// It is the SetList input and the GetList output. M is opaque to the cache:
// it is encoded as given inside the list index and decoded back into M.
type DataListContainer[V, M any] struct {
	Data []V
	Meta M
}

// ListIndex is the value stored under a collection key: the item ids in list
// order plus the list metadata.
type ListIndex[M any] struct {
	Data []string `json:"data"`
	Meta M        `json:"meta"`
}

// Meta is offset pagination metadata, for APIs that use it. Total is omitted
// from encodings when unset, so Meta{Offset: 0, Limit: 10} is stored as
// {"offset":0,"limit":10}. Other shapes (cursors, links) use their own type.
type Meta struct {
	Offset int  `json:"offset"`
	Limit  int  `json:"limit"`
	Total  *int `json:"total,omitempty"`
}
