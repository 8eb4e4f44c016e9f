// Package restcache implements a normalization-aware cache for hierarchical
// REST resources on top of a pluggable byte store (bridge.Bridge).
//
// Resources are described by path templates nested under parents (see package
// resource). Single items are stored under their resolved path; lists are
// normalized: every item of a list response is stored on its own under a
// partial key, and the list itself is reduced to an index of ids plus
// pagination metadata.
//
// Keys:
//
//	{"path":"/blogs/b1/posts/p1"}                               - full item
//	{"path":"/blogs/b1/posts/p1","query":{"__isPartial__":true}} - item seen in a list
//	{"path":"/blogs/b1/posts"}                                   - list index
//
// Full and partial entries never share a key, so writing a list can not
// downgrade an item previously stored in full. Get falls back to the partial
// entry when the full one is missing; GetList reads full entries only.
//
//	blog := resource.MustNew("/blogs/:blogId", nil)
//	post := resource.MustNew("/posts/:postId", blog)
//
//	c, _ := restcache.New[Post, restcache.Meta](restcache.Options[Post, restcache.Meta]{Bridge: memory.New()})
//	_ = c.SetList(ctx, post, restcache.Params{"blogId": "b1"}, page)
//	p, err := c.Get(ctx, post, restcache.Params{"blogId": "b1", "postId": "p1"})
package restcache
