// Package resource describes hierarchical REST resources as a tree of path
// templates.
//
// A Description holds a template such as "/posts/:postId" and an optional
// parent. Resolving a description interpolates the whole chain from the
// outermost ancestor down to the leaf:
//
//	blog := resource.MustNew("/blogs/:blogId", nil)
//	post := resource.MustNew("/posts/:postId", blog)
//	p, _ := post.Resolve(resource.Params{"blogId": "b1", "postId": "p1"})
//	// p == "/blogs/b1/posts/p1"
//
// Descriptions are immutable and safe for concurrent use.
package resource

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Params binds placeholder names to values.
type Params map[string]string

var (
	ErrEmptyTemplate    = errors.New("resource: empty path template")
	ErrInvalidTemplate  = errors.New("resource: invalid path template")
	ErrMissingParameter = errors.New("resource: missing parameter")
	// ErrNotListable is returned for list operations on a description whose
	// template does not end with an item placeholder.
	ErrNotListable = errors.New("resource: description has no item placeholder")
)

// MissingParameterError reports an unbound placeholder.
type MissingParameterError struct {
	Param    string
	Template string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("resource: missing parameter %q for template %q", e.Param, e.Template)
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

type segment struct {
	lit   string
	param string // non-empty for placeholders
}

// Description is one node of a resource tree.
type Description struct {
	template string
	segments []segment
	parent   *Description
}

// New parses template and links it under parent (nil for a root resource).
// Placeholders are whole path segments starting with ':'.
func New(template string, parent *Description) (*Description, error) {
	t := strings.TrimSpace(template)
	if t == "" || t == "/" {
		return nil, ErrEmptyTemplate
	}
	if !strings.HasPrefix(t, "/") {
		t = "/" + t
	}
	t = strings.TrimSuffix(t, "/")

	raw := strings.Split(t[1:], "/")
	segs := make([]segment, 0, len(raw))
	for _, s := range raw {
		switch {
		case s == "":
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidTemplate, template)
		case strings.HasPrefix(s, ":"):
			if len(s) == 1 {
				return nil, fmt.Errorf("%w: unnamed placeholder in %q", ErrInvalidTemplate, template)
			}
			segs = append(segs, segment{param: s[1:]})
		default:
			segs = append(segs, segment{lit: s})
		}
	}
	return &Description{template: t, segments: segs, parent: parent}, nil
}

// MustNew is like New but panics on error. Handy for package-level trees.
func MustNew(template string, parent *Description) *Description {
	d, err := New(template, parent)
	if err != nil {
		panic(err)
	}
	return d
}

// Template returns the normalized template of this node only.
func (d *Description) Template() string { return d.template }

// Parent returns the parent description or nil.
func (d *Description) Parent() *Description { return d.parent }

// FullTemplate returns the concatenated templates from root to d.
func (d *Description) FullTemplate() string {
	var b strings.Builder
	for _, n := range d.chain() {
		b.WriteString(n.template)
	}
	return b.String()
}

// ItemParam returns the name of the trailing placeholder, the one that
// identifies a single item of a list.
func (d *Description) ItemParam() (string, bool) {
	if d.check() != nil {
		return "", false
	}
	last := d.segments[len(d.segments)-1]
	return last.param, last.param != ""
}

// Resolve interpolates the full path for params.
func (d *Description) Resolve(params Params) (string, error) {
	if err := d.check(); err != nil {
		return "", err
	}
	var b strings.Builder
	if err := d.resolveInto(&b, params, false); err != nil {
		return "", err
	}
	return b.String(), nil
}

// CollectionPath resolves the path of the list owning d's items: the full
// path without the trailing item placeholder. The item parameter does not
// need to be bound.
func (d *Description) CollectionPath(params Params) (string, error) {
	if err := d.check(); err != nil {
		return "", err
	}
	if _, ok := d.ItemParam(); !ok {
		return "", fmt.Errorf("%w: %q", ErrNotListable, d.FullTemplate())
	}
	var b strings.Builder
	if err := d.resolveInto(&b, params, true); err != nil {
		return "", err
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

// check rejects nil and zero descriptions, and chains holding one.
func (d *Description) check() error {
	if d == nil {
		return fmt.Errorf("%w: nil description", ErrInvalidTemplate)
	}
	for n := d; n != nil; n = n.parent {
		if len(n.segments) == 0 {
			return fmt.Errorf("%w: description not built with New", ErrInvalidTemplate)
		}
	}
	return nil
}

// chain returns the ancestry root first.
func (d *Description) chain() []*Description {
	var out []*Description
	for n := d; n != nil; n = n.parent {
		out = append(out, n)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (d *Description) resolveInto(b *strings.Builder, params Params, dropItem bool) error {
	for _, n := range d.chain() {
		segs := n.segments
		if dropItem && n == d {
			segs = segs[:len(segs)-1]
		}
		for _, s := range segs {
			b.WriteByte('/')
			if s.param == "" {
				b.WriteString(s.lit)
				continue
			}
			v, ok := params[s.param]
			if !ok || v == "" {
				return &MissingParameterError{Param: s.param, Template: d.FullTemplate()}
			}
			b.WriteString(url.PathEscape(v))
		}
	}
	return nil
}
