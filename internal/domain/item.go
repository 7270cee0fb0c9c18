// Package domain holds curio's core data types.
package domain

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Item is an opaque record handed to the collection view: an identifier plus
// a mapping of field name to value. The view treats items as immutable; a
// renderer instance binds a Clone at construction, so later mutation of the
// source item by the host is invisible to mounted renderers.
type Item struct {
	ID     string
	Fields map[string]any
}

// NewItem builds an item, cloning the field map so the caller keeps no
// shared reference into it.
func NewItem(id string, fields map[string]any) Item {
	return Item{ID: id, Fields: cloneFields(fields)}
}

// Clone returns a copy with its own field map. Nested maps and slices are
// copied one level deep; scalar values are copied by value.
func (i Item) Clone() Item {
	return Item{ID: i.ID, Fields: cloneFields(i.Fields)}
}

// Get returns the value for a field and whether it exists.
func (i Item) Get(field string) (any, bool) {
	v, ok := i.Fields[field]
	return v, ok
}

// String returns the field's value formatted as a string, or "" when the
// field is absent.
func (i Item) String(field string) string {
	v, ok := i.Fields[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Strings returns a string-slice field, tolerating both []string and []any
// representations (the latter is what YAML/JSON decoding produces).
func (i Item) Strings(field string) []string {
	switch v := i.Fields[field].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return nil
	}
}

// Fingerprint returns a stable content hash of the item, used for input
// comparison and cache keys. Fields are folded in sorted key order so the
// result is independent of map iteration order.
func (i Item) Fingerprint() string {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s\x00", i.ID)

	keys := make([]string, 0, len(i.Fields))
	for k := range i.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, _ = fmt.Fprintf(h, "%s=%v\x00", k, i.Fields[k])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func cloneFields(fields map[string]any) map[string]any {
	if fields == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch val := v.(type) {
		case map[string]any:
			inner := make(map[string]any, len(val))
			for ik, iv := range val {
				inner[ik] = iv
			}
			out[k] = inner
		case []any:
			inner := make([]any, len(val))
			copy(inner, val)
			out[k] = inner
		case []string:
			inner := make([]string, len(val))
			copy(inner, val)
			out[k] = inner
		default:
			out[k] = v
		}
	}
	return out
}
