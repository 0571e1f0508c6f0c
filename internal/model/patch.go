package model

import (
	"maps"
	"slices"
)

// Base holds the fields every persisted record carries.
type Base struct {
	ID      string `json:"id"`
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// Patch is a partial persisted record keyed by persisted field name. It is
// what the display-to-persisted transformers produce and what the datastore
// merges on update.
type Patch map[string]any

// Put stores *v under key when v is non-nil. Absent input never produces a key.
func Put[T any](p Patch, key string, v *T) {
	if v != nil {
		p[key] = *v
	}
}

// PutMap stores a copy of m under key when m is non-nil.
func PutMap(p Patch, key string, m map[string]any) {
	if m != nil {
		p[key] = maps.Clone(m)
	}
}

// Has reports whether key is present.
func (p Patch) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Keys returns the patch keys in sorted order.
func (p Patch) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}
