// Package docstore provides the document datastore the dashboard reads
// and writes: named collections of JSON records carrying id, created and
// updated, queried with filter expressions. Memory backs tests and local
// runs; MySQL backs deployments.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// Query narrows list operations. Both strings use the filter package grammar.
type Query struct {
	Filter string
	Sort   string
}

// ListResult is one page of a list query.
type ListResult struct {
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	TotalItems int               `json:"totalItems"`
	TotalPages int               `json:"totalPages"`
	Items      []json.RawMessage `json:"items"`
}

const (
	DefaultPerPage = 30
	MaxPerPage     = 500
)

var ErrNotFound = errors.New("record not found")

// FieldError reports field-level rejections such as a duplicate unique value.
type FieldError struct {
	Collection string
	Fields     map[string]string
}

func (e *FieldError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := lo.Map(keys, func(k string, _ int) string { return k + ": " + e.Fields[k] })
	return fmt.Sprintf("%s: %s", e.Collection, strings.Join(parts, "; "))
}

// uniqueFields names the single unique field of a collection, if any.
var uniqueFields = map[string]string{
	"users":    "email",
	"qr_codes": "code",
}

const uniqueMsg = "value must be unique"

const idLength = 15

var idCharset = slices.Concat(lo.LowerCaseLettersCharset, lo.NumbersCharset)

// NewID returns a 15 character lowercase alphanumeric record id.
func NewID() string { return lo.RandomString(idLength, idCharset) }

// Timestamp formats t the way records store created and updated.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

var baseKeys = []string{"id", "created", "updated"}

// newDocument builds a record from caller data. Caller supplied base keys are
// ignored, except an id on create when one is given.
func newDocument(data map[string]any, now time.Time) (map[string]any, string) {
	doc := maps.Clone(data)
	if doc == nil {
		doc = map[string]any{}
	}
	id, _ := doc["id"].(string)
	if id == "" {
		id = NewID()
	}
	ts := Timestamp(now)
	doc["id"], doc["created"], doc["updated"] = id, ts, ts
	return doc, id
}

// mergeDocument overlays data onto an existing record, keeping its base keys.
func mergeDocument(existing []byte, data map[string]any, now time.Time) (map[string]any, error) {
	doc, err := decodeDocument(existing)
	if err != nil {
		return nil, err
	}
	for k, v := range data {
		if !slices.Contains(baseKeys, k) {
			doc[k] = v
		}
	}
	doc["updated"] = Timestamp(now)
	return doc, nil
}

// decodeDocument reads a stored record. Objects and arrays stay encoded so
// their key order survives a rewrite; scalars are decoded.
func decodeDocument(raw []byte) (map[string]any, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	doc := make(map[string]any, len(fields))
	for k, v := range fields {
		if r := gjson.ParseBytes(v); r.IsObject() || r.IsArray() {
			doc[k] = v
			continue
		}
		var x any
		if err := json.Unmarshal(v, &x); err != nil {
			return nil, err
		}
		doc[k] = x
	}
	return doc, nil
}

func uniqueValue(collection string, doc map[string]any) (field, value string, ok bool) {
	field, ok = uniqueFields[collection]
	if !ok {
		return "", "", false
	}
	value, _ = doc[field].(string)
	return field, strings.ToLower(value), value != ""
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, min(perPage, MaxPerPage)
}

func totalPages(total, perPage int) int {
	return (total + perPage - 1) / perPage
}
