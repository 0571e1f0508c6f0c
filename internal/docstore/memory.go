package docstore

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rlaig/ezorder/internal/filter"
)

type memCollection struct {
	ids  []string
	docs map[string][]byte
}

// Memory is an in-process datastore. Each instance is isolated, so tests
// can create one per case.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
	now         func() time.Time
}

func NewMemory() *Memory {
	return &Memory{collections: map[string]*memCollection{}, now: time.Now}
}

// WithClock replaces the time source used for created/updated.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) coll(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: map[string][]byte{}}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) GetOne(ctx context.Context, collection, id string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(doc), nil
}

func (m *Memory) GetList(ctx context.Context, collection string, page, perPage int, q Query) (ListResult, error) {
	page, perPage = normalizePage(page, perPage)
	all, err := m.GetFullList(ctx, collection, q)
	if err != nil {
		return ListResult{}, err
	}
	res := ListResult{
		Page:       page,
		PerPage:    perPage,
		TotalItems: len(all),
		TotalPages: totalPages(len(all), perPage),
		Items:      []json.RawMessage{},
	}
	start := (page - 1) * perPage
	if start < len(all) {
		res.Items = all[start:min(start+perPage, len(all))]
	}
	return res, nil
}

func (m *Memory) GetFullList(ctx context.Context, collection string, q Query) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	where, err := filter.Parse(q.Filter)
	if err != nil {
		return nil, err
	}
	order, err := filter.ParseSort(q.Sort)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	var out []json.RawMessage
	if c, ok := m.collections[collection]; ok {
		for _, id := range c.ids {
			doc := c.docs[id]
			if filter.Match(where, gjson.ParseBytes(doc)) {
				out = append(out, slices.Clone(doc))
			}
		}
	}
	m.mu.RUnlock()

	if len(order) > 0 {
		slices.SortStableFunc(out, func(a, b json.RawMessage) int {
			return filter.Compare(gjson.ParseBytes(a), gjson.ParseBytes(b), order)
		})
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

func (m *Memory) Create(ctx context.Context, collection string, data map[string]any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, id := newDocument(data, m.now())
	c := m.coll(collection)
	if _, exists := c.docs[id]; exists {
		return nil, &FieldError{Collection: collection, Fields: map[string]string{"id": uniqueMsg}}
	}
	if err := m.checkUnique(collection, c, id, doc); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	c.ids = append(c.ids, id)
	c.docs[id] = raw
	return slices.Clone(raw), nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, data map[string]any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	existing, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	doc, err := mergeDocument(existing, data, m.now())
	if err != nil {
		return nil, err
	}
	if err := m.checkUnique(collection, c, id, doc); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	c.docs[id] = raw
	return slices.Clone(raw), nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return ErrNotFound
	}
	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	delete(c.docs, id)
	c.ids = slices.DeleteFunc(c.ids, func(s string) bool { return s == id })
	return nil
}

func (m *Memory) checkUnique(collection string, c *memCollection, id string, doc map[string]any) error {
	field, value, ok := uniqueValue(collection, doc)
	if !ok {
		return nil
	}
	for otherID, raw := range c.docs {
		if otherID == id {
			continue
		}
		if strings.ToLower(gjson.GetBytes(raw, field).String()) == value {
			return &FieldError{Collection: collection, Fields: map[string]string{field: uniqueMsg}}
		}
	}
	return nil
}
