package access

import (
	"context"
	"encoding/json"

	"github.com/samber/lo"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/schema"
	"github.com/rlaig/ezorder/internal/transform"
)

const (
	opFetch  = "fetch"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Collection is the kind-dispatched path over one named collection. Each
// operation takes the entity kind to transform with.
type Collection struct {
	w    *Wrapper
	name string
}

func (w *Wrapper) Collection(name string) Collection {
	return Collection{w: w, name: name}
}

func (c Collection) Name() string { return c.name }

func (c Collection) GetOne(ctx context.Context, id string, kind model.Kind) (json.RawMessage, error) {
	raw, err := c.w.client.GetOne(ctx, c.name, id)
	if err != nil {
		return nil, wrap(opFetch, c.name, err)
	}
	out, err := c.w.toFrontend(kind, raw)
	return out, wrap(opFetch, c.name, err)
}

func (c Collection) GetList(ctx context.Context, page, perPage int, opts Options, kind model.Kind) (Page[json.RawMessage], error) {
	res, err := c.w.client.GetList(ctx, c.name, page, perPage, opts)
	if err != nil {
		return Page[json.RawMessage]{}, wrap(opFetch, c.name, err)
	}
	items, err := c.w.toFrontendAll(kind, res.Items)
	if err != nil {
		return Page[json.RawMessage]{}, wrap(opFetch, c.name, err)
	}
	return toPage(res, items), nil
}

func (c Collection) GetFullList(ctx context.Context, opts Options, kind model.Kind) ([]json.RawMessage, error) {
	all, err := c.w.client.GetFullList(ctx, c.name, opts)
	if err != nil {
		return nil, wrap(opFetch, c.name, err)
	}
	items, err := c.w.toFrontendAll(kind, all)
	return items, wrap(opFetch, c.name, err)
}

// Create sends payload, converting it first when kind is set and the payload
// carries no persisted-only keys. The created record is returned in display
// shape when kind is set.
func (c Collection) Create(ctx context.Context, payload map[string]any, kind model.Kind) (json.RawMessage, error) {
	data, err := c.w.toDatabase(kind, payload, false)
	if err != nil {
		return nil, wrap(opCreate, c.name, err)
	}
	raw, err := c.w.client.Create(ctx, c.name, data)
	if err != nil {
		return nil, wrap(opCreate, c.name, err)
	}
	out, err := c.w.toFrontend(kind, raw)
	return out, wrap(opCreate, c.name, err)
}

// Update is Create for one existing record. A missing id fails with NotFound.
func (c Collection) Update(ctx context.Context, id string, payload map[string]any, kind model.Kind) (json.RawMessage, error) {
	data, err := c.w.toDatabase(kind, payload, true)
	if err != nil {
		return nil, wrap(opUpdate, c.name, err)
	}
	raw, err := c.w.client.Update(ctx, c.name, id, data)
	if err != nil {
		return nil, wrap(opUpdate, c.name, err)
	}
	out, err := c.w.toFrontend(kind, raw)
	return out, wrap(opUpdate, c.name, err)
}

func (c Collection) Delete(ctx context.Context, id string) error {
	return wrap(opDelete, c.name, c.w.client.Delete(ctx, c.name, id))
}

func (w *Wrapper) toFrontend(kind model.Kind, raw json.RawMessage) (json.RawMessage, error) {
	t, ok := transform.For(kind)
	if !ok {
		return raw, nil
	}
	out, err := t.FrontendJSON(raw, w.env())
	if err != nil {
		return nil, err
	}
	w.check.Display(kind, out)
	return out, nil
}

func (w *Wrapper) toFrontendAll(kind model.Kind, raws []json.RawMessage) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(raws))
	for _, raw := range raws {
		item, err := w.toFrontend(kind, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// LooksDisplayShaped reports whether payload carries none of kind's
// persisted-only field names.
func LooksDisplayShaped(kind model.Kind, payload map[string]any) bool {
	return !lo.SomeBy(schema.PersistedOnly(kind), func(key string) bool {
		_, ok := payload[key]
		return ok
	})
}

func (w *Wrapper) toDatabase(kind model.Kind, payload map[string]any, partial bool) (map[string]any, error) {
	t, ok := transform.For(kind)
	if !ok {
		return payload, nil
	}
	if !LooksDisplayShaped(kind, payload) {
		if !partial {
			w.check.Persisted(kind, payload)
		}
		return payload, nil
	}
	if partial {
		w.check.DisplayPartial(kind, payload)
	} else {
		w.check.Display(kind, payload)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	patch, err := t.DatabasePatch(raw)
	if err != nil {
		return nil, err
	}
	return patch, nil
}
