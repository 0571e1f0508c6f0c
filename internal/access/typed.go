package access

import (
	"context"
	"encoding/json"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/transform"
)

// The functions below are the statically typed path: the entity binding
// fixes the collection, the record types and both transformers.

func GetOne[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], id string) (D, error) {
	coll := e.Kind().Collection()
	raw, err := w.client.GetOne(ctx, coll, id)
	if err != nil {
		var zero D
		return zero, wrap(opFetch, coll, err)
	}
	d, err := frontend(w, e, raw)
	return d, wrap(opFetch, coll, err)
}

func GetList[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], page, perPage int, opts Options) (Page[D], error) {
	coll := e.Kind().Collection()
	res, err := w.client.GetList(ctx, coll, page, perPage, opts)
	if err != nil {
		return Page[D]{}, wrap(opFetch, coll, err)
	}
	items, err := frontendAll(w, e, res.Items)
	if err != nil {
		return Page[D]{}, wrap(opFetch, coll, err)
	}
	return toPage(res, items), nil
}

func GetFullList[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], opts Options) ([]D, error) {
	coll := e.Kind().Collection()
	all, err := w.client.GetFullList(ctx, coll, opts)
	if err != nil {
		return nil, wrap(opFetch, coll, err)
	}
	items, err := frontendAll(w, e, all)
	return items, wrap(opFetch, coll, err)
}

// Create converts a display partial and creates the record.
func Create[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], in In) (D, error) {
	w.check.Display(e.Kind(), in)
	return write(ctx, w, e, opCreate, "", e.ToDatabase(in))
}

// Update converts a display partial and applies it to record id.
func Update[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], id string, in In) (D, error) {
	w.check.DisplayPartial(e.Kind(), in)
	return write(ctx, w, e, opUpdate, id, e.ToDatabase(in))
}

// Patch applies a persisted-shape partial to record id and returns the
// result in display shape. Services use it for fields with no display input,
// such as completed_at.
func Patch[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], id string, patch model.Patch) (D, error) {
	return write(ctx, w, e, opUpdate, id, patch)
}

func Delete[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], id string) error {
	coll := e.Kind().Collection()
	return wrap(opDelete, coll, w.client.Delete(ctx, coll, id))
}

// GetRecord fetches record id in persisted shape.
func GetRecord[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], id string) (P, error) {
	coll := e.Kind().Collection()
	raw, err := w.client.GetOne(ctx, coll, id)
	if err != nil {
		var zero P
		return zero, wrap(opFetch, coll, err)
	}
	p, err := e.Decode(raw)
	return p, wrap(opFetch, coll, err)
}

// ListRecords fetches every matching record in persisted shape.
func ListRecords[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], opts Options) ([]P, error) {
	coll := e.Kind().Collection()
	all, err := w.client.GetFullList(ctx, coll, opts)
	if err != nil {
		return nil, wrap(opFetch, coll, err)
	}
	out := make([]P, 0, len(all))
	for _, raw := range all {
		p, err := e.Decode(raw)
		if err != nil {
			return nil, wrap(opFetch, coll, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func write[P, D, In any](ctx context.Context, w *Wrapper, e transform.Entity[P, D, In], op, id string, patch model.Patch) (D, error) {
	coll := e.Kind().Collection()
	var (
		raw json.RawMessage
		err error
	)
	if op == opCreate {
		raw, err = w.client.Create(ctx, coll, patch)
	} else {
		raw, err = w.client.Update(ctx, coll, id, patch)
	}
	if err != nil {
		var zero D
		return zero, wrap(op, coll, err)
	}
	d, err := frontend(w, e, raw)
	return d, wrap(op, coll, err)
}

func frontend[P, D, In any](w *Wrapper, e transform.Entity[P, D, In], raw []byte) (D, error) {
	p, err := e.Decode(raw)
	if err != nil {
		var zero D
		return zero, err
	}
	d := e.ToFrontend(p, w.env())
	w.check.Display(e.Kind(), d)
	return d, nil
}

func frontendAll[P, D, In any](w *Wrapper, e transform.Entity[P, D, In], raws []json.RawMessage) ([]D, error) {
	out := make([]D, 0, len(raws))
	for _, raw := range raws {
		d, err := frontend(w, e, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
