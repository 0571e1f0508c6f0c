// Package access wraps raw datastore collection calls. When an entity kind
// is supplied, records come back in display shape and display-shaped write
// payloads are converted to persisted shape before they are sent. KindNone
// passes data through untouched.
package access

import (
	"context"
	"encoding/json"

	"github.com/rlaig/ezorder/internal/docstore"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/validate"
)

// Client is the raw collection API the wrapper sits on. docstore.Memory and
// docstore.MySQL implement it.
type Client interface {
	GetOne(ctx context.Context, collection, id string) (json.RawMessage, error)
	GetList(ctx context.Context, collection string, page, perPage int, q docstore.Query) (docstore.ListResult, error)
	GetFullList(ctx context.Context, collection string, q docstore.Query) ([]json.RawMessage, error)
	Create(ctx context.Context, collection string, data map[string]any) (json.RawMessage, error)
	Update(ctx context.Context, collection, id string, data map[string]any) (json.RawMessage, error)
	Delete(ctx context.Context, collection, id string) error
}

// Options holds the filter and sort expressions of list calls.
type Options = docstore.Query

// Page is one page of a list call together with its pagination metadata.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

type Wrapper struct {
	client Client
	check  *validate.Validator
	env    func() transform.Env
}

// New builds a wrapper over client. check may be nil or disabled; env
// supplies the formatting environment for each read and may be nil.
func New(client Client, check *validate.Validator, env func() transform.Env) *Wrapper {
	if env == nil {
		env = func() transform.Env { return transform.Env{} }
	}
	return &Wrapper{client: client, check: check, env: env}
}

// Client returns the underlying datastore client.
func (w *Wrapper) Client() Client { return w.client }

// Env returns the formatting environment reads use right now.
func (w *Wrapper) Env() transform.Env { return w.env() }

func toPage[T any](res docstore.ListResult, items []T) Page[T] {
	return Page[T]{
		Items:      items,
		Page:       res.Page,
		PerPage:    res.PerPage,
		TotalItems: res.TotalItems,
		TotalPages: res.TotalPages,
	}
}
