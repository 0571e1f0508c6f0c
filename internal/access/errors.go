package access

import (
	"errors"
	"fmt"
	"maps"

	"github.com/rlaig/ezorder/internal/docstore"
	"github.com/rlaig/ezorder/internal/filter"
	"github.com/rlaig/ezorder/internal/transform"
)

// ErrorKind classifies a failed wrapper call so callers can branch on cause.
type ErrorKind uint8

const (
	Transport ErrorKind = iota
	NotFound
	Conflict
	Invalid
	Malformed
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Invalid:
		return "invalid"
	case Malformed:
		return "malformed"
	}
	return "transport"
}

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Error is returned by every wrapper operation. Its message is stable per
// operation and collection; the cause stays reachable through Unwrap.
type Error struct {
	Op         string
	Collection string
	Kind       ErrorKind
	// Status is an HTTP-like code: 404 for NotFound, 400 for Conflict and
	// Invalid, 500 for Malformed, 0 for transport failures.
	Status int
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s %s", e.Op, e.Collection)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrConflict:
		return e.Kind == Conflict
	}
	return false
}

// wrap classifies err. Anything unrecognised, context cancellation
// included, is a transport failure.
func wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	e := &Error{Op: op, Collection: collection, Err: err}
	var fe *docstore.FieldError
	var de *transform.DecodeError
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		e.Kind, e.Status = NotFound, 404
	case errors.As(err, &fe):
		e.Kind, e.Status, e.Fields = Conflict, 400, maps.Clone(fe.Fields)
	case errors.Is(err, filter.ErrSyntax):
		e.Kind, e.Status = Invalid, 400
	case errors.As(err, &de):
		e.Kind, e.Status = Malformed, 500
	}
	return e
}
