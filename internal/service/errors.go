// Package service implements the dashboard's business operations on top of
// the access wrapper. Services speak display shapes to their callers and
// persisted shapes to the datastore.
package service

import (
	"errors"

	"github.com/rlaig/ezorder/internal/repository"
)

var (
	ErrEmailInUse        = errors.New("email address is already in use")
	ErrNoMerchantProfile = errors.New("merchant profile not found")
	ErrCannotAdvance     = errors.New("order status cannot advance")
	ErrForbidden         = repository.ErrForbidden
	ErrInvalidInput      = errors.New("invalid input")
)

// InputError is a rejected request field. It matches ErrInvalidInput.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string { return e.Field + ": " + e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, msg string) error { return &InputError{Field: field, Message: msg} }
