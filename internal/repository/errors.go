// Package repository holds the persistence that sits beside the document
// datastore: account lookups that need the password hash, and refresh
// tokens.
package repository

import "errors"

// ErrForbidden is returned when the caller acts on a record owned by someone
// else. Handlers answer 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of existing
// state. Handlers answer 409.
var ErrConflict = errors.New("conflict")

var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidRefresh = errors.New("invalid refresh token")
)
