package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUnknownField       = errors.New("unknown field")
	ErrNoSession          = errors.New("no active session")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrForbidden          = errors.New("access forbidden")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// ErrCorruptData marks a persisted slot that failed to decode. Stores recover
// from it internally and never return it.
var ErrCorruptData = errors.New("corrupt persisted data")

var (
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
)
