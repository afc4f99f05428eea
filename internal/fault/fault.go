// Package fault defines the error categories surfaced by the service
// layer. Handlers translate them to HTTP status codes with errors.Is.
package fault

import "errors"

var (
	// ErrValidation marks missing or malformed required input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a caller acting outside its role, or an
	// action forbidden by the record's current state.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict marks an operation that lost to a concurrent writer,
	// such as accepting an application on an already closed order.
	ErrConflict = errors.New("conflict")
)
