package catalog

import "errors"

// Error variables for catalog operations.
var (
	ErrPathEmpty     = errors.New("catalog path cannot be empty")
	ErrLocked        = errors.New("catalog is in use by another process")
	ErrClosed        = errors.New("catalog is closed")
	ErrNotFound      = errors.New("book not found")
	ErrInvalidBook   = errors.New("invalid book")
	ErrInvalidField  = errors.New("invalid search field")
	ErrInvalidStatus = errors.New("invalid status")
	ErrMalformed     = errors.New("malformed catalog")
	ErrPersist       = errors.New("persist catalog")
	ErrIDsExhausted  = errors.New("no book id left")
)
