package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest indicates a malformed input shape.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmptyCart indicates checkout was attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrDuplicateName indicates a product name is already taken.
	ErrDuplicateName = errors.New("product already exists")
	// ErrDuplicateEmail indicates an email is already registered.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrConflict indicates a concurrent write changed the cart since it
	// was read.
	ErrConflict = errors.New("cart version conflict")
)
