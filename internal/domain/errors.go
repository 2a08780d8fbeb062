package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by every store when the requested id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on create when an explicitly supplied id is already taken.
	ErrConflict = errors.New("id already exists")
	// ErrValidation wraps all field-level rule violations.
	ErrValidation = errors.New("validation failed")
	// ErrNilEntity means the caller passed no payload at all.
	ErrNilEntity = errors.New("entity must not be nil")

	// Order-creation failure kinds. Each is wrapped with the offending id
	// so the caller can tell which reference broke.
	ErrInvalidCustomer = errors.New("customer not found")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidItem     = errors.New("cafe not found")
	ErrInvalidQuantity = errors.New("item quantity must be greater than zero")

	// ErrInternal covers the defensive "store confirmed a write but
	// assigned no id" case. It should never fire against a correct store.
	ErrInternal = errors.New("internal store error")
)

func fieldRequired(name string) error {
	return fmt.Errorf("%w: %s must not be empty", ErrValidation, name)
}

func fieldPositive(name string) error {
	return fmt.Errorf("%w: %s must be greater than zero", ErrValidation, name)
}
