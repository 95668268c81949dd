package db

import (
	"errors"
	"fmt"
)

// DuplicateKeyError is returned when a write violates a unique index.
type DuplicateKeyError struct {
	Collection string
	ID         any
	Cause      error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key writing %s %v: %v", e.Collection, e.ID, e.Cause)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Cause
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// NotFoundError is returned by point reads of a missing document.
type NotFoundError struct {
	Collection string
	ID         any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Collection, e.ID)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
