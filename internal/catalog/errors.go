package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Delete when no row has the requested id.
var ErrNotFound = errors.New("catalog: shoe not found")

// StoreError wraps a driver failure with the store operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Code satisfies the error-code convention used in handler logs.
func (e *StoreError) Code() string { return "STORE_ERROR" }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
