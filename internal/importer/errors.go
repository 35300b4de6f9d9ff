package importer

import (
	"errors"
	"fmt"
)

// ErrSkipRow is returned by a Normalizer for rows that carry no data.
var ErrSkipRow = errors.New("row has no data")

// StoreError wraps a failure of the keyed store for one row.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ParseError means the whole file was rejected before any row was processed.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
