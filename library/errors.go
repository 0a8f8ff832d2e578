package library

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound is returned when an id is not in the catalog.
	ErrItemNotFound = errors.New("item does not exist")
	// ErrAlreadyCheckedOut is returned when the ledger already holds a record for the item.
	ErrAlreadyCheckedOut = errors.New("item is already checked out")
	// ErrNotCheckedOut is returned when returning an item the ledger does not hold.
	ErrNotCheckedOut = errors.New("item is not checked out")
	// ErrNoFile reports a missing backing file. It is informational: the
	// store is treated as empty.
	ErrNoFile = errors.New("no file")

	errFieldCount = errors.New("wrong number of fields")
)

// ParseError describes a persisted line that could not be decoded.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
