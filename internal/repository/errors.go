// ABOUTME: Error taxonomy for the repository layer
// ABOUTME: NotFound and CorruptTree are deliberate, typed failures
package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the requested entity does not exist for this user.
	ErrNotFound = errors.New("record not found")
	// ErrCorruptTree means a conversation violated a tree invariant: a
	// parent reference that does not resolve, or a cycle.
	ErrCorruptTree = errors.New("corrupt message tree")
	// ErrInvalidID rejects logical ids containing the key separator.
	ErrInvalidID = errors.New("invalid logical id")
)

// DecodeError reports a stored record that is missing a required attribute
// or carries one of the wrong shape. Callers must not paper over it with
// defaults; it indicates the record itself is malformed.
type DecodeError struct {
	Attr   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode record: attribute %s: %s", e.Attr, e.Reason)
}

// BulkDeleteError aggregates per-conversation failures from DeleteAll. Some
// deletes may have succeeded; FailedIDs lists the ones that did not.
type BulkDeleteError struct {
	FailedIDs []string
	Errs      []error
}

func (e *BulkDeleteError) Error() string {
	return fmt.Sprintf("delete all conversations: %d failed: %s",
		len(e.FailedIDs), strings.Join(e.FailedIDs, ", "))
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *BulkDeleteError) Unwrap() []error {
	return e.Errs
}
