package tenant

import (
	"errors"
	"fmt"
)

// ErrPoolExhausted is returned when no pooled connection became available
// within the acquisition timeout. The wait fails closed instead of hanging.
var ErrPoolExhausted = errors.New("connection pool exhausted")

// ConnectionError is an infrastructure failure: pool exhaustion or a
// physical connection problem. It is retryable by the caller and never
// leaves a transaction open.
type ConnectionError struct {
	Err error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection error: %v", e.Err)
}

// Unwrap returns the underlying cause
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TransactionError wraps a failure during commit. It always carries the
// original triggering error as the cause; a secondary rollback failure is
// logged, never propagated in its place.
type TransactionError struct {
	Op  string // "begin", "stamp", "commit"
	Err error
}

// Error implements the error interface
func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the caller may retry the unit of work on a
// fresh connection
func IsRetryable(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
