package business

import (
	"errors"
	"fmt"
)

var (
	// ErrStrategyUnsupported marks an oracle capability that is not available
	// (for example a node without debug_traceCall).
	ErrStrategyUnsupported = errors.New("strategy not supported by oracle")
	// ErrExecutionReverted is returned when a call reverts on chain.
	ErrExecutionReverted = errors.New("execution reverted")
	// ErrNoCode is returned when the target address has no deployed code.
	ErrNoCode = errors.New("no contract code at address")
	// ErrNoSigner is returned when a transaction is requested without a signing key.
	ErrNoSigner = errors.New("no signing key configured")
)

// ValidationError reports a malformed request rejected before any I/O
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConnectivityError reports that the oracle could not be reached at all
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity failure during %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
