package transport

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Transport errors. WriteError wraps one of these.
var (
	ErrCharacteristicUnresolved = errors.New("characteristic unresolved")
	ErrConnectionLost           = errors.New("connection lost")
	ErrWriteRejected            = errors.New("write rejected")
)

// WriteError reports a failed write to a characteristic.
type WriteError struct {
	// Address is the peripheral address.
	Address string

	// Char is the canonical identifier of the target characteristic.
	Char uuid.UUID

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s on %s: %v", e.Char, e.Address, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError builds a WriteError.
func NewWriteError(addr string, char uuid.UUID, err error) *WriteError {
	return &WriteError{Address: addr, Char: char, Err: err}
}
