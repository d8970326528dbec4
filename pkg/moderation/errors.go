package moderation

import (
	"errors"
	"fmt"
)

// Validation errors, rejected before any persistence
var (
	ErrEmptyReport     = errors.New("report needs a description or at least one attachment")
	ErrUserNotResolved = errors.New("user could not be resolved")
)

// StoreError wraps a failed insert, query or update. It propagates to the
// caller of the operation that issued it; retry policy belongs to the driver.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// GatewayError wraps a failed directory, platform or notification call
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
