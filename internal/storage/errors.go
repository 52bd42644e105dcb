package storage

import (
	"errors"
	"net"
	"syscall"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

// ConnectionError reports that the store could not be reached. Nothing was written.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "store unreachable: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ConstraintError reports a row rejected by a type, enumeration, length or key
// constraint. The surrounding transaction is rolled back.
type ConstraintError struct {
	Err error
}

func (e *ConstraintError) Error() string {
	return "constraint violation: " + e.Err.Error()
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// classifyError maps driver errors onto ConnectionError and ConstraintError.
// Other errors are returned unchanged.
func classifyError(dialect sqlconfig.Dialect, err error) error {
	if err == nil {
		return nil
	}

	var connErr *ConnectionError
	var constraintErr *ConstraintError
	if errors.As(err, &connErr) || errors.As(err, &constraintErr) {
		return err
	}

	if dialect.IsConstraintViolation(err) {
		return &ConstraintError{Err: err}
	}
	if dialect.IsConnectionFailure(err) || isNetworkError(err) {
		return &ConnectionError{Err: err}
	}
	return err
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
