package querysql

import (
	"errors"
	"fmt"
)

// InputError reports a malformed predicate or column request. These are
// caller errors and are never absorbed.
type InputError struct {
	Code    InputErrorCode
	Message string
	Err     error
}

// InputErrorCode categorizes input errors.
type InputErrorCode string

const (
	// ErrCodeInvalidPredicate indicates a nil, unknown or empty predicate.
	ErrCodeInvalidPredicate InputErrorCode = "INVALID_PREDICATE"

	// ErrCodeInvalidColumn indicates a column outside the closed set.
	ErrCodeInvalidColumn InputErrorCode = "INVALID_COLUMN"

	// ErrCodeMissingAccountType indicates a linked-account column without an account type.
	ErrCodeMissingAccountType InputErrorCode = "MISSING_ACCOUNT_TYPE"
)

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is, or wraps, an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
