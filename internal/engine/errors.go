package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/contactlens/internal/provider"
)

// QueryError reports a store failure during a query cycle.
//
// Subscriptions log QueryErrors and carry on with an empty snapshot;
// one-shot queries return them.
type QueryError struct {
	// Code identifies the error category.
	Code QueryErrorCode

	// Resource is the queried resource.
	Resource provider.Resource

	// Subscription identifies the affected subscription, if any.
	Subscription string

	// Err is the underlying store error.
	Err error
}

// QueryErrorCode categorizes query errors.
type QueryErrorCode string

const (
	// ErrCodeQueryFailed indicates the store rejected or failed the query.
	ErrCodeQueryFailed QueryErrorCode = "QUERY_FAILED"

	// ErrCodeCursorFailed indicates the cursor failed while rows were read.
	ErrCodeCursorFailed QueryErrorCode = "CURSOR_FAILED"
)

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Subscription != "" {
		return fmt.Sprintf("%s: %s: %v (subscription=%s)", e.Code, e.Resource, e.Err, e.Subscription)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Resource, e.Err)
}

// Unwrap returns the underlying store error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError returns true if err is, or wraps, a QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
