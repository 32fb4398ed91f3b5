// Package errs holds the error taxonomy of the fulfillment module.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrValueIsRequired, ErrIllegalTransition, ...) matched with errors.Is
//   - a struct carrying the details, retrieved with errors.As
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Validation errors (required, invalid, out of range) are reported to callers as
// bad input. IllegalTransitionError carries the targets that would have been legal.
// RemoteFailureError wraps persistence and network failures and is never retried
// here. GeolocationError describes why a device position could not be read.
package errs
